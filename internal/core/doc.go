// Package core contains the planning logic for clockfill: expanding a weekly
// schedule into dated time slots, indexing existing entries for duplicate
// detection, generating varied entry descriptions, and orchestrating a fill
// run. Everything in this package is deterministic given its inputs and an
// injected random source; all I/O happens behind narrow interfaces.
package core
