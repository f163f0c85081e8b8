package core

import (
	"math/rand"
	"strings"
	"time"

	"github.com/jsandoval/clockfill/pkg/models"
)

const (
	// fallbackDescription is returned when a pool has no templates at all.
	fallbackDescription = "general work and updates"

	// recencyCapacity bounds how many recently emitted templates are held
	// back from selection.
	recencyCapacity = 3

	shuffleProbability = 0.3
	dropProbability    = 0.2
)

// DescriptionPool produces non-repeating description variations from a set of
// candidate templates. A bounded recency buffer keeps the last few emitted
// templates out of the candidate set; once every template is in the buffer,
// the buffer is cleared so generation never starves.
//
// A pool is stateful within one run and must not be shared across projects.
type DescriptionPool struct {
	templates []string
	recent    []string
	rng       *rand.Rand
}

// NewDescriptionPool creates a pool over the given templates. rng may be nil,
// in which case a time-seeded source is used; tests inject a seeded generator
// for deterministic output.
func NewDescriptionPool(templates []string, rng *rand.Rand) *DescriptionPool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	pool := &DescriptionPool{rng: rng}
	pool.templates = append(pool.templates, templates...)
	return pool
}

// PoolFromHistory builds a pool from the recorded entries of a single
// project. Each distinct non-empty description is used once as a template, in
// first-seen order.
func PoolFromHistory(entries []models.RecordedEntry, projectID string, rng *rand.Rand) *DescriptionPool {
	var templates []string
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if entry.ProjectID != projectID {
			continue
		}
		desc := strings.TrimSpace(entry.Description)
		if desc == "" {
			continue
		}
		if _, ok := seen[desc]; ok {
			continue
		}
		seen[desc] = struct{}{}
		templates = append(templates, desc)
	}

	return NewDescriptionPool(templates, rng)
}

// AddTemplates appends templates to the pool. Duplicates are not removed;
// a template listed twice is simply twice as likely to be picked.
func (p *DescriptionPool) AddTemplates(templates []string) {
	p.templates = append(p.templates, templates...)
}

// Generate picks a template not seen in the recency window, records it, and
// returns a varied form of it. It never fails: an empty pool yields a fixed
// fallback description.
func (p *DescriptionPool) Generate() string {
	if len(p.templates) == 0 {
		return fallbackDescription
	}

	candidates := p.fresh()
	if len(candidates) == 0 {
		// Every template was emitted recently; start over.
		p.recent = p.recent[:0]
		candidates = p.templates
	}

	chosen := candidates[p.rng.Intn(len(candidates))]

	p.recent = append(p.recent, chosen)
	if len(p.recent) > recencyCapacity {
		p.recent = p.recent[1:]
	}

	return p.vary(chosen)
}

// fresh returns the templates not present in the recency buffer.
func (p *DescriptionPool) fresh() []string {
	recent := make(map[string]struct{}, len(p.recent))
	for _, t := range p.recent {
		recent[t] = struct{}{}
	}

	var out []string
	for _, t := range p.templates {
		if _, ok := recent[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// vary perturbs a template so repeated automated entries do not read
// identically: the comma-separated activity phrases are occasionally
// reordered, and occasionally one is dropped.
func (p *DescriptionPool) vary(template string) string {
	phrases := splitPhrases(template)

	if len(phrases) > 1 && p.rng.Float64() < shuffleProbability {
		p.rng.Shuffle(len(phrases), func(i, j int) {
			phrases[i], phrases[j] = phrases[j], phrases[i]
		})
	}

	if len(phrases) > 2 && p.rng.Float64() < dropProbability {
		drop := p.rng.Intn(len(phrases))
		phrases = append(phrases[:drop], phrases[drop+1:]...)
	}

	return strings.Join(phrases, ", ")
}

// splitPhrases splits a template on commas into trimmed activity phrases.
func splitPhrases(template string) []string {
	parts := strings.Split(template, ",")
	phrases := make([]string, len(parts))
	for i, part := range parts {
		phrases[i] = strings.TrimSpace(part)
	}
	return phrases
}
