package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
	"github.com/jsandoval/clockfill/pkg/models"
)

var (
	fillConfigFlag  string
	fillStartFlag   string
	fillEndFlag     string
	fillDryRunFlag  bool
	fillHistoryFlag bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Create time entries for a week from the configured schedule",
	Long: `Fill the configured schedule into Clockify for a date range.

Only weekdays are planned. Days where a project already has an entry are
skipped, so re-running over the same week is safe. With --dry-run the planned
entries and their generated descriptions are printed without touching the
workspace; --analyze-history seeds the descriptions from the last 60 days of
recorded entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if NewClient == nil || NewRunner == nil {
			return fmt.Errorf("clockfill services not initialized")
		}

		cfg, err := core.LoadConfig(fillConfigFlag)
		if err != nil {
			return err
		}
		if err := core.ValidateConfig(cfg); err != nil {
			return err
		}

		start, end, err := core.ResolveRange(fillStartFlag, fillEndFlag, time.Now())
		if err != nil {
			return err
		}

		client := NewClient(integration.ClientConfig{
			APIKey:      cfg.APIKey,
			WorkspaceID: cfg.WorkspaceID,
		})

		fmt.Println(rangeStyle.Render(fmt.Sprintf("Week %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))))
		fmt.Println("Checking for existing entries...")

		queryStart, queryEnd := core.DayBounds(start, end)
		existing, err := client.TimeEntries(queryStart, queryEnd, "")
		if err != nil {
			return fmt.Errorf("fetching existing entries: %w", err)
		}
		index := core.BuildEntryIndex(existing)

		var history []models.RecordedEntry
		if fillHistoryFlag {
			fmt.Println("Analyzing entry history for description patterns...")
			history, err = client.TimeEntries(start.AddDate(0, 0, -core.HistoryLookbackDays), start, "")
			if err != nil {
				return fmt.Errorf("fetching entry history: %w", err)
			}
		}

		runner := NewRunner(client)

		lastDate := ""
		summary := runner.Run(start, end, cfg.Schedule, cfg.DayStartHour, index, core.RunOptions{
			DryRun:  fillDryRunFlag,
			History: history,
			OnSlot: func(result models.SlotResult) {
				if result.Slot.Date() != lastDate {
					lastDate = result.Slot.Date()
					fmt.Printf("\n%s\n", dayHeaderStyle.Render(result.Slot.Start.Format("Monday, 2006-01-02")))
				}
				printSlotResult(result)
			},
		})

		printRunSummary(summary, fillDryRunFlag)
		return nil
	},
}

func printSlotResult(result models.SlotResult) {
	name := result.Slot.ProjectName
	if name == "" {
		name = result.Slot.ProjectID
	}
	window := fmt.Sprintf("%s - %s", result.Slot.Start.Format("15:04"), result.Slot.End.Format("15:04"))

	switch result.Outcome {
	case models.OutcomeSkipped:
		fmt.Printf("  %s %s: already has an entry, skipping\n", skippedStyle.Render("-"), name)
	case models.OutcomeFailed:
		fmt.Printf("  %s %s: %v\n", failedStyle.Render("x"), name, result.Err)
	case models.OutcomePreviewed:
		fmt.Printf("  %s %s (%s)\n", previewedStyle.Render("~"), name, window)
		fmt.Printf("      %s\n", descriptionStyle.Render(fmt.Sprintf("%q", result.Description)))
	case models.OutcomeCreated:
		fmt.Printf("  %s %s (%s)\n", createdStyle.Render("+"), name, window)
		fmt.Printf("      %s\n", descriptionStyle.Render(fmt.Sprintf("%q", result.Description)))
	}
}

func printRunSummary(summary *models.RunSummary, dryRun bool) {
	var lines []string
	if dryRun {
		lines = append(lines,
			"Dry run complete",
			fmt.Sprintf("Would create: %d entries", summary.Previewed),
			fmt.Sprintf("Would skip:   %d entries (already exist)", summary.Skipped),
		)
	} else {
		lines = append(lines,
			fmt.Sprintf("Created: %d entries", summary.Created),
			fmt.Sprintf("Skipped: %d entries (already existed)", summary.Skipped),
		)
		if summary.Failed > 0 {
			lines = append(lines, failedStyle.Render(fmt.Sprintf("Failed:  %d entries", summary.Failed)))
		}
	}

	fmt.Println()
	fmt.Println(summaryStyle.Render(strings.Join(lines, "\n")))
}

func init() {
	fillCmd.Flags().StringVarP(&fillConfigFlag, "config", "c", "config.yaml", "path to the configuration file")
	fillCmd.Flags().StringVarP(&fillStartFlag, "start-date", "s", "", "start date in YYYY-MM-DD form (default: this week's Monday)")
	fillCmd.Flags().StringVarP(&fillEndFlag, "end-date", "e", "", "end date in YYYY-MM-DD form (default: Friday of the start week)")
	fillCmd.Flags().BoolVarP(&fillDryRunFlag, "dry-run", "d", false, "preview what would be created without making API calls")
	fillCmd.Flags().BoolVar(&fillHistoryFlag, "analyze-history", false, "seed descriptions from past entries")
	rootCmd.AddCommand(fillCmd)
}
