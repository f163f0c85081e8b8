package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
	"github.com/jsandoval/clockfill/pkg/models"
)

var (
	projectsConfigFlag   string
	projectsArchivedFlag bool
	projectsYAMLFlag     bool
	projectsPickFlag     bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List workspace projects and their IDs",
	Long: `List all projects in the Clockify workspace, with their IDs, for use in the
schedule configuration.

Works from the config file or from the CLOCKIFY_API_KEY / CLOCKIFY_WORKSPACE_ID
environment variables alone. When no workspace is configured, the available
workspaces are listed; --pick selects one interactively. --yaml prints a
ready-to-edit schedule skeleton for the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if NewClient == nil {
			return fmt.Errorf("clockfill services not initialized")
		}

		cfg, err := loadConfigOrEnv(projectsConfigFlag)
		if err != nil {
			return err
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("api key not set: add api_key to the config or set CLOCKIFY_API_KEY")
		}

		workspaceID, err := resolveWorkspace(cfg)
		if err != nil {
			return err
		}
		if workspaceID == "" {
			// Workspaces were listed; nothing more to do until one is chosen.
			return nil
		}

		client := NewClient(integration.ClientConfig{
			APIKey:      cfg.APIKey,
			WorkspaceID: workspaceID,
		})

		projects, err := client.Projects(projectsArchivedFlag)
		if err != nil {
			return err
		}

		sort.Slice(projects, func(i, j int) bool {
			return projects[i].Name < projects[j].Name
		})

		if projectsYAMLFlag {
			return printScheduleSkeleton(projects)
		}

		for _, project := range projects {
			fmt.Println(dayHeaderStyle.Render(project.Name))
			if project.ClientName != "" {
				fmt.Printf("  Client: %s\n", project.ClientName)
			}
			fmt.Printf("  ID:     %s\n", project.ID)
			fmt.Println()
		}
		fmt.Printf("Total: %d projects\n", len(projects))
		fmt.Println(hintStyle.Render("Copy the project IDs into the schedule section of your config file."))
		return nil
	},
}

// loadConfigOrEnv loads the config file when it exists, falling back to
// environment-only configuration so the command works before a config file
// has been written.
func loadConfigOrEnv(path string) (*models.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return core.ConfigFromEnv(), nil
	}
	cfg, err := core.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveWorkspace returns the workspace ID to query. With no configured
// workspace it fetches the user's workspaces: a single workspace is used
// directly, multiple are either listed (with a hint) or picked interactively
// with --pick. An empty return with nil error means the listing was printed
// and the caller should stop.
func resolveWorkspace(cfg *models.Config) (string, error) {
	if cfg.WorkspaceID != "" {
		return cfg.WorkspaceID, nil
	}

	client := NewClient(integration.ClientConfig{APIKey: cfg.APIKey})
	workspaces, err := client.Workspaces()
	if err != nil {
		return "", err
	}
	if len(workspaces) == 0 {
		return "", fmt.Errorf("no workspaces found for this API key")
	}
	if len(workspaces) == 1 {
		fmt.Printf("Using the only workspace: %s\n\n", workspaces[0].Name)
		return workspaces[0].ID, nil
	}

	if projectsPickFlag {
		chosen, err := pickWorkspace(workspaces)
		if err != nil {
			return "", err
		}
		fmt.Printf("Selected workspace: %s\n", chosen.Name)
		fmt.Println(hintStyle.Render(fmt.Sprintf("Add workspace_id: %q to your config file to skip this step.", chosen.ID)))
		fmt.Println()
		return chosen.ID, nil
	}

	fmt.Println("Your workspaces:")
	for _, ws := range workspaces {
		fmt.Printf("  %s\n    ID: %s\n", ws.Name, ws.ID)
	}
	fmt.Println()
	fmt.Println(hintStyle.Render("Set workspace_id in the config (or CLOCKIFY_WORKSPACE_ID), or re-run with --pick."))
	return "", nil
}

// printScheduleSkeleton emits a schedule section for the config file, one
// item per project with defaults filled in.
func printScheduleSkeleton(projects []models.Project) error {
	skeleton := struct {
		Schedule []models.ScheduleItem `yaml:"schedule"`
	}{}

	for _, project := range projects {
		skeleton.Schedule = append(skeleton.Schedule, models.ScheduleItem{
			ProjectID:    project.ID,
			Name:         project.Name,
			DailyMinutes: 60,
			Billable:     true,
		})
	}

	out, err := yaml.Marshal(skeleton)
	if err != nil {
		return fmt.Errorf("marshaling schedule skeleton: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsConfigFlag, "config", "c", "config.yaml", "path to the configuration file")
	projectsCmd.Flags().BoolVar(&projectsArchivedFlag, "archived", false, "include archived projects")
	projectsCmd.Flags().BoolVar(&projectsYAMLFlag, "yaml", false, "print a schedule skeleton for the config file")
	projectsCmd.Flags().BoolVar(&projectsPickFlag, "pick", false, "pick the workspace interactively when several exist")
	rootCmd.AddCommand(projectsCmd)
}
