package cli

import (
	"context"
	"fmt"

	"github.com/seogenix/backend/pkg/client"
	"github.com/spf13/cobra"
)

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sites",
		Aliases: []string{"site"},
		Short:   "Manage tracked sites",
	}

	cmd.AddCommand(newSiteListCmd())
	cmd.AddCommand(newSiteAddCmd())
	cmd.AddCommand(newSiteDeleteCmd())
	cmd.AddCommand(newSiteCompetitorsCmd())

	return cmd
}

func newSiteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sites, err := apiClient.Sites().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sites: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sites)
			}

			if len(sites) == 0 {
				fmt.Println("No sites tracked yet. Add one with 'seogenix sites add <url>'")
				return nil
			}

			table := NewTable("ID", "NAME", "URL", "ADDED")
			for _, s := range sites {
				table.AddRow(
					truncate(s.ID, 12),
					truncate(s.Name, 24),
					truncate(s.URL, 40),
					s.CreatedAt.Format("2006-01-02"),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newSiteAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Track a new site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			site, err := apiClient.Sites().Create(ctx, client.CreateSiteRequest{
				URL:  args[0],
				Name: name,
			})
			if err != nil {
				return fmt.Errorf("failed to add site: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(site)
			}

			fmt.Printf("Site added: %s (%s)\n", site.URL, site.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the site")

	return cmd
}

func newSiteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-id>",
		Short: "Stop tracking a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Sites().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete site: %w", err)
			}
			fmt.Println("Site deleted")
			return nil
		},
	}
}

func newSiteCompetitorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "competitors",
		Short: "Manage competitor sites",
	}

	cmd.AddCommand(newCompetitorListCmd())
	cmd.AddCommand(newCompetitorAddCmd())

	return cmd
}

func newCompetitorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <site-id>",
		Short: "List competitors for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			competitors, err := apiClient.Sites().ListCompetitors(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list competitors: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(competitors)
			}

			if len(competitors) == 0 {
				fmt.Println("No competitors tracked for this site")
				return nil
			}

			table := NewTable("ID", "NAME", "URL")
			for _, c := range competitors {
				table.AddRow(
					truncate(c.ID, 12),
					truncate(c.Name, 24),
					truncate(c.URL, 40),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newCompetitorAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <site-id> <url>",
		Short: "Track a competitor under a site",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			competitor, err := apiClient.Sites().AddCompetitor(ctx, args[0], client.CreateSiteRequest{
				URL:  args[1],
				Name: name,
			})
			if err != nil {
				return fmt.Errorf("failed to add competitor: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(competitor)
			}

			fmt.Printf("Competitor added: %s (%s)\n", competitor.URL, competitor.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the competitor")

	return cmd
}
