package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seogenix/backend/pkg/client"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audits",
		Aliases: []string{"audit"},
		Short:   "Run and inspect visibility audits",
	}

	cmd.AddCommand(newAuditRunCmd())
	cmd.AddCommand(newAuditListCmd())
	cmd.AddCommand(newAuditLatestCmd())

	return cmd
}

func newAuditRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <site-id>",
		Short: "Run a new audit for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fmt.Println("Running audit, this can take up to a minute...")
			result, err := apiClient.Audits().Run(ctx, args[0])
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			printAuditResult(result)
			return nil
		},
	}
}

func newAuditListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <site-id>",
		Short: "List past audits for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			audits, err := apiClient.Audits().List(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list audits: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(audits)
			}

			if len(audits) == 0 {
				fmt.Println("No audits yet. Run one with 'seogenix audits run <site-id>'")
				return nil
			}

			table := NewTable("DATE", "VISIBILITY", "SCHEMA", "SEMANTIC", "CITATION", "TECHNICAL")
			for _, a := range audits {
				table.AddRow(
					a.CreatedAt.Format("2006-01-02 15:04"),
					strconv.Itoa(a.AIVisibilityScore),
					strconv.Itoa(a.SchemaScore),
					strconv.Itoa(a.SemanticScore),
					strconv.Itoa(a.CitationScore),
					strconv.Itoa(a.TechnicalSEOScore),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAuditLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest <site-id>",
		Short: "Show the most recent audit for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := apiClient.Audits().Latest(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get latest audit: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			printAuditResult(result)
			return nil
		},
	}
}

func printAuditResult(result *client.AuditResult) {
	fmt.Printf("Overall score: %s\n", formatScore(result.OverallScore))
	if a := result.Audit; a != nil {
		fmt.Printf("  AI visibility:  %d\n", a.AIVisibilityScore)
		fmt.Printf("  Schema:         %d\n", a.SchemaScore)
		fmt.Printf("  Semantic:       %d\n", a.SemanticScore)
		fmt.Printf("  Citations:      %d\n", a.CitationScore)
		fmt.Printf("  Technical SEO:  %d\n", a.TechnicalSEOScore)
		fmt.Printf("  Audited at:     %s\n", a.CreatedAt.Format("2006-01-02 15:04"))
	}
}
