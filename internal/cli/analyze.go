package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one-off analysis tools",
	}

	cmd.AddCommand(newAnalyzeContentCmd())
	cmd.AddCommand(newAnalyzeSchemaCmd())
	cmd.AddCommand(newAnalyzeChatCmd())

	return cmd
}

func newAnalyzeContentCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "content [text]",
		Short: "Analyze content for AI visibility",
		Long: `Analyze a piece of content for AI visibility. Pass the content as an
argument, via --file, or pipe it on stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(args, file)
			if err != nil {
				return err
			}

			ctx := context.Background()
			analysis, err := apiClient.Analysis().AnalyzeContent(ctx, content)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(analysis)
			}

			fmt.Printf("Content score: %s (%d words)\n", formatScore(analysis.Score), analysis.WordCount)
			fmt.Printf("  AI optimization:  %d\n", analysis.AIOptimizationScore)
			fmt.Printf("  Semantic clarity: %d\n", analysis.SemanticClarityScore)
			fmt.Printf("  Entity coverage:  %d\n", analysis.EntityCoverageScore)
			fmt.Printf("  Readability:      %d\n", analysis.ReadabilityScore)
			if analysis.AnalysisSummary != "" {
				fmt.Printf("\n%s\n", analysis.AnalysisSummary)
			}
			printBullets("Strengths", analysis.Strengths)
			printBullets("Weaknesses", analysis.Weaknesses)
			printBullets("Recommendations", analysis.Recommendations)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read content from a file")

	return cmd
}

func newAnalyzeSchemaCmd() *cobra.Command {
	var schemaType string

	cmd := &cobra.Command{
		Use:   "schema <url>",
		Short: "Generate JSON-LD structured data for a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jsonld, err := apiClient.Analysis().GenerateSchema(ctx, args[0], schemaType)
			if err != nil {
				return fmt.Errorf("schema generation failed: %w", err)
			}

			fmt.Println(jsonld)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaType, "type", "Organization", "schema.org type (Organization, Article, Product, FAQPage, ...)")

	return cmd
}

func newAnalyzeChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the AI assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reply, err := apiClient.Analysis().Chat(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(reply)
			}

			fmt.Println(reply.Response)
			printBullets("Suggested questions", reply.SuggestedQuestions)
			return nil
		},
	}
}

func readContent(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no content provided: pass text, --file, or pipe on stdin")
}

func printBullets(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
