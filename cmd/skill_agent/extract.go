package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/export"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file|url]",
	Short: "Extract skills from a document, URL or text",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtract,
}

var (
	extractText     string
	extractContexts bool
	extractJSON     bool
	extractCSV      bool
)

var phrasesCmd = &cobra.Command{
	Use:   "phrases [file|url]",
	Short: "Match skill phrases from a dictionary file against a document",
	Long:  "Match a skill dictionary (one phrase per line) against a document by case-insensitive token sequences.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPhrases,
}

var (
	phrasesDict string
	phrasesText string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [skill...]",
	Short: "Expand skill abbreviations",
	RunE:  runNormalize,
}

var normalizeSkills string

var recommendCmd = &cobra.Command{
	Use:   "recommend [file|url]",
	Short: "Recommend skills related to the ones found in a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecommend,
}

var recommendText string

func init() {
	extractCmd.Flags().StringVar(&extractText, "text", "", "Inline text instead of a file or URL")
	extractCmd.Flags().BoolVar(&extractContexts, "contexts", false, "Print the text around each match")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print JSON instead of formatted output")
	extractCmd.Flags().BoolVar(&extractCSV, "csv", false, "Print Category,Skill CSV rows instead of formatted output")
	extractCmd.MarkFlagsMutuallyExclusive("json", "csv")

	phrasesCmd.Flags().StringVar(&phrasesDict, "dict", "", "Skill dictionary file, one phrase per line (required)")
	phrasesCmd.Flags().StringVar(&phrasesText, "text", "", "Inline text instead of a file or URL")
	_ = phrasesCmd.MarkFlagRequired("dict")

	normalizeCmd.Flags().StringVar(&normalizeSkills, "skills", "", "Comma-separated skills")

	recommendCmd.Flags().StringVar(&recommendText, "text", "", "Inline text instead of a file or URL")

	rootCmd.AddCommand(extractCmd, phrasesCmd, normalizeCmd, recommendCmd)
}

// extractFrom loads settings and the skill database, reads the input and extracts skills.
func extractFrom(cmd *cobra.Command, source, text string) (*skills.Database, *types.ExtractionResult, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	database, err := skillDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	input, err := readInput(context.Background(), cfg, source, text)
	if err != nil {
		return nil, nil, err
	}
	return database, skills.Extract(database, input), nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	database, result, err := extractFrom(cmd, firstArg(args), extractText)
	if err != nil {
		return err
	}
	overview := skills.Summarize(database, result)

	if extractJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"result": result, "overview": overview})
	}
	if extractCSV {
		return export.WriteCSV(cmd.OutOrStdout(), export.SkillRows(result))
	}

	p := printer(cmd)
	p.PrintExtraction("EXTRACTED SKILLS", result)
	if extractContexts {
		p.PrintContexts(result)
	}
	p.PrintOverview(overview)
	return nil
}

func runPhrases(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	matcher, err := skills.LoadPhraseMatcher(phrasesDict)
	if err != nil {
		return err
	}
	input, err := readInput(context.Background(), cfg, firstArg(args), phrasesText)
	if err != nil {
		return err
	}

	found := matcher.Match(input)
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Matched %d of %d phrases\n", len(found), matcher.Len())
	for _, phrase := range found {
		_, _ = fmt.Fprintf(out, "  - %s\n", phrase)
	}
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	database, err := skillDatabase(cfg)
	if err != nil {
		return err
	}

	list := append(splitComma(normalizeSkills), args...)
	if len(list) == 0 {
		return fmt.Errorf("provide skills as arguments or with --skills")
	}

	detailed := skills.NormalizeDetailed(database, list)
	p := printer(cmd)
	p.PrintNormalized(detailed)
	return nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	database, result, err := extractFrom(cmd, firstArg(args), recommendText)
	if err != nil {
		return err
	}
	p := printer(cmd)
	p.PrintExtraction("FOUND SKILLS", result)
	p.PrintRecommendations(skills.ExplainRecommendations(database, result))
	return nil
}
