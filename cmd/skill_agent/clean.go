package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/ingestion"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Normalize document text",
	Long: `Read a document (txt, pdf, docx, html) or --text and print it normalized.

Modes: basic (line endings, hyphenated breaks, URLs, e-mails, whitespace), resume (contact
details removed, lower-cased, restricted character set) and stopwords (basic, then English
stop words and punctuation removed).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

var (
	cleanText string
	cleanMode string
	cleanOut  string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract and clean a document into <name>_parsed.txt and <name>.meta.json",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseOutDir string

func init() {
	cleanCmd.Flags().StringVar(&cleanText, "text", "", "Inline text instead of a file")
	cleanCmd.Flags().StringVar(&cleanMode, "mode", "basic", "Cleaning mode: basic, resume or stopwords")
	cleanCmd.Flags().StringVarP(&cleanOut, "out", "o", "", "Write the result to a file instead of stdout")

	parseCmd.Flags().StringVar(&parseOutDir, "out-dir", "output", "Output directory")

	rootCmd.AddCommand(cleanCmd, parseCmd)
}

// cleanByMode applies one of the cleaning modes to raw text.
func cleanByMode(mode, raw string) (string, error) {
	switch mode {
	case "", "basic":
		return ingestion.BasicClean(raw), nil
	case "resume":
		return ingestion.CleanResumeText(raw), nil
	case "stopwords":
		return ingestion.RemoveStopWords(ingestion.BasicClean(raw)), nil
	default:
		return "", fmt.Errorf("unknown mode %q (use basic, resume or stopwords)", mode)
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	raw := cleanText
	if raw == "" {
		path := firstArg(args)
		if path == "" {
			return fmt.Errorf("a file or --text is required")
		}
		var err error
		raw, err = ingestion.ReadDocument(path)
		if err != nil {
			return err
		}
	}

	cleaned, err := cleanByMode(cleanMode, raw)
	if err != nil {
		return err
	}

	if cleanOut != "" {
		if err := os.WriteFile(cleanOut, []byte(cleaned+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d chars to %s\n", len(cleaned), cleanOut)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cleaned)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	cleaned, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return err
	}

	name := ingestion.BaseName(path)
	if err := ingestion.WriteParsed(parseOutDir, name, cleaned, meta); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Parsed %s (%s): %d raw chars, %d cleaned chars\n",
		path, meta.Type, meta.RawChars, meta.CleanedChars)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s_parsed.txt and %s.meta.json to %s\n", name, name, parseOutDir)
	return nil
}
