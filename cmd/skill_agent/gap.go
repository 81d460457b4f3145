package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/export"
	"github.com/jonathan/skill-extractor/internal/pipeline"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare a candidate document against a requirement document",
	Long: `Read the candidate (resume) and requirement (job description) concurrently from files or
URLs, extract skills from both, report matched and missing skills with a match percentage and
status, and recommend related skills.

With --save the analysis is stored in PostgreSQL. With --format the analysis is exported as
csv, json or xlsx instead of printed.`,
	RunE: runGap,
}

var (
	gapCandidate   string
	gapRequirement string
	gapSave        bool
	gapOwner       string
	gapFormat      string
	gapOut         string
)

func init() {
	gapCmd.Flags().StringVarP(&gapCandidate, "candidate", "c", "", "Candidate resume: file path or URL (required)")
	gapCmd.Flags().StringVarP(&gapRequirement, "requirement", "r", "", "Job description: file path or URL (required)")
	gapCmd.Flags().BoolVar(&gapSave, "save", false, "Save the analysis to the database")
	gapCmd.Flags().StringVar(&gapOwner, "owner", "", "Owner recorded with a saved analysis")
	gapCmd.Flags().StringVar(&gapFormat, "format", "", "Export format instead of printing: csv, json or xlsx")
	gapCmd.Flags().StringVarP(&gapOut, "out", "o", "", "Export file (required for xlsx)")

	_ = gapCmd.MarkFlagRequired("candidate")
	_ = gapCmd.MarkFlagRequired("requirement")

	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	database, err := skillDatabase(cfg)
	if err != nil {
		return err
	}

	var format export.Format
	if gapFormat != "" {
		if format, err = export.ParseFormat(gapFormat); err != nil {
			return err
		}
		if format == export.FormatXLSX && gapOut == "" {
			return fmt.Errorf("--out is required for xlsx export")
		}
	}

	opts := pipeline.Options{
		Candidate:   gapCandidate,
		Requirement: gapRequirement,
		Owner:       gapOwner,
		Verbose:     cfg.Verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			if cfg.Verbose {
				log.Printf("[VERBOSE] [%s] %s", event.Step, event.Message)
			}
		},
	}
	if gapSave {
		store, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
		opts.Ingest = urlOptions(cfg, store)
	} else {
		var release func()
		opts.Ingest, release = ingestOptions(ctx, cfg)
		defer release()
	}

	result, err := pipeline.Analyze(ctx, database, opts)
	if result == nil {
		return err
	}
	if format != "" {
		if exportErr := writeExport(cmd.OutOrStdout(), gapOut, format, result.Analysis); exportErr != nil {
			return exportErr
		}
	} else {
		printAnalysis(cmd, database, result.Analysis)
	}
	if err != nil {
		return err
	}
	if result.Saved {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved analysis %s\n", result.Analysis.ID)
	}
	return nil
}

// printAnalysis prints both extractions, the gap report and explained recommendations.
func printAnalysis(cmd *cobra.Command, database *skills.Database, a *types.Analysis) {
	p := printer(cmd)
	p.PrintExtraction("CANDIDATE SKILLS", a.Candidate)
	p.PrintExtraction("REQUIRED SKILLS", a.Requirement)
	p.PrintGapReport(a.Report)
	p.PrintRecommendations(skills.ExplainRecommendations(database, a.Candidate))
}

// writeExport writes an analysis to path, or to stdout when path is empty.
func writeExport(stdout io.Writer, path string, format export.Format, a *types.Analysis) error {
	if path == "" {
		return export.Write(stdout, format, a)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, a); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	log.Printf("Wrote %s export to %s", format, path)
	return nil
}
