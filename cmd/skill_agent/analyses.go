package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/db"
	"github.com/jonathan/skill-extractor/internal/export"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Manage saved analyses",
}

var analysesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAnalysesList,
}

var analysesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print or export a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysesGet,
}

var analysesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysesDelete,
}

var (
	analysesOwner  string
	analysesLimit  int
	analysesOffset int
	analysesFormat string
	analysesOut    string
)

func init() {
	analysesCmd.PersistentFlags().StringVar(&analysesOwner, "owner", "", "Owner of the analyses")
	analysesListCmd.Flags().IntVar(&analysesLimit, "limit", db.DefaultListLimit, "Maximum analyses to list")
	analysesListCmd.Flags().IntVar(&analysesOffset, "offset", 0, "Analyses to skip")
	analysesGetCmd.Flags().StringVar(&analysesFormat, "format", "", "Export format instead of printing: csv, json or xlsx")
	analysesGetCmd.Flags().StringVarP(&analysesOut, "out", "o", "", "Export file (required for xlsx)")

	analysesCmd.AddCommand(analysesListCmd, analysesGetCmd, analysesDeleteCmd)
	rootCmd.AddCommand(analysesCmd)
}

func runAnalysesList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	list, err := database.ListAnalyses(ctx, analysesOwner, analysesLimit, analysesOffset)
	if err != nil {
		return err
	}
	printer(cmd).PrintAnalyses(list)
	return nil
}

func runAnalysesGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis id: %w", err)
	}
	var format export.Format
	if analysesFormat != "" {
		if format, err = export.ParseFormat(analysesFormat); err != nil {
			return err
		}
		if format == export.FormatXLSX && analysesOut == "" {
			return fmt.Errorf("--out is required for xlsx export")
		}
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	skillDB, err := skillDatabase(cfg)
	if err != nil {
		return err
	}
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	a, err := database.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.Owner != analysesOwner {
		return fmt.Errorf("analysis not found: %s", id)
	}

	if format != "" {
		return writeExport(cmd.OutOrStdout(), analysesOut, format, a)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Analysis %s (%s)\nCandidate:   %s\nRequirement: %s\n",
		a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.CandidateSource, a.RequirementSource)
	printAnalysis(cmd, skillDB, a)
	return nil
}

func runAnalysesDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis id: %w", err)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	a, err := database.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if a == nil || a.Owner != analysesOwner {
		return fmt.Errorf("analysis not found: %s", id)
	}
	if _, err := database.DeleteAnalysis(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %s\n", id)
	return nil
}
