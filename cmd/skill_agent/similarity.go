package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/similarity"
	"github.com/jonathan/skill-extractor/internal/types"
)

var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Compare resume and job skills by sentence-embedding similarity",
	Long: `Embed resume and job-description skills with Gemini and report, for each job skill, the
closest resume skill: Strong (>= 0.75), Partial (>= 0.5) or Missing. Also lists the top-k job
matches for every resume skill.

Resume skills come from --resume (comma-separated) or are taken from the tokens of
--resume-file. Job skills come from --jd (comma-separated).`,
	RunE: runSimilarity,
}

var (
	simResume     string
	simResumeFile string
	simJD         string
	simTopK       int
	simJSON       bool
)

func init() {
	similarityCmd.Flags().StringVar(&simResume, "resume", "", "Comma-separated resume skills")
	similarityCmd.Flags().StringVar(&simResumeFile, "resume-file", "", "Resume file or URL to take candidate skills from")
	similarityCmd.Flags().StringVar(&simJD, "jd", "", "Comma-separated job-description skills (required)")
	similarityCmd.Flags().IntVarP(&simTopK, "top-k", "k", 0, "Matches per resume skill (default from config, 3)")
	similarityCmd.Flags().BoolVar(&simJSON, "json", false, "Print JSON instead of formatted output")

	_ = similarityCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(similarityCmd)
}

// resumeTokens turns resume text into candidate skill strings: aggressive cleaning, stop
// words removed, then short and repeated tokens dropped.
func resumeTokens(text string) []string {
	return similarity.CandidateSkills(ingestion.Tokenize(ingestion.RemoveStopWords(ingestion.CleanResumeText(text))))
}

func runSimilarity(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	resumeSkills := similarity.SplitList(simResume)
	if simResumeFile != "" {
		text, err := readInput(ctx, cfg, simResumeFile, "")
		if err != nil {
			return err
		}
		resumeSkills = similarity.CandidateSkills(append(resumeSkills, resumeTokens(text)...))
	}
	jdSkills := similarity.SplitList(simJD)
	if len(jdSkills) == 0 {
		return fmt.Errorf("--jd needs at least one skill")
	}

	k := simTopK
	if k <= 0 {
		k = cfg.TopK
	}

	emb, closeFn, err := newEmbedder(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	rows, err := similarity.GapReport(ctx, emb, jdSkills, resumeSkills)
	if err != nil {
		return err
	}
	matches, err := similarity.TopMatches(ctx, emb, resumeSkills, jdSkills, k)
	if err != nil {
		return err
	}

	if simJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"rows":        rows,
			"summary":     similarity.Summary(rows),
			"top_matches": matches,
		})
	}

	p := printer(cmd)
	p.PrintSimilarity(rows)
	if len(matches) > 0 {
		p.PrintTopMatches(matches)
	}
	summary := similarity.Summary(rows)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Strong: %d  Partial: %d  Missing: %d\n",
		summary[types.StatusStrong], summary[types.StatusPartial], summary[types.StatusMissing])
	return nil
}
