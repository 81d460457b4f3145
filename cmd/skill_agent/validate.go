package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/schemas"
	"github.com/jonathan/skill-extractor/internal/skills"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a skill database or exported analysis JSON file",
	Long: `Check a JSON file against its schema. Skill databases are also checked for empty or
duplicate categories and skills listed more than once.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateKind string

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", "skills", "Document kind: skills or analysis")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	switch validateKind {
	case "skills":
		if err := schemas.ValidateFile(schemas.SkillDatabase, path); err != nil {
			return err
		}
		database, err := skills.LoadDatabaseFile(path)
		if err != nil {
			return err
		}
		o := database.Overview()
		_, _ = fmt.Fprintf(out, "%s: valid skill database (%d categories, %d skills, %d abbreviations, %d synonyms, %d relationships)\n",
			path, o.Categories, o.Skills, o.Abbreviations, o.Synonyms, o.Relationships)
	case "analysis":
		if err := schemas.ValidateFile(schemas.Analysis, path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s: valid analysis\n", path)
	default:
		return fmt.Errorf("unknown kind %q (use skills or analysis)", validateKind)
	}
	return nil
}
