// Package main provides the skill_agent CLI: skill extraction, gap analysis and the REST API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_agent",
	Short: "Skill extraction and gap analysis",
	Long: `skill_agent extracts technical and soft skills from resumes and job descriptions,
compares a candidate against a requirement, recommends related skills and serves the same
operations over a REST API.

Configuration can be loaded from a JSON file using --config. Command-line flags override
config file values, which override environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
