package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/config"
	"github.com/jonathan/skill-extractor/internal/db"
	"github.com/jonathan/skill-extractor/internal/fetch"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/llm"
	"github.com/jonathan/skill-extractor/internal/observability"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/similarity"
)

// Global flags shared by every command.
var (
	configPath     string
	skillsDBPath   string
	databaseURL    string
	apiKey         string
	embeddingModel string
	useBrowser     bool
	verbose        bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&skillsDBPath, "skills-db", "", "Custom skill database JSON (defaults to the built-in database, or SKILLS_DB)")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	flags.StringVar(&apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&embeddingModel, "embedding-model", "", "Gemini embedding model")
	flags.BoolVar(&useBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadSettings resolves configuration: config file, then explicitly set flags, then
// environment variables and package defaults for whatever is still empty.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("skills-db") {
		cfg.SkillsDB = skillsDBPath
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("embedding-model") {
		cfg.EmbeddingModel = embeddingModel
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verbose && configPath != "" {
		log.Printf("[VERBOSE] Loaded config from: %s", configPath)
	}
	return &cfg, nil
}

// skillDatabase loads the configured skill database or the built-in one.
func skillDatabase(cfg *config.Config) (*skills.Database, error) {
	if cfg.SkillsDB == "" {
		return skills.Default()
	}
	return skills.LoadDatabaseFile(cfg.SkillsDB)
}

// connectDB connects to PostgreSQL and makes sure the schema exists.
func connectDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// ingestOptions builds URL ingestion options. When a database is configured, fetched pages
// are cached in it; a connection failure only disables the cache. The returned func
// releases the connection.
func ingestOptions(ctx context.Context, cfg *config.Config) (*ingestion.URLOptions, func()) {
	var store fetch.PageStore
	release := func() {}
	if cfg.DatabaseURL != "" {
		database, err := connectDB(ctx, cfg)
		if err != nil {
			log.Printf("Warning: page cache disabled: %v", err)
		} else {
			store = database
			release = database.Close
		}
	}
	return urlOptions(cfg, store), release
}

// urlOptions builds URL ingestion options over an optional page cache.
func urlOptions(cfg *config.Config, store fetch.PageStore) *ingestion.URLOptions {
	return &ingestion.URLOptions{
		Fetcher:    fetch.NewCachedFetcher(store, nil, 0, cfg.Verbose),
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	}
}

// newEmbedder returns a caching Gemini embedder. The returned func closes the client.
func newEmbedder(ctx context.Context, cfg *config.Config) (similarity.Embedder, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required: %w", similarity.ErrNoEmbedder)
	}
	llmCfg := llm.DefaultConfig().WithModel(cfg.EmbeddingModel)
	gemini, err := llm.NewEmbedder(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := gemini.Close(); err != nil {
			log.Printf("Warning: failed to close embedding client: %v", err)
		}
	}
	return llm.NewCachingEmbedder(gemini, llmCfg.CacheSize), closeFn, nil
}

// readInput returns inline text when given, otherwise the cleaned text of source
// (a file path or URL).
func readInput(ctx context.Context, cfg *config.Config, source, text string) (string, error) {
	if text != "" {
		return text, nil
	}
	if source == "" {
		return "", fmt.Errorf("a file path, URL or --text is required")
	}
	var cleaned string
	var meta *ingestion.Metadata
	var err error
	if ingestion.IsURL(source) {
		opts, release := ingestOptions(ctx, cfg)
		defer release()
		cleaned, meta, err = ingestion.IngestFromURL(ctx, source, opts)
	} else {
		cleaned, meta, err = ingestion.IngestFromFile(source)
	}
	if err != nil {
		return "", err
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] Read %s (%s, %d chars)", source, meta.Type, meta.CleanedChars)
	}
	return cleaned, nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

// firstArg returns args[0] or "".
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// splitComma splits a comma-separated flag value, trimming entries and dropping empty ones.
func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
