package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-extractor/internal/config"
	"github.com/jonathan/skill-extractor/internal/fetch"
	"github.com/jonathan/skill-extractor/internal/server"
	"github.com/jonathan/skill-extractor/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the extraction, gap, recommendation and similarity
endpoints. Saved analyses need DATABASE_URL; /similarity needs GEMINI_API_KEY; setting
JWT_SECRET requires bearer tokens on /analyses.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	skillDB, err := skillDatabase(cfg)
	if err != nil {
		return err
	}

	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	srvCfg := server.Config{
		Port:      cfg.Port,
		Skills:    skillDB,
		TopK:      cfg.TopK,
		JWT:       jwtConfig,
		RateLimit: ratelimit.LoadConfig(),
	}

	var pages fetch.PageStore
	if cfg.DatabaseURL != "" {
		database, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		srvCfg.Store = database
		pages = database
	} else {
		log.Println("DATABASE_URL not set: /analyses endpoints disabled")
	}
	srvCfg.Ingest = urlOptions(cfg, pages)

	if cfg.APIKey != "" {
		emb, closeFn, err := newEmbedder(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		srvCfg.Embedder = emb
	} else {
		log.Println("GEMINI_API_KEY not set: /similarity disabled")
	}
	if jwtConfig == nil {
		log.Println("JWT_SECRET not set: /analyses endpoints are unauthenticated")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
