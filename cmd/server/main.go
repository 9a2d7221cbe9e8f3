package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/daniel-soulful/giftly-new/config"
	httpDelivery "github.com/daniel-soulful/giftly-new/internal/delivery/http"
	"github.com/daniel-soulful/giftly-new/internal/domain"
	"github.com/daniel-soulful/giftly-new/internal/infrastructure/catalog"
	"github.com/daniel-soulful/giftly-new/internal/infrastructure/gemini"
	"github.com/daniel-soulful/giftly-new/internal/infrastructure/serpapi"
	"github.com/daniel-soulful/giftly-new/internal/usecase"
)

func main() {
	// .env is optional, used for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Giftly Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Local catalog is the only hard dependency; without it the fallback
	// tier cannot work and startup fails.
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()
	log.Printf("Catalog store: %s", cfg.Catalog.Path)

	searchClient := serpapi.NewClient(serpapi.Config{
		APIKey:   cfg.SerpAPI.APIKey,
		BaseURL:  cfg.SerpAPI.BaseURL,
		Country:  cfg.SerpAPI.Country,
		Language: cfg.SerpAPI.Language,
		PageSize: cfg.SerpAPI.PageSize,
		Timeout:  cfg.SerpAPI.Timeout,
	})
	if cfg.Server.Environment == "development" {
		searchClient.SetDebug(true)
	}
	if cfg.SerpAPI.APIKey != "" {
		log.Printf("SerpAPI configured: %s (gl=%s)", cfg.SerpAPI.BaseURL, cfg.SerpAPI.Country)
	} else {
		log.Printf("WARNING: SerpAPI key not configured - live search disabled, catalog only")
	}

	var reranker domain.Reranker
	if cfg.Gemini.APIKey != "" {
		geminiReranker, err := gemini.NewReranker(context.Background(), gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			log.Fatalf("Failed to create Gemini reranker: %v", err)
		}
		defer geminiReranker.Close()
		reranker = geminiReranker
		log.Printf("Gemini reranker configured: %s", cfg.Gemini.Model)
	} else {
		log.Printf("Gemini reranker not configured - rerank stage disabled")
	}

	ideasService := usecase.NewIdeasService(
		searchClient,
		store,
		reranker,
		usecase.IdeasServiceConfig{
			Need:               cfg.Selection.Need,
			ShortlistFactor:    cfg.Selection.ShortlistFactor,
			SearchTimeout:      cfg.SerpAPI.Timeout,
			RerankTimeout:      cfg.Gemini.Timeout,
			Currency:           cfg.Selection.Currency,
			WindowRatios:       cfg.Selection.WindowRatios,
			LocalMerchants:     cfg.Selection.LocalMerchants,
			EnableDebugLogging: cfg.Selection.EnableDebugLogging,
		},
	)

	log.Printf("Selection: need=%d, ratios=%v", cfg.Selection.Need, cfg.Selection.WindowRatios)

	handler := httpDelivery.NewHandler(ideasService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
