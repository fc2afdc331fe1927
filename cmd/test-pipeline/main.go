package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/agent"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/ai"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/brand"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/feedback"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/images"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/notifications"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/posts"
	"github.com/mkrtchyyan/AI-social-media-agent/internal/storage"
)

// End-to-end pipeline check against the live API. Useful for verifying
// credentials and model access before deploying the full server.
func main() {
	website := flag.String("website", "", "optional website URL to analyze")
	intent := flag.String("intent", "Announce our product launch", "post intent")
	platform := flag.String("platform", "linkedin", "target platform")
	flag.Parse()

	fmt.Println("Social Media Agent - Pipeline Test")
	fmt.Println("==================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.TextModel, cfg.ImageModel,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	composer, err := images.NewComposer(client, cfg.ImageOutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize image composer: %v", err)
	}

	scraper := brand.NewScraper(time.Duration(cfg.WebsiteFetchTimeoutSeconds)*time.Second, cfg.WebsiteContentLimit)

	service := agent.NewService(cfg,
		brand.NewAnalyzer(client, scraper),
		posts.NewGenerator(client),
		feedback.NewLoop(client),
		composer,
		store,
		nil,
		notifications.NewService(cfg),
	)

	ctx := context.Background()
	session := service.CreateSession()
	fmt.Printf("Session: %s\n", session.ID)

	fmt.Println("\nStep 1: Brand analysis...")
	profile, err := service.AnalyzeBrand(ctx, session.ID, brand.AnalyzeRequest{
		WebsiteURL: *website,
		ExistingPosts: []string{
			"Excited to share our latest milestone with the community!",
			"Building the future, one release at a time.",
		},
	})
	if err != nil {
		log.Fatalf("Brand analysis failed: %v", err)
	}
	fmt.Printf("   Tone: %s | Colors: %s\n", profile.BrandVoice.Tone,
		strings.Join(profile.VisualIdentity.PrimaryColors, ", "))

	fmt.Println("\nStep 2: Generating posts (this chains several model calls)...")
	result, err := service.GeneratePosts(ctx, session.ID, agent.GenerateRequest{
		Intent:   *intent,
		Platform: *platform,
		Count:    1,
	})
	if err != nil {
		log.Fatalf("Post generation failed: %v", err)
	}
	if len(result) == 0 {
		log.Fatal("Generation produced no variations; check API access and model names")
	}

	post := result[0]
	fmt.Printf("   Caption: %s\n", post.Caption)
	fmt.Printf("   Overlay: %s\n", post.OverlayText)
	fmt.Printf("   Critique score: %.1f\n", post.CritiqueScore)
	fmt.Printf("   Image: %s\n", post.ImagePath)

	fmt.Println("\nStep 3: Saving post...")
	base, err := service.SavePost(session.ID, post)
	if err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	fmt.Printf("   Saved as %s under %s\n", base, cfg.OutputDir)

	fmt.Println("\nPipeline test completed!")
}
