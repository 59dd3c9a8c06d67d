package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/ai-interview/internal/config"
	"alfredoptarigan/ai-interview/internal/repositories"
	"alfredoptarigan/ai-interview/internal/services"
)

func main() {
	log.Println("🚀 Starting resume re-indexing...")

	cfg := config.Load()
	if !cfg.IndexEnabled() {
		log.Fatalf("❌ Vector index disabled: set QDRANT_URL and GEMINI_API_KEY")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	resumeRepo := repositories.NewResumeRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	index := services.NewResumeIndex(resumeRepo, geminiService, qdrantService)

	resumes, err := resumeRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to list resumes: %v", err)
	}

	successCount := 0
	failCount := 0

	for _, resume := range resumes {
		log.Printf("📄 Indexing resume %s (%s)", resume.ID, resume.Filename)
		if err := index.IndexResume(ctx, resume.ID); err != nil {
			log.Printf("   ❌ Failed: %v", err)
			failCount++
			continue
		}
		successCount++
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Re-index Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes indexed successfully!")
}
