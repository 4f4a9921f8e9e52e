package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-superjob-automation/internal/config"
	"go-superjob-automation/internal/cookiecache"
	"go-superjob-automation/internal/superjob"
)

func main() {
	fmt.Println("🔐 Testing authentication...")

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := superjob.NewClient(cookiecache.New(cfg.CookieCacheFile))

	var err error
	if cfg.CookiesFile != "" {
		err = client.AuthFromFile(ctx, cfg.CookiesFile)
	} else {
		err = client.AuthFromBrowser(ctx, cfg.Browser, cfg.ForceRefresh)
	}
	if err != nil {
		log.Fatalf("❌ Authentication failed: %v", err)
	}

	fmt.Println("✅ Session is authenticated")

	//list resumes so RESUME_ID can be picked
	resumes, err := client.GetMyResumes(ctx)
	if err != nil {
		log.Fatalf("Failed to list resumes: %v", err)
	}
	fmt.Printf("\n📄 Resumes (%d):\n", len(resumes))
	for _, r := range resumes {
		fmt.Printf("  %s  %s\n", r.ID, r.Title)
	}
}
