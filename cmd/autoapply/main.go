package main

import (
	"context"
	"log"
	"time"

	"go-superjob-automation/internal/autoapply"
	"go-superjob-automation/internal/config"
	"go-superjob-automation/internal/cookiecache"
	"go-superjob-automation/internal/reporter"
	"go-superjob-automation/internal/superjob"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Keywords: %v", cfg.SearchKeywords)

	//setup context with timeout = 30 mins
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Println("🚀 Starting superjob auto-apply...")

	//authenticate with a borrowed browser session
	client := superjob.NewClient(cookiecache.New(cfg.CookieCacheFile))
	if cfg.CookiesFile != "" {
		if err := client.AuthFromFile(ctx, cfg.CookiesFile); err != nil {
			log.Fatalf("❌ Authentication failed: %v", err)
		}
	} else {
		if err := client.AuthFromBrowser(ctx, cfg.Browser, cfg.ForceRefresh); err != nil {
			log.Fatalf("❌ Authentication failed: %v", err)
		}
	}

	//without a resume id there is nothing to apply with
	if cfg.ResumeID == "" {
		resumes, err := client.GetMyResumes(ctx)
		if err != nil {
			log.Fatalf("❌ RESUME_ID is not set and the resume lookup failed: %v", err)
		}
		log.Println("❌ RESUME_ID is not set. Your resumes:")
		for _, r := range resumes {
			log.Printf("   %s  %s", r.ID, r.Title)
		}
		log.Fatal("Set RESUME_ID in .env and run again")
	}

	//run the search-and-apply loop
	stats, err := autoapply.NewRunner(client, cfg).Run(ctx)
	if err != nil {
		log.Fatalf("❌ Run failed: %v", err)
	}

	//save results
	if err := stats.WriteFile(cfg.ResultsFile); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", cfg.ResultsFile, err)
	} else {
		log.Printf("📁 Results saved to %s", cfg.ResultsFile)
	}

	//report to telegram when configured
	if cfg.TelegramEnabled() {
		bot, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram bot: %v", err)
		} else if err := bot.SendRunReport(stats); err != nil {
			log.Printf("⚠️ Failed to send Telegram report: %v", err)
		}
	}

	log.Printf("📊 Found %d, applied %d, failed %d, skipped %d, excluded %d",
		stats.TotalFound, stats.Applied, stats.Failed, stats.Skipped, stats.Excluded)
	log.Println("🏁 Execution finished.")
}
