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
	fmt.Println("💬 Testing chat list...")

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := superjob.NewClient(cookiecache.New(cfg.CookieCacheFile))
	if err := client.AuthFromBrowser(ctx, cfg.Browser, cfg.ForceRefresh); err != nil {
		log.Fatalf("❌ Authentication failed: %v", err)
	}

	chats, err := client.GetChats(ctx, 20)
	if err != nil {
		log.Fatalf("❌ Failed to list chats: %v", err)
	}

	fmt.Printf("✅ %d chats\n\n", len(chats))
	for _, c := range chats {
		fmt.Printf("  %s (%s)\n", c.Vacancy, c.Company)
		if c.LastMessage != "" {
			fmt.Printf("      last: %s\n", c.LastMessage)
		}
		fmt.Printf("      %s\n", c.URL)
	}
}
