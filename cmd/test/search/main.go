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
	fmt.Println("🔎 Testing vacancy search...")

	cfg := config.Load()
	if len(cfg.SearchKeywords) == 0 {
		log.Fatalf("SEARCH_KEYWORDS is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := superjob.NewClient(cookiecache.New(cfg.CookieCacheFile))
	if err := client.AuthFromBrowser(ctx, cfg.Browser, cfg.ForceRefresh); err != nil {
		log.Fatalf("❌ Authentication failed: %v", err)
	}

	keyword := cfg.SearchKeywords[0]
	result, err := client.SearchVacancies(ctx, keyword, cfg.SearchLimit, 0)
	if err != nil {
		log.Fatalf("❌ Search failed: %v", err)
	}

	fmt.Printf("✅ %q: %d of %d total\n\n", keyword, len(result.Vacancies), result.Total)
	for _, v := range result.Vacancies {
		salary := "salary not stated"
		if v.SalaryMin > 0 || v.SalaryMax > 0 {
			salary = fmt.Sprintf("%d-%d", v.SalaryMin, v.SalaryMax)
		}
		fmt.Printf("  [%s] %s (%s, %s)\n      %s\n", v.ID, v.Title, v.Company, salary, v.URL)
	}
}
