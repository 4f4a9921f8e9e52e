package main

import (
	"fmt"

	"go-superjob-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Browser: %s\n", cfg.Browser)
	fmt.Printf("   Resume ID: %s\n", cfg.ResumeID)
	fmt.Printf("   Keywords: %v\n", cfg.SearchKeywords)
	fmt.Printf("   Exclude: %v\n", cfg.ExcludeKeywords)
	fmt.Printf("   Limit/pages: %d x %d\n", cfg.SearchLimit, cfg.MaxPages)
	fmt.Printf("   Min salary: %d\n", cfg.MinSalary)
	fmt.Printf("   Cover letter: %d chars\n", len(cfg.CoverLetter))
	fmt.Printf("   Cookie cache: %s\n", cfg.CookieCacheFile)
	fmt.Printf("   Results file: %s\n", cfg.ResultsFile)
	fmt.Printf("   Telegram enabled: %t\n", cfg.TelegramEnabled())
}
