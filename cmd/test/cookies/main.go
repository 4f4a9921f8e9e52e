package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-superjob-automation/internal/browser"
	"go-superjob-automation/internal/config"
)

func main() {
	fmt.Println("🍪 Testing cookie extraction...")

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	names, err := browser.Candidates(cfg.Browser)
	if err != nil {
		log.Fatalf("Bad BROWSER setting: %v", err)
	}

	for _, name := range names {
		cookies, err := browser.Extract(ctx, name, "https://www.superjob.ru")
		if err != nil {
			fmt.Printf("⚠️ %s: %v\n", name, err)
			continue
		}
		fmt.Printf("✅ %s: %d cookies\n", name, len(cookies))

		//show which session cookies are there, values masked
		for _, required := range []string{"uat", "sat", "sask"} {
			if v, ok := cookies[required]; ok {
				fmt.Printf("   %s: %d chars\n", required, len(v))
			} else {
				fmt.Printf("   %s: missing\n", required)
			}
		}
	}
}
