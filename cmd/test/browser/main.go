package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"go-superjob-automation/internal/browser"
)

func main() {
	fmt.Println("🌐 Testing interactive login capture...")

	ctx := context.Background()

	cookies, err := browser.CaptureLogin(
		ctx,
		"https://www.superjob.ru/auth/login/",
		[]string{"uat", "sat", "sask"},
		5*time.Minute,
	)
	if err != nil {
		log.Fatalf("Capture failed: %v", err)
	}

	fmt.Printf("✅ Captured %d cookies\n", len(cookies))

	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("   %s (%d chars)\n", name, len(cookies[name]))
	}

	fmt.Println("✨ Test complete!")
}
