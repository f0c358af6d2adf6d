// backend-ping — утилита для проверки доступности генерирующего бэкенда.
//
// Использование:
//
//	go run cmd/backend-ping/main.go [config.yaml]
//
// Выход с кодом 1 если бэкенд не отвечает — удобно для скриптов.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/llm/openai"
)

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", cfgPath, err)
	}

	fmt.Printf("Testing backend: %s (%s)\n", cfg.Backend.Provider, cfg.Backend.BaseURL)
	fmt.Printf("Model: %s\n\n", cfg.Backend.ModelName)

	client := openai.NewClient(cfg.Backend)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	start := time.Now()
	err = client.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		fmt.Printf("Status: UNAVAILABLE\n")
		fmt.Printf("Error:  %v\n", err)
		fmt.Println("\nThe pipeline will fall back to mock responses.")
		os.Exit(1)
	}

	fmt.Printf("Status:  AVAILABLE\n")
	fmt.Printf("Latency: %dms\n", latency.Milliseconds())
}
