// analyze-util — one-shot анализ промпта из командной строки.
//
// Использование:
//
//	go run cmd/analyze-util/main.go What is the capital of Brazil?
//	go run cmd/analyze-util/main.go -generate Write a poem about rain
//
// Флаг -generate дополнительно выполняет генерацию ответа
// (через живой бэкенд или mock, по конфигурации).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/engine"
	"github.com/ilkoid/smarttemp/pkg/utils"
)

func main() {
	generate := flag.Bool("generate", false, "also generate a response")
	cfgPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: analyze-util [-generate] [-config config.yaml] <your prompt text>")
		os.Exit(1)
	}
	prompt := strings.Join(flag.Args(), " ")

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Logger init error: %v", err)
	}
	defer utils.Close()

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("Engine init error: %v", err)
	}

	analysis := eng.Analyze(prompt)

	fmt.Printf("Prompt:      %q\n", prompt)
	fmt.Printf("Category:    %s\n", analysis.Category)
	fmt.Printf("Confidence:  %.3f\n", analysis.Confidence)
	fmt.Printf("Temperature: %.3f\n", analysis.Temperature)

	printScores(analysis.Scores)

	if !*generate {
		return
	}

	outcome, err := eng.Generate(context.Background(), prompt)
	if err != nil {
		log.Fatalf("Pipeline error: %v", err)
	}

	fmt.Printf("\nSource: %s (took %v)\n\n%s\n", outcome.Source, outcome.Elapsed, outcome.Response)
}

// printScores выводит скоры категорий по убыванию.
func printScores(scores map[string]float64) {
	if len(scores) == 0 {
		return
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return scores[names[i]] > scores[names[j]]
	})

	fmt.Println("Scores:")
	for _, name := range names {
		fmt.Printf("  %-14s %.3f\n", name, scores[name])
	}
}
