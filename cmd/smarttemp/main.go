// smarttemp — TUI чат с динамической температурой.
//
// Использование:
//
//	go run cmd/smarttemp/main.go [config.yaml]
//
// Без config.yaml работает в mock режиме с дефолтными категориями.
package main

import (
	"log"
	"os"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/engine"
	"github.com/ilkoid/smarttemp/pkg/events"
	"github.com/ilkoid/smarttemp/pkg/tui"
	"github.com/ilkoid/smarttemp/pkg/utils"
)

func main() {
	// 1. Загружаем конфигурацию
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", cfgPath, err)
	}

	// 2. Логгер в файл — stdout занят TUI
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	utils.SetDebug(cfg.App.Debug)

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	// 3. Создаём движок и подключаем события
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	emitter := events.NewChanEmitter(16)
	defer emitter.Close()
	eng.SetEmitter(emitter)

	// 4. Запускаем TUI
	ui := tui.New(emitter.Subscribe(), tui.Config{
		Colors:        tui.GetColorScheme(cfg.App.ColorScheme),
		ModelName:     cfg.Backend.ModelName,
		MockMode:      cfg.Backend.MockMode,
		ShowTimestamp: true,
		MaxMessages:   500,
	})

	ui.OnInput(func(input string) {
		if _, err := eng.Generate(ctx, input); err != nil {
			utils.Error("pipeline failed", "error", err)
		}
	})

	if err := ui.Run(); err != nil {
		log.Fatalf("TUI exited with error: %v", err)
	}
}
