// smarttemp-web — web UI и JSON API для smarttemp.
//
// Использование:
//
//	go run cmd/smarttemp-web/main.go [config.yaml]
//
// Адрес сервера берётся из config server.addr (дефолт ":8080").
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ilkoid/smarttemp/internal/server"
	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/engine"
	"github.com/ilkoid/smarttemp/pkg/history"
	"github.com/ilkoid/smarttemp/pkg/utils"
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

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	utils.SetDebug(cfg.App.Debug)

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	hist, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer hist.Close()

	srv := server.New(eng, hist, cfg.History.Limit)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 10*time.Second,
	}

	// Останавливаем сервер при отмене контекста (SIGINT/SIGTERM)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			utils.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	log.Printf("SmartTemp web UI listening on %s (mock_mode=%v)", cfg.Server.Addr, cfg.Backend.MockMode)
	utils.Info("HTTP server started", "addr", cfg.Server.Addr)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}
