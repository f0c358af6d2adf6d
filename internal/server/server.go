// Package server — web presentation слой поверх pkg/engine.
//
// Тонкий JSON API плюс встроенная страница. Ядро про этот пакет
// не знает: сервер только потребляет кортеж {category, confidence,
// temperature, response}.
package server

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilkoid/smarttemp/pkg/engine"
	"github.com/ilkoid/smarttemp/pkg/history"
	"github.com/ilkoid/smarttemp/pkg/utils"
)

//go:embed index.html
var indexHTML []byte

// Server — HTTP обвязка пайплайна.
type Server struct {
	engine  *engine.Engine
	history *history.Store // Может быть nil — история опциональна
	limit   int            // Дефолтный размер выборки истории
	router  *mux.Router
}

// New создаёт сервер и регистрирует маршруты.
func New(eng *engine.Engine, hist *history.Store, historyLimit int) *Server {
	if historyLimit <= 0 {
		historyLimit = 50
	}

	s := &Server{
		engine:  eng,
		history: hist,
		limit:   historyLimit,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/analyze", s.handleAnalyze).Methods("POST")
	s.router.HandleFunc("/api/generate", s.handleGenerate).Methods("POST")
	s.router.HandleFunc("/api/history", s.handleHistory).Methods("GET")
	s.router.HandleFunc("/api/history", s.handleHistoryClear).Methods("DELETE")
	s.router.HandleFunc("/api/temperature-series", s.handleTemperatureSeries).Methods("GET")

	return s
}

// Router возвращает http.Handler для http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

// promptRequest — тело POST запросов с промптом.
type promptRequest struct {
	Prompt string `json:"prompt"`
}

// outcomeResponse — кортеж результата для UI.
type outcomeResponse struct {
	Prompt      string             `json:"prompt"`
	Category    string             `json:"category"`
	Confidence  float64            `json:"confidence"`
	Temperature float64            `json:"temperature"`
	Scores      map[string]float64 `json:"scores"`
	Response    string             `json:"response,omitempty"`
	Source      string             `json:"source,omitempty"`
	ElapsedMs   int64              `json:"elapsed_ms,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleAnalyze — только классификация и температура, без генерации.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	analysis := s.engine.Analyze(req.Prompt)

	writeJSON(w, http.StatusOK, outcomeResponse{
		Prompt:      analysis.Prompt,
		Category:    analysis.Category,
		Confidence:  analysis.Confidence,
		Temperature: analysis.Temperature,
		Scores:      analysis.Scores,
	})
}

// handleGenerate — полный пайплайн с генерацией ответа.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePrompt(w, r)
	if !ok {
		return
	}

	outcome, err := s.engine.Generate(r.Context(), req.Prompt)
	if err != nil {
		// Сюда попадаем только при отменённом клиентском контексте
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	if s.history != nil {
		if err := s.history.Record(history.Entry{
			Prompt:      outcome.Prompt,
			Category:    outcome.Category,
			Confidence:  outcome.Confidence,
			Temperature: outcome.Temperature,
			Response:    outcome.Response,
			Source:      outcome.Source,
		}); err != nil {
			utils.Warn("failed to record history entry", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		Prompt:      outcome.Prompt,
		Category:    outcome.Category,
		Confidence:  outcome.Confidence,
		Temperature: outcome.Temperature,
		Scores:      outcome.Scores,
		Response:    outcome.Response,
		Source:      outcome.Source,
		ElapsedMs:   outcome.Elapsed.Milliseconds(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := s.limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.history.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	if err := s.history.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTemperatureSeries(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	points, err := s.history.TemperatureSeries(s.limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []history.TemperaturePoint{}
	}

	writeJSON(w, http.StatusOK, points)
}

// decodePrompt читает и валидирует тело запроса.
func (s *Server) decodePrompt(w http.ResponseWriter, r *http.Request) (promptRequest, bool) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return promptRequest{}, false
	}
	// Пустой промпт валиден: классификатор вернёт fallback категорию
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
