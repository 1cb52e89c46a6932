package http

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"intellicath/catheter"
	"intellicath/ml"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReadingStore is the persistence the handlers need.
type ReadingStore interface {
	SaveReading(ctx context.Context, r catheter.Reading) (bool, error)
	RecentReadings(ctx context.Context, limit int) ([]catheter.Reading, error)
	FirstCrossing(ctx context.Context) (string, bool, error)
}

type Handler struct {
	predictor ml.TimePredictor
	store     ReadingStore
	logger    *zap.Logger
	index     *template.Template
	now       func() time.Time
}

func NewHandler(predictor ml.TimePredictor, store ReadingStore, logger *zap.Logger) (*Handler, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		predictor: predictor,
		store:     store,
		logger:    logger,
		index:     index,
		now:       time.Now,
	}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict-post", h.handlePredict)
	mux.HandleFunc("GET /actual-time", h.handleActualTime)
	mux.HandleFunc("GET /api/readings", h.handleReadings)
	mux.HandleFunc("GET /api/health", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, nil); err != nil {
		h.logger.Error("render index", zap.Error(err))
	}
}

func (h *Handler) handleActualTime(w http.ResponseWriter, r *http.Request) {
	actual, ok, err := h.store.FirstCrossing(r.Context())
	if err != nil {
		h.logger.Error("fetch actual time", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	response := actualTimeResponse{}
	if ok {
		response.ActualTime = &actual
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleReadings(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	readings, err := h.store.RecentReadings(r.Context(), limit)
	if err != nil {
		h.logger.Error("query readings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": readings,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure here is a broken
	// client connection and there is nothing left to report to it.
	_ = json.NewEncoder(w).Encode(payload)
}
