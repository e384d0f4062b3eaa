package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine"
	"platforms-server/internal/infrastructure/storage"
	"platforms-server/pkg/logger"
)

// JournalReader - чтение журнала событий
type JournalReader interface {
	Recent(ctx context.Context, limit int, eventType string) ([]storage.JournalEntry, error)
}

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
	Journal JournalReader
}

func NewDebugHandler(s *engine.GameService, journal JournalReader) *DebugHandler {
	return &DebugHandler{Service: s, Journal: journal}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/timers", h.handleTimers)
	mux.HandleFunc("/debug/tasks", h.handleTasks)
	mux.HandleFunc("/debug/events", h.handleEvents)
	mux.HandleFunc("/debug/schema", h.handleSchema)
}

// /debug/entities?kind=MONSTER - полные структуры сущностей, включая AI и боевое состояние
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	kind := domain.ParseKind(r.URL.Query().Get("kind"))

	var out []json.RawMessage
	var tick int64
	h.Service.Sim.Inspect(func(sim *engine.Simulation) {
		tick = sim.CurrentTick
		for _, e := range sim.World.Entities() {
			if kind != domain.KindUnknown && e.Kind != kind {
				continue
			}
			// Сериализуем под блокировкой: после выхода сущность меняет поток симуляции
			raw, err := json.Marshal(e)
			if err != nil {
				logger.Log.WithError(err).WithField("entity_id", e.ID).Warn("Failed to dump entity")
				continue
			}
			out = append(out, raw)
		}
	})

	writeJSON(w, map[string]interface{}{
		"tick":     tick,
		"entities": out,
	})
}

// /debug/timers - очередь циклов ИИ
func (h *DebugHandler) handleTimers(w http.ResponseWriter, r *http.Request) {
	var dump []map[string]interface{}
	var now float64
	h.Service.Sim.Inspect(func(sim *engine.Simulation) {
		now = sim.Time
		dump = sim.Scheduler.DebugDump()
	})
	writeJSON(w, map[string]interface{}{
		"time":   now,
		"timers": dump,
	})
}

// /debug/tasks - живые задачи
func (h *DebugHandler) handleTasks(w http.ResponseWriter, r *http.Request) {
	var dump []map[string]interface{}
	var tick int64
	h.Service.Sim.Inspect(func(sim *engine.Simulation) {
		tick = sim.CurrentTick
		dump = sim.Tasks.DebugDump()
	})
	writeJSON(w, map[string]interface{}{
		"tick":  tick,
		"tasks": dump,
	})
}

// /debug/events?limit=50&type=DEATH - журнал событий
func (h *DebugHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.Journal == nil {
		http.Error(w, "journal is disabled", http.StatusNotFound)
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, storage.MaxRecent)
	}

	entries, err := h.Journal.Recent(r.Context(), limit, strings.ToUpper(r.URL.Query().Get("type")))
	if err != nil {
		logger.Log.WithError(err).Warn("Journal query failed")
		http.Error(w, "journal query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

// /debug/schema?action=INPUT - JSON Schema полезной нагрузки. Без action - список команд.
func (h *DebugHandler) handleSchema(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		writeJSON(w, h.Service.Schemas.Actions())
		return
	}
	doc, ok := h.Service.Schemas.Document(action)
	if !ok {
		http.Error(w, "no schema for action", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(doc)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Log.WithError(err).Warn("Failed to write debug response")
	}
}
