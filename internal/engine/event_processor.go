package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// emit - точка входа для всех событий симуляции: буфер для рассылки,
// подписчики и метрики.
func (s *Simulation) emit(ev domain.Event) {
	ev.Tick = s.CurrentTick

	if len(s.Events) >= maxPendingEvents {
		// Никто не забирает события - храним только свежие
		copy(s.Events, s.Events[1:])
		s.Events = s.Events[:len(s.Events)-1]
	}
	s.Events = append(s.Events, ev)

	for _, sink := range s.sinks {
		sink(ev)
	}
	s.Metrics.RecordEvent(ev.Type.String())

	logger.Log.WithFields(logrus.Fields{
		"component": "event_processor",
		"sim_id":    s.ID,
		"event":     ev.Type.String(),
		"entity_id": ev.EntityID,
		"tick":      ev.Tick,
	}).Trace("Event emitted")
}

// AddEventSink подписывает слушателя. Вызывается до Run.
func (s *Simulation) AddEventSink(sink EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// DrainEvents забирает накопленные события. Только из потока симуляции (OnTick).
func (s *Simulation) DrainEvents() []domain.Event {
	out := s.Events
	s.Events = make([]domain.Event, 0, len(out))
	return out
}
