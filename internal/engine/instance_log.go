package engine

import (
	"fmt"
	"time"

	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет строку в журнал сцены
func (s *Simulation) AddLog(text, logType string) {
	if len(s.Logs) >= maxLogs {
		s.Logs = s.Logs[1:]
	}
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d_%d", s.ID, s.CurrentTick, len(s.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"sim_id":    s.ID,
		"component": "game_log",
		"log_type":  logType,
		"tick":      s.CurrentTick,
	}).Info(text)
}

// DrainLogs забирает журнал после рассылки
func (s *Simulation) DrainLogs() []api.LogEntry {
	out := s.Logs
	s.Logs = []api.LogEntry{}
	return out
}
