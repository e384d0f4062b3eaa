package domain

import "encoding/json"

// ReplayAction - это запись одной внешней команды (от игрока или бота)
type ReplayAction struct {
	Tick    int64           `json:"tick"`
	Token   EntityID        `json:"token"`   // Кто сделал
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись сессии
type ReplaySession struct {
	Scene     string         `json:"scene"`
	Seed      int64          `json:"seed"` // Зерно рандома симуляции
	TickRate  int            `json:"tickRate"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"-"`
}
