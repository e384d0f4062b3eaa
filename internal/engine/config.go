package engine

import (
	"time"

	"platforms-server/internal/domain"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - зерно рандома симуляции. От него зависят урон, кровь и добыча из сундуков.
	Seed int64
	// TickRate - тиков в секунду. Шаг симуляции фиксирован: 1 / TickRate.
	TickRate int
	// SnapshotEvery - раз во сколько тиков рассылать UPDATE
	SnapshotEvery int

	Combat   domain.CombatTuning
	Movement domain.MovementTuning
	Loot     domain.LootTuning
	AI       domain.AITuning
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		TickRate:      60,
		SnapshotEvery: 3,
		Combat:        domain.DefaultCombatTuning(),
		Movement:      domain.DefaultMovementTuning(),
		Loot:          domain.DefaultLootTuning(),
		AI:            domain.DefaultAITuning(),
	}
}

// TickDelta - длительность одного тика в секундах
func (c Config) TickDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}
