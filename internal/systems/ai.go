package systems

import (
	"math"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Perceive - видит ли агент игрока прямым лучом в пределах дальности зрения.
func Perceive(agent, player *domain.Entity, rc domain.Raycaster) bool {
	if agent.AI == nil || !player.Alive() {
		return false
	}
	seen := HasLineOfSight(rc, agent, player, agent.AI.VisionRange)

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"agent_id":  agent.ID,
		"player_id": player.ID,
		"seen":      seen,
	}).Trace("Perception check.")
	return seen
}

// DecideMoveInput - горизонтальный ввод к игроку (единичный знак).
// Внутри мертвой зоны или без осведомленности агент стоит.
func DecideMoveInput(agent, player *domain.Entity) float64 {
	if agent.AI == nil || !agent.AI.Aware || !player.Alive() {
		return 0
	}
	dx := player.Position().X - agent.Position().X
	if math.Abs(dx) > agent.AI.DeadZone {
		return domain.Sign(dx)
	}
	return 0
}

// InEngageRange - игрок достаточно близко для атаки
func InEngageRange(agent, player *domain.Entity) bool {
	if agent.AI == nil || !player.Alive() {
		return false
	}
	return agent.Position().DistanceTo(player.Position()) <= agent.AI.EngageDistance
}

// FaceToward разворачивает сущность к цели. Цель строго над или под - без изменений.
func FaceToward(e, target *domain.Entity) {
	e.SetFacing(target.Position().X - e.Position().X)
}

// StopMotion обнуляет ввод и скорость
func StopMotion(e *domain.Entity) {
	if e.Body == nil {
		return
	}
	e.Body.Input = domain.Zero
	e.Body.Velocity = domain.Zero
	e.Body.VelocityXSmoothing = 0
}
