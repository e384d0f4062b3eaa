package engine

import (
	"math"

	"platforms-server/internal/domain"
	"platforms-server/internal/systems"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Команды управления. Реализуют handlers.Commands.
// Невыполнимая команда - тихий отказ (false), а не ошибка.

// SetInput задает вектор ввода. Компоненты обрезаются до [-1, 1].
func (s *Simulation) SetInput(e *domain.Entity, v domain.Vec2) bool {
	if !e.Alive() || e.Body == nil {
		return false
	}
	e.Body.Input = domain.Vec2{X: clampUnit(v.X), Y: clampUnit(v.Y)}
	return true
}

// SetJump ставит прыжок в очередь на следующий тик
func (s *Simulation) SetJump(e *domain.Entity, fastDrop bool, intensity float64) bool {
	if !e.Alive() || e.Body == nil {
		return false
	}
	return systems.RequestJump(e, fastDrop, intensity)
}

// SetAttack - атака, если состояние свободно
func (s *Simulation) SetAttack(e *domain.Entity) bool {
	return s.startAttack(e) != nil
}

// SetRoll - перекат, если состояние свободно
func (s *Simulation) SetRoll(e *domain.Entity) bool {
	return s.startRoll(e) != nil
}

// Throw бросает предмет из рук
func (s *Simulation) Throw(e *domain.Entity) bool {
	if !e.Alive() || e.Held() == nil {
		return false
	}
	item, err := systems.ThrowItem(e, s.World.ItemContainer, s.Config.Combat)
	if err != nil {
		logger.Log.WithError(err).WithField("entity_id", e.ID).Warn("Throw failed")
		return false
	}
	return item != nil
}

// SetInteract - короткое нажатие: прервать открытие, войти в открытую дверь,
// поднять ближайший предмет или сбросить предмет из рук.
func (s *Simulation) SetInteract(e *domain.Entity) bool {
	if !e.Alive() || e.Interaction == nil {
		return false
	}

	nearby := e.Nearby()
	if nearby != nil && nearby.Openable != nil {
		o := nearby.Openable
		if o.Opening {
			return s.CancelOpening(nearby)
		}
		if nearby.Kind == domain.KindDoor && o.Opened {
			s.emit(domain.Event{
				Type:     domain.EventDoorEnter,
				EntityID: e.ID,
				OtherID:  nearby.ID,
				Text:     o.Destination,
			})
			logger.Log.WithFields(logrus.Fields{
				"component":   "simulation",
				"entity_id":   e.ID,
				"door_id":     nearby.ID,
				"destination": o.Destination,
			}).Info("Door entered.")
			return true
		}
	}

	if nearby != nil && nearby.Item != nil && nearby.Item.Pickable && nearby != e.Held() {
		return s.Pickup(e, nearby) != nil
	}
	return s.Drop(e) != nil
}

// SetInteractHold - удержание кнопки: начать открывать дверь или сундук
func (s *Simulation) SetInteractHold(e *domain.Entity) bool {
	if !e.Alive() || e.Interaction == nil {
		return false
	}
	nearby := e.Nearby()
	if nearby == nil || nearby.Openable == nil {
		return false
	}
	return s.StartOpening(e, nearby) != nil
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
