package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/systems"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// updateEntities - тиковое обновление всех сущностей в порядке регистрации
func (s *Simulation) updateEntities(dt float64) {
	movement := s.Config.Movement

	for _, e := range s.World.Entities() {
		if e.Destroyed {
			continue
		}
		systems.ClearStaleReferences(e)

		// Предмет в руках едет за носителем, добычу ведет задача подбора
		if e.IsHeld() {
			continue
		}
		if e.Loot != nil && e.Loot.Collected {
			continue
		}
		if e.Body == nil {
			continue
		}

		systems.StepMovement(e, dt, movement)
		s.checkStomp(e)
		s.checkBounds(e)
	}
}

// checkStomp - движение уперлось в цель сверху: атака прыжком
func (s *Simulation) checkStomp(e *domain.Entity) {
	if e.Destroyed || e.Grounded() {
		return
	}
	target := e.Body.Collisions.Target
	if target == nil || !systems.CanStomp(e, target, s.Config.Combat) {
		return
	}
	if s.Tasks.ActiveFor(e, taskJumpAttack) > 0 {
		return
	}
	s.spawnTask(&jumpAttackTask{owner: e, target: target})
}

// checkBounds - упавшие ниже плоскости смерти умирают (без Hurt) или исчезают
func (s *Simulation) checkBounds(e *domain.Entity) {
	if e.Destroyed || !systems.IsOutOfBounds(e, s.Config.Movement) {
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"entity_id": e.ID,
		"y":         e.Position().Y,
	}).Debug("Entity fell out of bounds.")

	if e.Stats != nil {
		s.Kill(e)
		return
	}
	s.RemoveEntity(e)
}

// processTriggers раздает события зон наблюдателям
func (s *Simulation) processTriggers() {
	for _, ev := range s.Triggers.Update(s.World.Entities()) {
		if ev.Self.Destroyed {
			continue
		}
		out := systems.HandleTrigger(ev)
		if out.CollectLoot {
			s.collectLoot(ev.Self, ev.Other)
		}
	}
}

// collectLoot кладет добычу в инвентарь сразу при касании, полет к сборщику - задача
func (s *Simulation) collectLoot(collector, loot *domain.Entity) {
	if err := systems.BeginLootPickup(collector, loot); err != nil {
		logger.Log.WithError(err).WithField("collector_id", collector.ID).Debug("Loot pickup skipped.")
		return
	}

	count := systems.AddLootToInventory(collector, loot)
	s.emit(domain.Event{
		Type:     domain.EventInventoryChanged,
		EntityID: collector.ID,
		OtherID:  loot.ID,
		Value:    count,
		Text:     loot.Loot.Path,
	})

	s.spawnTask(&lootPickupTask{collector: collector, loot: loot})
}
