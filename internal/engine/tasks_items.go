package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/systems"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	taskPickup     = "pickup"
	taskDrop       = "drop"
	taskLootPickup = "loot_pickup"
	taskIndicator  = "indicator"
	taskOpen       = "open"
)

// --- PICKUP / DROP ---

// pickupTask сначала дожидается сброса текущего предмета
type pickupTask struct {
	owner *domain.Entity
	item  *domain.Entity
	drop  *TaskHandle
}

func (t *pickupTask) Name() string          { return taskPickup }
func (t *pickupTask) Owner() *domain.Entity { return t.owner }

func (t *pickupTask) Step(sim *Simulation, _ float64) bool {
	if !t.drop.Done() {
		return false
	}
	if !t.owner.Alive() || !t.item.Alive() || t.item.IsHeld() {
		return true
	}
	if err := systems.AttachItem(t.owner, t.item, sim.Config.Combat); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"component": "simulation",
			"owner_id":  t.owner.ID,
			"item_id":   t.item.ID,
		}).Warn("Pickup failed")
	}
	return true
}

type dropTask struct {
	owner *domain.Entity
}

func (t *dropTask) Name() string          { return taskDrop }
func (t *dropTask) Owner() *domain.Entity { return t.owner }

func (t *dropTask) Step(sim *Simulation, _ float64) bool {
	if _, err := systems.DetachItem(t.owner, sim.World.ItemContainer); err != nil {
		logger.Log.WithError(err).WithField("owner_id", t.owner.ID).Warn("Drop failed")
	}
	return true
}

// Pickup берет предмет, сбросив текущий
func (s *Simulation) Pickup(e, item *domain.Entity) *TaskHandle {
	if !e.Alive() || !item.Alive() || item.Item == nil || !item.Item.Pickable || item.IsHeld() {
		return nil
	}
	var drop *TaskHandle
	if e.Held() != nil {
		drop = s.Drop(e)
	}
	return s.spawnTask(&pickupTask{owner: e, item: item, drop: drop})
}

// Drop кладет предмет из рук в мир
func (s *Simulation) Drop(e *domain.Entity) *TaskHandle {
	if e.Held() == nil {
		return nil
	}
	return s.spawnTask(&dropTask{owner: e})
}

// --- LOOT ---

// lootPickupTask - полет добычи к сборщику. Владелец - добыча.
type lootPickupTask struct {
	collector *domain.Entity
	loot      *domain.Entity
}

func (t *lootPickupTask) Name() string          { return taskLootPickup }
func (t *lootPickupTask) Owner() *domain.Entity { return t.loot }

func (t *lootPickupTask) Step(sim *Simulation, dt float64) bool {
	if t.collector.Destroyed {
		sim.RemoveEntity(t.loot)
		return true
	}
	if systems.StepLootPickup(t.collector, t.loot, dt, sim.Config.Loot) {
		sim.RemoveEntity(t.loot)
		return true
	}
	return false
}

// --- INDICATOR ---

type indicatorTask struct {
	owner *domain.Entity
	glyph string
	left  float64
}

func (t *indicatorTask) Name() string          { return taskIndicator }
func (t *indicatorTask) Owner() *domain.Entity { return t.owner }

func (t *indicatorTask) Step(sim *Simulation, dt float64) bool {
	t.left -= dt
	if t.left > 0 {
		return false
	}
	t.clear(sim)
	return true
}

func (t *indicatorTask) Abort(sim *Simulation) {
	t.clear(sim)
}

func (t *indicatorTask) clear(sim *Simulation) {
	if t.owner.Render != nil && t.owner.Render.Indicator == t.glyph {
		t.owner.Render.Indicator = ""
	}
	if h, ok := sim.indicators[t.owner.ID]; ok && h.Task == t {
		delete(sim.indicators, t.owner.ID)
	}
}

// ShowIndicator показывает глиф над сущностью. Новый глиф заменяет старый.
func (s *Simulation) ShowIndicator(e *domain.Entity, glyph string) *TaskHandle {
	if e.Render == nil {
		return nil
	}
	if prev, ok := s.indicators[e.ID]; ok {
		s.Tasks.Cancel(s, prev)
	}
	e.Render.Indicator = glyph
	h := s.spawnTask(&indicatorTask{owner: e, glyph: glyph, left: s.Config.AI.IndicatorDuration})
	s.indicators[e.ID] = h
	return h
}

// --- OPEN ---

// openTask - удержание кнопки у двери или сундука. Владелец - сам объект.
type openTask struct {
	target *domain.Entity
	opener *domain.Entity
}

func (t *openTask) Name() string          { return taskOpen }
func (t *openTask) Owner() *domain.Entity { return t.target }

func (t *openTask) Step(sim *Simulation, dt float64) bool {
	o := t.target.Openable
	if !o.Opening {
		// Открытие отменили повторным нажатием
		return true
	}

	if o.Duration <= 0 {
		o.Progress = 1
	} else {
		o.Progress += dt / o.Duration
	}
	if o.Progress < 1 {
		return false
	}

	o.Progress = 1
	o.Opening = false
	o.Opened = true

	ev := domain.Event{Type: domain.EventOpened, EntityID: t.target.ID, Text: t.target.Kind.String()}
	if t.opener != nil {
		ev.OtherID = t.opener.ID
	}
	sim.emit(ev)

	if t.target.Kind == domain.KindChest {
		sim.spill(t.target)
	}
	return true
}

func (t *openTask) Abort(*Simulation) {
	t.target.Openable.Opening = false
}

// StartOpening начинает открывать дверь или сундук
func (s *Simulation) StartOpening(opener, target *domain.Entity) *TaskHandle {
	if target == nil || target.Openable == nil {
		return nil
	}
	o := target.Openable
	if o.Opening || o.Opened {
		return nil
	}
	o.Opening = true
	o.Progress = 0
	return s.spawnTask(&openTask{target: target, opener: opener})
}

// CancelOpening прерывает открытие. Задача завершится сама на следующем шаге.
func (s *Simulation) CancelOpening(target *domain.Entity) bool {
	if target == nil || target.Openable == nil || !target.Openable.Opening {
		return false
	}
	target.Openable.Opening = false
	target.Openable.Progress = 0
	return true
}

// spill выбрасывает содержимое сундука веером вверх
func (s *Simulation) spill(chest *domain.Entity) {
	origin := chest.Position().Add(domain.Up.Scale(chest.Height() / 2))

	for _, spec := range chest.Openable.Contents {
		for i := 0; i < spec.Count; i++ {
			e, err := s.SpawnArchetype(spec.Archetype, origin)
			if err != nil {
				logger.Log.WithError(err).WithField("chest_id", chest.ID).Warn("Chest content not spawned")
				break
			}
			if e.Body != nil {
				e.Body.Velocity = domain.Vec2{
					X: utils.RangeFloat(s.Rng, -2, 2),
					Y: utils.RangeFloat(s.Rng, 4, 8),
				}
			}
		}
	}
	chest.Openable.Contents = nil
}
