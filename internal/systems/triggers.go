package systems

import (
	"platforms-server/internal/domain"
)

// TriggerPhase - фаза пересечения коллайдеров
type TriggerPhase uint8

const (
	TriggerEnter TriggerPhase = iota
	TriggerStay
	TriggerExit
)

func (p TriggerPhase) String() string {
	switch p {
	case TriggerEnter:
		return "enter"
	case TriggerStay:
		return "stay"
	case TriggerExit:
		return "exit"
	}
	return "unknown"
}

// TriggerEvent - Self пересекся с тегированной зоной Other
type TriggerEvent struct {
	Self  *domain.Entity
	Other *domain.Entity
	Phase TriggerPhase
}

type triggerPair struct {
	self, other domain.EntityID
}

// TriggerTracker превращает пересечения AABB в enter/stay/exit.
// Наблюдатели - сущности с InteractionComponent, зоны - сущности с тегом.
type TriggerTracker struct {
	active map[triggerPair]*domain.Entity
	order  []triggerPair
}

func NewTriggerTracker() *TriggerTracker {
	return &TriggerTracker{active: make(map[triggerPair]*domain.Entity)}
}

// Update сравнивает текущие пересечения с прошлым тиком.
// Порядок событий детерминирован порядком сущностей в мире.
func (t *TriggerTracker) Update(entities []*domain.Entity) []TriggerEvent {
	var events []TriggerEvent
	seen := make(map[triggerPair]bool)

	for _, self := range entities {
		if self.Interaction == nil || !self.Alive() {
			continue
		}
		selfBox := self.Bounds()

		for _, other := range entities {
			if other == self || other.Tag == domain.TagNone || !other.Alive() {
				continue
			}
			if other.IsHeld() {
				continue
			}
			if !selfBox.Overlaps(other.Bounds()) {
				continue
			}

			key := triggerPair{self.ID, other.ID}
			seen[key] = true
			phase := TriggerStay
			if _, ok := t.active[key]; !ok {
				phase = TriggerEnter
				t.active[key] = self
				t.order = append(t.order, key)
			}
			events = append(events, TriggerEvent{Self: self, Other: other, Phase: phase})
		}
	}

	// Выходы: пары, которых больше нет. Идут первыми, чтобы соседняя зона
	// того же тега перезаписала состояние после выхода из прежней.
	var exits []TriggerEvent
	kept := t.order[:0]
	for _, key := range t.order {
		if seen[key] {
			kept = append(kept, key)
			continue
		}
		self := t.active[key]
		delete(t.active, key)
		other := findEntity(entities, key.other)
		if self.Destroyed {
			continue
		}
		exits = append(exits, TriggerEvent{Self: self, Other: other, Phase: TriggerExit})
	}
	t.order = kept

	return append(exits, events...)
}

// Forget убирает все пары с участием сущности (без событий выхода).
func (t *TriggerTracker) Forget(id domain.EntityID) {
	kept := t.order[:0]
	for _, key := range t.order {
		if key.self == id || key.other == id {
			delete(t.active, key)
			continue
		}
		kept = append(kept, key)
	}
	t.order = kept
}

func (t *TriggerTracker) Len() int {
	return len(t.order)
}

func findEntity(entities []*domain.Entity, id domain.EntityID) *domain.Entity {
	for _, e := range entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// TriggerOutcome - что движку нужно сделать после обработки события
type TriggerOutcome struct {
	CollectLoot bool
}

// HandleTrigger обновляет слабые ссылки наблюдателя по тегу зоны.
// Other может быть nil при выходе из уже удаленной зоны.
func HandleTrigger(ev TriggerEvent) TriggerOutcome {
	self, other := ev.Self, ev.Other
	ic := self.Interaction
	var out TriggerOutcome
	if ic == nil {
		return out
	}

	if other == nil {
		return out
	}

	switch other.Tag {
	case domain.TagLadder:
		if ev.Phase == TriggerExit {
			if ic.Ladder == other {
				ic.Ladder = nil
			}
		} else {
			ic.Ladder = other
		}

	case domain.TagWater:
		ic.Submerged = ev.Phase != TriggerExit

	case domain.TagItem, domain.TagPlatform, domain.TagOneWayPlatform:
		pickable := other.Item != nil && other.Item.Pickable
		switch ev.Phase {
		case TriggerEnter:
			if pickable {
				ic.Nearby = other
			}
			if other.Tag != domain.TagItem {
				ic.Platform = other
			}
		case TriggerStay:
			PushItem(self, other)
		case TriggerExit:
			if ic.Nearby == other {
				ic.Nearby = nil
			}
			if ic.Platform == other {
				ic.Platform = nil
			}
		}

	case domain.TagDoor, domain.TagChest:
		switch ev.Phase {
		case TriggerEnter:
			ic.Nearby = other
		case TriggerExit:
			if ic.Nearby == other {
				ic.Nearby = nil
			}
		}

	case domain.TagLoot:
		if ev.Phase != TriggerExit && self.Inventory != nil && other.Loot != nil && !other.Loot.Collected {
			out.CollectLoot = true
		}
	}
	return out
}
