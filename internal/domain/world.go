package domain

// World - реестр сущностей сцены и ее статическая геометрия.
// Порядок обхода - порядок регистрации (детерминизм для реплеев).
type World struct {
	Name   string
	Solids []AABB

	// ItemContainer - родитель для всех лежащих в мире предметов
	ItemContainer *TransformComponent

	entities  []*Entity
	registry  map[EntityID]*Entity
	nextIndex uint64
}

func NewWorld(name string) *World {
	return &World{
		Name:          name,
		ItemContainer: &TransformComponent{Scale: Vec2{1, 1}},
		entities:      make([]*Entity, 0),
		registry:      make(map[EntityID]*Entity),
	}
}

// NextID выдает новый ID для вида сущности
func (w *World) NextID(kind EntityKind) EntityID {
	w.nextIndex++
	return PackEntityID(kind, w.nextIndex)
}

// RegisterEntity добавляет сущность в реестр. Сущность без ID получает новый.
func (w *World) RegisterEntity(e *Entity) {
	if e.ID == NoEntity {
		e.ID = w.NextID(e.Kind)
	}
	if _, exists := w.registry[e.ID]; exists {
		return
	}
	if idx := e.ID.Index(); idx > w.nextIndex {
		w.nextIndex = idx
	}
	e.Destroyed = false
	w.registry[e.ID] = e
	w.entities = append(w.entities, e)
}

// UnregisterEntity удаляет сущность и помечает ее уничтоженной
func (w *World) UnregisterEntity(id EntityID) *Entity {
	e, ok := w.registry[id]
	if !ok {
		return nil
	}
	delete(w.registry, id)
	e.Destroyed = true

	for i, other := range w.entities {
		if other.ID == id {
			// Порядок важен, поэтому без swap-with-last
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	return e
}

// GetEntity ищет сущность по ID
func (w *World) GetEntity(id EntityID) *Entity {
	return w.registry[id]
}

// Entities возвращает снимок списка (безопасно удалять во время обхода).
func (w *World) Entities() []*Entity {
	out := make([]*Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

func (w *World) Count() int {
	return len(w.entities)
}

// Player возвращает первого живого игрока
func (w *World) Player() *Entity {
	for _, e := range w.entities {
		if e.Kind == KindPlayer && e.Alive() {
			return e
		}
	}
	return nil
}
