package domain

// Entity - единый тип сущности. Вариант задается Kind, поведение - таблицей Capabilities
// и набором компонентов (nil - свойство отсутствует).
type Entity struct {
	// Идентификация
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`
	Tag  TriggerTag `json:"tag,omitempty"`

	// ControllerID - ID сессии, которая управляет этой сущностью.
	ControllerID string `json:"controllerId,omitempty"`

	Transform   *TransformComponent   `json:"transform"`
	Body        *BodyComponent        `json:"body,omitempty"`
	Motor       *MotorComponent       `json:"motor,omitempty"`
	Combat      *CombatComponent      `json:"combat,omitempty"`
	Stats       *StatsComponent       `json:"stats,omitempty"`
	AI          *AIComponent          `json:"ai,omitempty"`
	Inventory   *InventoryComponent   `json:"inventory,omitempty"`
	Item        *ItemComponent        `json:"item,omitempty"`
	Loot        *LootComponent        `json:"loot,omitempty"`
	Interaction *InteractionComponent `json:"interaction,omitempty"`
	Openable    *OpenableComponent    `json:"openable,omitempty"`
	Render      *RenderComponent      `json:"render,omitempty"`

	// Destroyed выставляется при удалении из мира. Слабые ссылки проверяют его лениво.
	Destroyed bool `json:"destroyed"`
}

// Alive - сущность в мире и не мертва
func (e *Entity) Alive() bool {
	if e == nil || e.Destroyed {
		return false
	}
	return e.Stats == nil || !e.Stats.IsDead
}

// Caps - строка таблицы возможностей
func (e *Entity) Caps() Capabilities {
	return e.Kind.Capabilities()
}

// Position - мировая позиция ступней
func (e *Entity) Position() Vec2 {
	return e.Transform.WorldPosition()
}

// Facing возвращает -1 или 1
func (e *Entity) Facing() float64 {
	if e.Transform.Scale.X < 0 {
		return -1
	}
	return 1
}

// SetFacing разворачивает сущность (dir: знак важен, ноль игнорируется)
func (e *Entity) SetFacing(dir float64) {
	if dir == 0 {
		return
	}
	mag := e.Transform.Scale.X
	if mag < 0 {
		mag = -mag
	}
	e.Transform.Scale.X = Sign(dir) * mag
}

// Size - мировой размер коллайдера
func (e *Entity) Size() Vec2 {
	size := Vec2{1, 1}
	if e.Body != nil {
		size = e.Body.Size
	}
	return size.Mul(e.Transform.WorldScale().Abs())
}

// Height - мировая высота коллайдера
func (e *Entity) Height() float64 {
	return e.Size().Y
}

// ChestPoint - точка на половине высоты (отсюда бьют и смотрят)
func (e *Entity) ChestPoint() Vec2 {
	return e.Position().Add(Up.Scale(e.Height() / 2))
}

// Bounds - мировой AABB
func (e *Entity) Bounds() AABB {
	return RectFromFeet(e.Position(), e.Size())
}

// IsIdle - никакое исключительное действие не владеет состоянием
func (e *Entity) IsIdle() bool {
	return e.Combat == nil || e.Combat.State == StateIdle
}

// IsHeld - сущность сейчас у кого-то в руках
func (e *Entity) IsHeld() bool {
	return e.Item != nil && e.Item.Holder.Alive()
}

// Grounded - стоит на поверхности по итогам прошлого тика
func (e *Entity) Grounded() bool {
	return e.Body != nil && e.Body.Collisions.Below
}

// Held возвращает переносимый предмет, если ссылка еще валидна
func (e *Entity) Held() *Entity {
	if e.Interaction == nil || !e.Interaction.Held.Alive() {
		return nil
	}
	return e.Interaction.Held
}

// Nearby возвращает текущий доступный для взаимодействия объект, если он жив
func (e *Entity) Nearby() *Entity {
	if e.Interaction == nil || !e.Interaction.Nearby.Alive() {
		return nil
	}
	return e.Interaction.Nearby
}
