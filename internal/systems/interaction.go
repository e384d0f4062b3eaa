package systems

import (
	"fmt"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// --- PICKUP / DROP / THROW ---

// AttachItem переподвешивает предмет под носителя с сохранением мирового масштаба.
// Предыдущий предмет носитель должен сбросить заранее.
func AttachItem(carrier, item *domain.Entity, tuning domain.CombatTuning) error {
	if item.Item == nil || !item.Item.Pickable {
		return domain.ErrNotPickable
	}
	if carrier.Interaction == nil {
		return fmt.Errorf("%s не может носить предметы", carrier.Name)
	}

	if err := item.Transform.SetParent(carrier.Transform); err != nil {
		return fmt.Errorf("attach %s to %s: %w", item.Name, carrier.Name, err)
	}
	item.Transform.Position = domain.Vec2{Y: tuning.HeldOffsetY}

	if item.Body != nil {
		item.Body.GravityAffected = false
		item.Body.Input = domain.Zero
		item.Body.Velocity = domain.Zero
		item.Body.VelocityXSmoothing = 0
	}
	item.Item.Holder = carrier
	carrier.Interaction.Held = item

	logger.Log.WithFields(logrus.Fields{
		"component":  "interaction_system",
		"carrier_id": carrier.ID,
		"item_id":    item.ID,
		"local":      item.Transform.Scale,
	}).Debug("Item picked up.")
	return nil
}

// DetachItem возвращает предмет в контейнер мира и делает его текущим
// доступным объектом носителя. Без предмета в руках - nil.
func DetachItem(carrier *domain.Entity, container *domain.TransformComponent) (*domain.Entity, error) {
	item := carrier.Held()
	if item == nil {
		if carrier.Interaction != nil {
			carrier.Interaction.Held = nil
		}
		return nil, nil
	}

	if err := item.Transform.SetParent(container); err != nil {
		return nil, fmt.Errorf("detach %s: %w", item.Name, err)
	}
	if item.Body != nil {
		item.Body.GravityAffected = true
	}
	item.Item.Holder = nil
	carrier.Interaction.Held = nil
	carrier.Interaction.Nearby = item

	logger.Log.WithFields(logrus.Fields{
		"component":  "interaction_system",
		"carrier_id": carrier.ID,
		"item_id":    item.ID,
	}).Debug("Item dropped.")
	return item, nil
}

// ThrowItem сбрасывает предмет и придает ему скорость вперед и вверх.
func ThrowItem(carrier *domain.Entity, container *domain.TransformComponent, tuning domain.CombatTuning) (*domain.Entity, error) {
	item, err := DetachItem(carrier, container)
	if err != nil || item == nil {
		return item, err
	}

	if item.Body != nil {
		dir := carrier.Facing()
		item.Body.Input = domain.Vec2{X: dir * tuning.ThrowSpeed}
		item.Body.Velocity = domain.Vec2{X: dir * tuning.ThrowSpeed, Y: tuning.ThrowLift}
		if item.Motor != nil {
			item.Body.Velocity.X = dir * tuning.ThrowSpeed * item.Motor.Speed
		}
	}
	return item, nil
}

// ClearStaleReferences обнуляет слабые ссылки на уничтоженные сущности.
func ClearStaleReferences(e *domain.Entity) {
	if ic := e.Interaction; ic != nil {
		if !ic.Held.Alive() {
			ic.Held = nil
		}
		if !ic.Nearby.Alive() {
			ic.Nearby = nil
		}
		if !ic.Ladder.Alive() {
			ic.Ladder = nil
		}
		if !ic.Platform.Alive() {
			ic.Platform = nil
		}
	}
	if e.Item != nil && !e.Item.Holder.Alive() {
		e.Item.Holder = nil
	}
}

// PushItem - свободный гуманоид, идущий в толкаемый предмет, передает ему свой ввод.
func PushItem(pusher, item *domain.Entity) bool {
	if !pusher.Caps().IsHumanoid || !pusher.IsIdle() || pusher.Body == nil {
		return false
	}
	if item.Item == nil || !item.Item.Pushable || item.IsHeld() || item.Body == nil {
		return false
	}

	in := pusher.Body.Input.X
	if in == 0 {
		return false
	}
	side := item.Position().X - pusher.Position().X
	if domain.Sign(side) != domain.Sign(in) {
		return false
	}
	item.Body.Input.X = in
	return true
}
