package scene

import (
	"errors"
	"fmt"
	"strings"

	"platforms-server/internal/domain"
)

var ErrUnknownArchetype = errors.New("unknown archetype")

// Factory создает сущности по архетипам. Реализует Spawner движка.
type Factory struct {
	archetypes map[string]Archetype
	world      *domain.World
	ai         domain.AITuning
}

// NewFactory - archetypes дополняют и перекрывают встроенные
func NewFactory(world *domain.World, archetypes map[string]Archetype, ai domain.AITuning) *Factory {
	merged := DefaultArchetypes()
	for name, a := range archetypes {
		merged[strings.ToLower(name)] = a
	}
	return &Factory{archetypes: merged, world: world, ai: ai}
}

// Spawn создает сущность по имени архетипа. ID выдает мир, регистрирует вызывающий.
func (f *Factory) Spawn(archetype string, pos domain.Vec2) (*domain.Entity, error) {
	a, ok := f.archetypes[strings.ToLower(archetype)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, archetype)
	}
	return f.Build(a, pos)
}

// Has - архетип известен
func (f *Factory) Has(archetype string) bool {
	_, ok := f.archetypes[strings.ToLower(archetype)]
	return ok
}

// Build собирает компоненты по шаблону
func (f *Factory) Build(a Archetype, pos domain.Vec2) (*domain.Entity, error) {
	kind := domain.ParseKind(a.Kind)
	if kind == domain.KindUnknown {
		return nil, fmt.Errorf("archetype %q: unknown kind %q", a.Name, a.Kind)
	}
	scale := a.Scale
	if scale == 0 {
		scale = 1
	}

	e := &domain.Entity{
		ID:   f.world.NextID(kind),
		Kind: kind,
		Name: a.Name,
		Tag:  a.Tag,
		Transform: &domain.TransformComponent{
			Position: pos,
			Scale:    domain.Vec2{X: scale, Y: scale},
		},
		Body: &domain.BodyComponent{
			Size:            a.Size,
			Collidable:      a.Solid,
			GravityAffected: a.Gravity,
			Layer:           layerFor(kind, a.Tag),
		},
		Render: &domain.RenderComponent{Sprite: a.Sprite, Color: a.Color},
	}
	if e.Body.Size.IsZero() {
		e.Body.Size = domain.Vec2{X: 1, Y: 1}
	}
	if a.Tag == domain.TagPlatform {
		// Твердая платформа закрывает обзор
		e.Body.Collidable = true
	}

	if a.Motor != nil {
		e.Motor = &domain.MotorComponent{
			MoveSpeed:                a.Motor.MoveSpeed,
			JumpHeight:               a.Motor.JumpHeight,
			TimeToJumpApex:           a.Motor.TimeToJumpApex,
			AccelerationTimeAirborne: a.Motor.AccelerationTimeAirborne,
			AccelerationTimeGrounded: a.Motor.AccelerationTimeGrounded,
			ClimbSpeed:               a.Motor.ClimbSpeed,
		}
		e.Motor.Init()
	}

	if a.Stats != nil {
		e.Stats = &domain.StatsComponent{
			HP:                   a.Stats.HP,
			MaxHP:                a.Stats.HP,
			Mass:                 a.Stats.Mass,
			DamageMin:            a.Stats.DamageMin,
			DamageMax:            a.Stats.DamageMax,
			Destructible:         kind.Capabilities().IsDestructible || a.Item != nil,
			DestructibleJumpMass: a.Stats.DestructibleJumpMass,
		}
	}

	caps := kind.Capabilities()
	if caps.IsHumanoid {
		e.Combat = &domain.CombatComponent{}
		e.Interaction = &domain.InteractionComponent{}
	}
	if caps.HasInventory {
		e.Inventory = &domain.InventoryComponent{Items: []domain.InvItem{}}
	}
	if caps.HasAI || a.Hostile {
		e.AI = &domain.AIComponent{}
		f.ai.Apply(e.AI)
	}

	if a.Item != nil {
		e.Item = &domain.ItemComponent{Pickable: a.Item.Pickable, Pushable: a.Item.Pushable}
	}
	if a.Loot != nil {
		e.Loot = &domain.LootComponent{
			Path:     a.Loot.Path,
			Value:    a.Loot.Value,
			Currency: a.Loot.Currency,
			Icon:     a.Loot.Icon,
		}
	}
	if a.Open != nil {
		e.Openable = &domain.OpenableComponent{Duration: a.Open.Duration}
	}

	return e, nil
}

func layerFor(kind domain.EntityKind, tag domain.TriggerTag) domain.Layer {
	switch kind {
	case domain.KindPlayer:
		return domain.LayerPlayer
	case domain.KindMonster:
		return domain.LayerMonster
	case domain.KindItem:
		return domain.LayerItem
	case domain.KindLoot:
		return domain.LayerLoot
	case domain.KindDecal:
		return 0
	}
	if tag == domain.TagPlatform {
		return domain.LayerSolid
	}
	return domain.LayerTrigger
}
