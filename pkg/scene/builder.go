package scene

import (
	"errors"
	"fmt"

	"platforms-server/internal/domain"
)

// Layout - описание сцены из YAML
type Layout struct {
	Name   string        `yaml:"name"`
	Solids []domain.AABB `yaml:"solids"`
	Spawns []Spawn       `yaml:"spawns"`
}

// Spawn - одна сущность сцены
type Spawn struct {
	Archetype   string            `yaml:"archetype"`
	Pos         domain.Vec2       `yaml:"pos"`
	Name        string            `yaml:"name,omitempty"`
	Size        *domain.Vec2      `yaml:"size,omitempty"`
	Scale       float64           `yaml:"scale,omitempty"`
	Contents    []domain.LootSpec `yaml:"contents,omitempty"`
	Destination string            `yaml:"destination,omitempty"`
}

// Scene - готовая к запуску сцена. Сущности еще не зарегистрированы в мире.
type Scene struct {
	World    *domain.World
	Entities []*domain.Entity
	Factory  *Factory
}

// SceneBuilder предоставляет fluent API для создания сцен
type SceneBuilder struct {
	name       string
	solids     []domain.AABB
	spawns     []Spawn
	archetypes map[string]Archetype
	ai         domain.AITuning
}

// NewScene создает новый builder для сцены
func NewScene(name string) *SceneBuilder {
	return &SceneBuilder{
		name: name,
		ai:   domain.DefaultAITuning(),
	}
}

// FromLayout заполняет builder описанием из конфига
func FromLayout(l Layout) *SceneBuilder {
	b := NewScene(l.Name)
	b.solids = append(b.solids, l.Solids...)
	b.spawns = append(b.spawns, l.Spawns...)
	return b
}

// WithArchetypes добавляет или перекрывает шаблоны
func (b *SceneBuilder) WithArchetypes(archetypes map[string]Archetype) *SceneBuilder {
	b.archetypes = archetypes
	return b
}

// WithAITuning задает параметры ИИ новых монстров
func (b *SceneBuilder) WithAITuning(ai domain.AITuning) *SceneBuilder {
	b.ai = ai
	return b
}

// WithSolid добавляет статическую геометрию
func (b *SceneBuilder) WithSolid(min, max domain.Vec2) *SceneBuilder {
	b.solids = append(b.solids, domain.AABB{Min: min, Max: max})
	return b
}

// Spawn ставит сущность архетипа в точку
func (b *SceneBuilder) Spawn(archetype string, pos domain.Vec2) *SceneBuilder {
	b.spawns = append(b.spawns, Spawn{Archetype: archetype, Pos: pos})
	return b
}

// WithZone - триггер-зона или платформа произвольного размера
func (b *SceneBuilder) WithZone(archetype string, pos, size domain.Vec2) *SceneBuilder {
	b.spawns = append(b.spawns, Spawn{Archetype: archetype, Pos: pos, Size: &size})
	return b
}

// WithChest ставит сундук с содержимым
func (b *SceneBuilder) WithChest(pos domain.Vec2, contents ...domain.LootSpec) *SceneBuilder {
	b.spawns = append(b.spawns, Spawn{Archetype: "chest", Pos: pos, Contents: contents})
	return b
}

// WithDoor ставит дверь, ведущую в destination
func (b *SceneBuilder) WithDoor(pos domain.Vec2, destination string) *SceneBuilder {
	b.spawns = append(b.spawns, Spawn{Archetype: "door", Pos: pos, Destination: destination})
	return b
}

// Build собирает мир и сущности
func (b *SceneBuilder) Build() (*Scene, error) {
	if b.name == "" {
		return nil, errors.New("scene name is empty")
	}

	world := domain.NewWorld(b.name)
	world.Solids = append(world.Solids, b.solids...)
	factory := NewFactory(world, b.archetypes, b.ai)

	entities := make([]*domain.Entity, 0, len(b.spawns))
	for i, sp := range b.spawns {
		e, err := factory.Spawn(sp.Archetype, sp.Pos)
		if err != nil {
			return nil, fmt.Errorf("spawn #%d: %w", i, err)
		}
		if err := apply(e, sp); err != nil {
			return nil, fmt.Errorf("spawn #%d (%s): %w", i, sp.Archetype, err)
		}
		entities = append(entities, e)
	}

	players := 0
	for _, e := range entities {
		if e.Kind == domain.KindPlayer {
			players++
		}
	}
	if players == 0 {
		return nil, fmt.Errorf("scene %q has no player", b.name)
	}

	return &Scene{World: world, Entities: entities, Factory: factory}, nil
}

// apply накладывает поля размещения поверх архетипа
func apply(e *domain.Entity, sp Spawn) error {
	if sp.Name != "" {
		e.Name = sp.Name
	}
	if sp.Size != nil {
		if sp.Size.X <= 0 || sp.Size.Y <= 0 {
			return fmt.Errorf("size %v must be positive", *sp.Size)
		}
		e.Body.Size = *sp.Size
	}
	if sp.Scale != 0 {
		e.Transform.Scale = domain.Vec2{X: sp.Scale, Y: sp.Scale}
	}
	if len(sp.Contents) > 0 || sp.Destination != "" {
		if e.Openable == nil {
			return errors.New("contents and destination need an openable archetype")
		}
		e.Openable.Contents = append([]domain.LootSpec(nil), sp.Contents...)
		e.Openable.Destination = sp.Destination
	}
	return nil
}

// DefaultLayout - стартовая сцена: пол, стены, две платформы, лестница, вода,
// ящик, сундук с добычей, дверь и два гоблина.
func DefaultLayout() Layout {
	return Layout{
		Name: "Пещера",
		Solids: []domain.AABB{
			{Min: domain.Vec2{X: -2, Y: -1}, Max: domain.Vec2{X: 42, Y: 0}},
			{Min: domain.Vec2{X: -2, Y: 0}, Max: domain.Vec2{X: -1, Y: 12}},
			{Min: domain.Vec2{X: 41, Y: 0}, Max: domain.Vec2{X: 42, Y: 12}},
			{Min: domain.Vec2{X: 18, Y: 0}, Max: domain.Vec2{X: 20, Y: 1}},
		},
		Spawns: []Spawn{
			{Archetype: "player", Pos: domain.Vec2{X: 2, Y: 0}},
			{Archetype: "crate", Pos: domain.Vec2{X: 5, Y: 0}},
			{Archetype: "coin", Pos: domain.Vec2{X: 7, Y: 0}},
			{Archetype: "coin", Pos: domain.Vec2{X: 7.5, Y: 0}},
			{Archetype: "platform", Pos: domain.Vec2{X: 10, Y: 3}, Size: &domain.Vec2{X: 4, Y: 0.5}},
			{Archetype: "bridge", Pos: domain.Vec2{X: 15, Y: 2.5}, Size: &domain.Vec2{X: 3, Y: 0.25}},
			{Archetype: "ladder", Pos: domain.Vec2{X: 12.5, Y: 0}, Size: &domain.Vec2{X: 1, Y: 3.5}},
			{Archetype: "gem", Pos: domain.Vec2{X: 10, Y: 3.5}},
			{Archetype: "water", Pos: domain.Vec2{X: 24, Y: 0}, Size: &domain.Vec2{X: 4, Y: 1.5}},
			{Archetype: "monster", Pos: domain.Vec2{X: 22, Y: 0}},
			{Archetype: "monster", Pos: domain.Vec2{X: 32, Y: 0}},
			{
				Archetype: "chest",
				Pos:       domain.Vec2{X: 35, Y: 0},
				Contents: []domain.LootSpec{
					{Archetype: "coin", Count: 5},
					{Archetype: "gem", Count: 1},
				},
			},
			{Archetype: "door", Pos: domain.Vec2{X: 39, Y: 0}, Destination: "Глубины"},
		},
	}
}
