package scene

import (
	"platforms-server/internal/domain"
)

// Archetype - шаблон сущности. Из YAML-конфига или встроенный.
type Archetype struct {
	Kind   string            `yaml:"kind"`
	Name   string            `yaml:"name"`
	Tag    domain.TriggerTag `yaml:"tag,omitempty"`
	Size   domain.Vec2       `yaml:"size"`
	Scale  float64           `yaml:"scale,omitempty"`
	Sprite string            `yaml:"sprite,omitempty"`
	Color  string            `yaml:"color,omitempty"`

	// Тело. Без Motor сущность не двигается (зоны, двери, платформы).
	Solid   bool `yaml:"solid,omitempty"`   // есть коллайдер, по которому бьют и который видят
	Gravity bool `yaml:"gravity,omitempty"` // падает

	Motor *MotorSpec `yaml:"motor,omitempty"`
	Stats *StatsSpec `yaml:"stats,omitempty"`
	Item  *ItemSpec  `yaml:"item,omitempty"`
	Loot  *LootSpec  `yaml:"loot,omitempty"`
	Open  *OpenSpec  `yaml:"open,omitempty"`

	// Hostile - монстр получает ИИ
	Hostile bool `yaml:"hostile,omitempty"`
}

type MotorSpec struct {
	MoveSpeed                float64 `yaml:"moveSpeed"`
	JumpHeight               float64 `yaml:"jumpHeight"`
	TimeToJumpApex           float64 `yaml:"timeToJumpApex"`
	AccelerationTimeAirborne float64 `yaml:"accelerationTimeAirborne"`
	AccelerationTimeGrounded float64 `yaml:"accelerationTimeGrounded"`
	ClimbSpeed               float64 `yaml:"climbSpeed"`
}

type StatsSpec struct {
	HP                   int     `yaml:"hp"`
	Mass                 float64 `yaml:"mass"`
	DamageMin            int     `yaml:"damageMin"`
	DamageMax            int     `yaml:"damageMax"`
	DestructibleJumpMass float64 `yaml:"destructibleJumpMass"`
}

type ItemSpec struct {
	Pickable bool `yaml:"pickable"`
	Pushable bool `yaml:"pushable"`
}

type LootSpec struct {
	Path     string `yaml:"path"`
	Value    int    `yaml:"value"`
	Currency bool   `yaml:"currency"`
	Icon     string `yaml:"icon"`
}

type OpenSpec struct {
	Duration float64 `yaml:"duration"`
}

// --- ВСТРОЕННЫЕ АРХЕТИПЫ ---

// humanoidMotor - параметры бега и прыжка героя и монстров
var humanoidMotor = MotorSpec{
	MoveSpeed:                6,
	JumpHeight:               3,
	TimeToJumpApex:           0.4,
	AccelerationTimeAirborne: 0.2,
	AccelerationTimeGrounded: 0.1,
	ClimbSpeed:               4,
}

// propMotor - предметы и добыча только падают
var propMotor = MotorSpec{
	MoveSpeed:                4,
	JumpHeight:               1,
	TimeToJumpApex:           0.3,
	AccelerationTimeAirborne: 0.3,
	AccelerationTimeGrounded: 0.05,
}

var Player = Archetype{
	Kind:    "PLAYER",
	Name:    "Герой",
	Size:    domain.Vec2{X: 0.8, Y: 1.6},
	Sprite:  "hero",
	Color:   "#22D3EE",
	Solid:   true,
	Gravity: true,
	Motor:   &humanoidMotor,
	Stats:   &StatsSpec{HP: 10, Mass: 1, DamageMin: 1, DamageMax: 3, DestructibleJumpMass: 2},
}

var Monster = Archetype{
	Kind:    "MONSTER",
	Name:    "Гоблин",
	Size:    domain.Vec2{X: 0.8, Y: 1.2},
	Sprite:  "goblin",
	Color:   "#22C55E",
	Solid:   true,
	Gravity: true,
	Hostile: true,
	Motor: &MotorSpec{
		MoveSpeed:                3,
		JumpHeight:               2,
		TimeToJumpApex:           0.4,
		AccelerationTimeAirborne: 0.2,
		AccelerationTimeGrounded: 0.1,
		ClimbSpeed:               2,
	},
	Stats: &StatsSpec{HP: 4, Mass: 1, DamageMin: 1, DamageMax: 2, DestructibleJumpMass: 1},
}

var Crate = Archetype{
	Kind:    "ITEM",
	Name:    "Ящик",
	Tag:     domain.TagItem,
	Size:    domain.Vec2{X: 0.8, Y: 0.8},
	Sprite:  "crate",
	Color:   "#A16207",
	Solid:   true,
	Gravity: true,
	Motor:   &propMotor,
	Item:    &ItemSpec{Pickable: true, Pushable: true},
	Stats:   &StatsSpec{HP: 2, Mass: 2},
}

var Coin = Archetype{
	Kind:    "LOOT",
	Name:    "Монета",
	Tag:     domain.TagLoot,
	Size:    domain.Vec2{X: 0.4, Y: 0.4},
	Sprite:  "coin",
	Color:   "#FACC15",
	Gravity: true,
	Motor:   &propMotor,
	Loot:    &LootSpec{Path: "loot/coin", Value: 1, Currency: true, Icon: "coin"},
}

var Gem = Archetype{
	Kind:    "LOOT",
	Name:    "Самоцвет",
	Tag:     domain.TagLoot,
	Size:    domain.Vec2{X: 0.4, Y: 0.4},
	Sprite:  "gem",
	Color:   "#A855F7",
	Gravity: true,
	Motor:   &propMotor,
	Loot:    &LootSpec{Path: "loot/gem", Value: 25, Icon: "gem"},
}

var Decal = Archetype{
	Kind:    "DECAL",
	Name:    "Кровь",
	Size:    domain.Vec2{X: 0.1, Y: 0.1},
	Sprite:  "blood",
	Color:   "#B91C1C",
	Gravity: true,
	Motor:   &propMotor,
}

var Door = Archetype{
	Kind:   "DOOR",
	Name:   "Дверь",
	Tag:    domain.TagDoor,
	Size:   domain.Vec2{X: 1, Y: 2},
	Sprite: "door",
	Color:  "#78716C",
	Open:   &OpenSpec{Duration: 1},
}

var Chest = Archetype{
	Kind:   "CHEST",
	Name:   "Сундук",
	Tag:    domain.TagChest,
	Size:   domain.Vec2{X: 1, Y: 0.8},
	Sprite: "chest",
	Color:  "#CA8A04",
	Open:   &OpenSpec{Duration: 0.75},
}

var Ladder = Archetype{
	Kind:   "ZONE",
	Name:   "Лестница",
	Tag:    domain.TagLadder,
	Size:   domain.Vec2{X: 1, Y: 1},
	Sprite: "ladder",
}

var Water = Archetype{
	Kind:   "ZONE",
	Name:   "Вода",
	Tag:    domain.TagWater,
	Size:   domain.Vec2{X: 1, Y: 1},
	Sprite: "water",
	Color:  "#3B82F6",
}

var Platform = Archetype{
	Kind:   "ZONE",
	Name:   "Платформа",
	Tag:    domain.TagPlatform,
	Size:   domain.Vec2{X: 1, Y: 0.5},
	Sprite: "platform",
}

var OneWayPlatform = Archetype{
	Kind:   "ZONE",
	Name:   "Мостик",
	Tag:    domain.TagOneWayPlatform,
	Size:   domain.Vec2{X: 1, Y: 0.25},
	Sprite: "bridge",
}

// DefaultArchetypes - реестр встроенных шаблонов
func DefaultArchetypes() map[string]Archetype {
	return map[string]Archetype{
		"player":   Player,
		"monster":  Monster,
		"crate":    Crate,
		"coin":     Coin,
		"gem":      Gem,
		"decal":    Decal,
		"door":     Door,
		"chest":    Chest,
		"ladder":   Ladder,
		"water":    Water,
		"platform": Platform,
		"bridge":   OneWayPlatform,
	}
}
