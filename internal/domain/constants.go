package domain

import "strings"

// EntityKind - дискриминатор варианта сущности
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindMonster
	KindItem
	KindLoot
	KindDoor
	KindChest
	KindDecal
	KindZone // лестницы, вода и прочие триггер-зоны
)

var kindToString = map[EntityKind]string{
	KindPlayer:  "PLAYER",
	KindMonster: "MONSTER",
	KindItem:    "ITEM",
	KindLoot:    "LOOT",
	KindDoor:    "DOOR",
	KindChest:   "CHEST",
	KindDecal:   "DECAL",
	KindZone:    "ZONE",
}

var stringToKind = map[string]EntityKind{
	"PLAYER":  KindPlayer,
	"MONSTER": KindMonster,
	"ITEM":    KindItem,
	"LOOT":    KindLoot,
	"DOOR":    KindDoor,
	"CHEST":   KindChest,
	"DECAL":   KindDecal,
	"ZONE":    KindZone,
}

// ParseKind конвертирует строку конфига в EntityKind
func ParseKind(s string) EntityKind {
	if k, ok := stringToKind[strings.ToUpper(s)]; ok {
		return k
	}
	return KindUnknown
}

func (k EntityKind) String() string {
	if s, ok := kindToString[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// InputSource - откуда сущность берет ввод на каждом тике
type InputSource uint8

const (
	InputPassive InputSource = iota // ввод затухает сам (брошенные предметы)
	InputDevice                     // последний ввод клиента
	InputAI                         // вектор, выставленный планировщиком ИИ
)

// Capabilities - таблица возможностей варианта
type Capabilities struct {
	HasInventory   bool
	HasAI          bool
	IsDestructible bool
	IsHumanoid     bool // атака, перекат, подбор предметов
	Input          InputSource
}

var capabilityTable = map[EntityKind]Capabilities{
	KindPlayer:  {HasInventory: true, IsDestructible: true, IsHumanoid: true, Input: InputDevice},
	KindMonster: {HasAI: true, IsDestructible: true, IsHumanoid: true, Input: InputAI},
	KindItem:    {Input: InputPassive},
	KindLoot:    {Input: InputPassive},
	KindDecal:   {Input: InputPassive},
	KindDoor:    {},
	KindChest:   {},
	KindZone:    {},
}

// Capabilities возвращает строку таблицы для варианта
func (k EntityKind) Capabilities() Capabilities {
	return capabilityTable[k]
}

// CombatState - флаг исключительности Attack/Roll/Hurt
type CombatState uint8

const (
	StateIdle CombatState = iota
	StateAttack
	StateRoll
	StateHurt
)

var stateToString = map[CombatState]string{
	StateIdle:   "IDLE",
	StateAttack: "ATTACK",
	StateRoll:   "ROLL",
	StateHurt:   "HURT",
}

func (s CombatState) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// TriggerTag - категория триггер-зоны
type TriggerTag string

const (
	TagNone           TriggerTag = ""
	TagLadder         TriggerTag = "Ladder"
	TagItem           TriggerTag = "Item"
	TagPlatform       TriggerTag = "Platform"
	TagOneWayPlatform TriggerTag = "OneWayPlatform"
	TagDoor           TriggerTag = "Door"
	TagChest          TriggerTag = "Chest"
	TagLoot           TriggerTag = "Loot"
	TagWater          TriggerTag = "Water"
)

// Layer - битовая маска слоев для лучей
type Layer uint16

const (
	LayerSolid Layer = 1 << iota
	LayerPlayer
	LayerMonster
	LayerItem
	LayerLoot
	LayerTrigger
)

const (
	// MaskAttack - во что может попасть удар
	MaskAttack = LayerPlayer | LayerMonster | LayerItem
	// MaskVision - что перекрывает или является целью взгляда монстра
	MaskVision = LayerSolid | LayerPlayer
)

// Индикаторы осведомленности
const (
	IndicatorAware   = "!"
	IndicatorUnaware = "?"
)
