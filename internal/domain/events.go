package domain

import "strings"

// EventType - Внутренний числовой идентификатор события симуляции
type EventType uint8

const (
	EventUnknown EventType = iota
	EventDeath
	EventInventoryChanged
	EventAwareness
	EventHurt
	EventOpened
	EventDoorEnter
	EventSpawn
	EventRemove
)

var eventStringToCmd = map[string]EventType{
	"DEATH":             EventDeath,
	"INVENTORY_CHANGED": EventInventoryChanged,
	"AWARENESS":         EventAwareness,
	"HURT":              EventHurt,
	"OPENED":            EventOpened,
	"DOOR_ENTER":        EventDoorEnter,
	"SPAWN":             EventSpawn,
	"REMOVE":            EventRemove,
}

var eventCmdToString = map[EventType]string{
	EventDeath:            "DEATH",
	EventInventoryChanged: "INVENTORY_CHANGED",
	EventAwareness:        "AWARENESS",
	EventHurt:             "HURT",
	EventOpened:           "OPENED",
	EventDoorEnter:        "DOOR_ENTER",
	EventSpawn:            "SPAWN",
	EventRemove:           "REMOVE",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToCmd[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - уведомление для внешних слушателей (HUD, журнал, клиенты).
type Event struct {
	Type     EventType `json:"type"`
	Tick     int64     `json:"tick"`
	EntityID EntityID  `json:"entityId"`
	OtherID  EntityID  `json:"otherId,omitempty"`
	Value    int       `json:"value,omitempty"`
	Text     string    `json:"text,omitempty"`
}
