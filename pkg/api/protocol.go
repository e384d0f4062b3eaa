package api

import "encoding/json"

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MsgUpdate = "UPDATE"
	MsgEvent  = "EVENT"
	MsgError  = "ERROR"
)

// ServerResponse - общий ответ сервера (снимок сцены или пакет событий)
type ServerResponse struct {
	Type       string       `json:"type"` // UPDATE, EVENT, ERROR
	Tick       int64        `json:"tick"`
	Scene      string       `json:"scene,omitempty"`
	MyEntityID string       `json:"myEntityId,omitempty"`
	Entities   []EntityView `json:"entities,omitempty"`
	Events     []EventView  `json:"events,omitempty"`
	Logs       []LogEntry   `json:"logs,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// Vec - двумерный вектор для клиента
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EntityView - то, как клиент видит сущность
type EntityView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Tag       string `json:"tag,omitempty"`
	Sprite    string `json:"sprite,omitempty"`
	Color     string `json:"color,omitempty"`
	Indicator string `json:"indicator,omitempty"`

	Position Vec  `json:"position"`
	Velocity *Vec `json:"velocity,omitempty"`
	Scale    Vec  `json:"scale"`

	State    string `json:"state,omitempty"` // IDLE, ATTACK, ROLL, HURT
	Grounded bool   `json:"grounded,omitempty"`
	Aware    bool   `json:"aware,omitempty"`
	HeldID   string `json:"heldId,omitempty"`
	HolderID string `json:"holderId,omitempty"`

	Stats     *StatsView     `json:"stats,omitempty"`
	Inventory *InventoryView `json:"inventory,omitempty"`
	Openable  *OpenableView  `json:"openable,omitempty"`
}

type StatsView struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

// InventoryView - добыча в порядке первого появления
type InventoryView struct {
	Items []InventoryItemView `json:"items"`
}

type InventoryItemView struct {
	Path         string `json:"path"`
	Count        int    `json:"count"`
	DisplayValue int    `json:"displayValue"`
	Icon         string `json:"icon,omitempty"`
}

type OpenableView struct {
	Opening  bool    `json:"opening"`
	Opened   bool    `json:"opened"`
	Progress float64 `json:"progress"`
}

// EventView - событие симуляции для HUD
type EventView struct {
	Type     string `json:"type"` // DEATH, INVENTORY_CHANGED, ...
	Tick     int64  `json:"tick"`
	EntityID string `json:"entityId"`
	OtherID  string `json:"otherId,omitempty"`
	Value    int    `json:"value,omitempty"`
	Text     string `json:"text,omitempty"`
}

// LogEntry - строка журнала сцены
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, LOOT, ERROR
	Timestamp int64  `json:"timestamp"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сущности, от имени которой выполняется действие.
	// Пустой токен в LOGIN привязывает сессию к игроку сцены.
	Token string `json:"token,omitempty"`

	// Action название действия: LOGIN, INIT, INPUT, JUMP, ATTACK, ROLL, INTERACT, INTERACT_HOLD.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// InputPayload - вектор ввода (стик или стрелки), компоненты в [-1, 1]
type InputPayload struct {
	X float64 `json:"x" jsonschema:"minimum=-1,maximum=1"`
	Y float64 `json:"y" jsonschema:"minimum=-1,maximum=1"`
}

// JumpPayload - явные параметры прыжка. Пустой payload означает "кнопку":
// параметры выводятся из текущего ввода.
type JumpPayload struct {
	FastDrop  *bool    `json:"fastDrop,omitempty"`
	Intensity *float64 `json:"intensity,omitempty" jsonschema:"exclusiveMinimum=0,maximum=3"`
}
