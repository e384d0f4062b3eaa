package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionLogin
	ActionInit
	ActionInput
	ActionJump
	ActionAttack
	ActionRoll
	ActionInteract
	ActionInteractHold
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"LOGIN":         ActionLogin,
	"INIT":          ActionInit,
	"INPUT":         ActionInput,
	"JUMP":          ActionJump,
	"ATTACK":        ActionAttack,
	"ROLL":          ActionRoll,
	"INTERACT":      ActionInteract,
	"INTERACT_HOLD": ActionInteractHold,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionLogin:        "LOGIN",
	ActionInit:         "INIT",
	ActionInput:        "INPUT",
	ActionJump:         "JUMP",
	ActionAttack:       "ATTACK",
	ActionRoll:         "ROLL",
	ActionInteract:     "INTERACT",
	ActionInteractHold: "INTERACT_HOLD",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Recordable - команда меняет симуляцию и пишется в реплей
func (a ActionType) Recordable() bool {
	switch a {
	case ActionUnknown, ActionLogin, ActionInit:
		return false
	}
	return true
}
