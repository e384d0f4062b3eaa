package handlers

import (
	"encoding/json"

	"platforms-server/internal/domain"
)

// Commands - командная поверхность симуляции. Каждая команда либо
// выполняется, либо тихо отказывает (false).
type Commands interface {
	SetInput(e *domain.Entity, v domain.Vec2) bool
	SetJump(e *domain.Entity, fastDrop bool, intensity float64) bool
	SetAttack(e *domain.Entity) bool
	SetRoll(e *domain.Entity) bool
	Throw(e *domain.Entity) bool
	SetInteract(e *domain.Entity) bool
	SetInteractHold(e *domain.Entity) bool
}

// Context передает хендлеру состояние мира.
type Context struct {
	Actor    *domain.Entity // Тот, кто выполняет команду (игрок или бот)
	World    *domain.World
	Commands Commands
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в журнал сцены напрямую, он возвращает данные.
type Result struct {
	Msg      string // Текст лога
	MsgType  string // Тип лога (INFO, COMBAT, ERROR)
	Accepted bool   // Команда что-то запустила
}

// HandlerFunc - это контракт для любой команды (INPUT, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// Accepted - короткая запись результата без лога
func Accepted(ok bool) Result {
	return Result{Accepted: ok}
}
