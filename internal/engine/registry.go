package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/engine/handlers"
	"platforms-server/internal/engine/handlers/actions"
)

func defaultHandlers() map[domain.ActionType]handlers.HandlerFunc {
	return map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:         handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionInput:        handlers.WithPayload(actions.HandleInput),
		domain.ActionJump:         handlers.WithPayload(actions.HandleJump),
		domain.ActionAttack:       handlers.WithEmptyPayload(actions.HandleAttack),
		domain.ActionRoll:         handlers.WithEmptyPayload(actions.HandleRoll),
		domain.ActionInteract:     handlers.WithEmptyPayload(actions.HandleInteract),
		domain.ActionInteractHold: handlers.WithEmptyPayload(actions.HandleInteractHold),
	}
}
