package actions

import "platforms-server/internal/engine/handlers"

// HandleInteract - короткое нажатие: поднять, сбросить, войти в дверь
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Accepted(ctx.Commands.SetInteract(ctx.Actor)), nil
}

// HandleInteractHold - удержание: открыть дверь или сундук
func HandleInteractHold(ctx handlers.Context) (handlers.Result, error) {
	ok := ctx.Commands.SetInteractHold(ctx.Actor)
	if !ok {
		return handlers.Accepted(false), nil
	}
	return handlers.Result{
		Msg:      ctx.Actor.Name + " начинает открывать.",
		MsgType:  "INFO",
		Accepted: true,
	}, nil
}
