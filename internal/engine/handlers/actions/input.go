package actions

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/engine/handlers"
	"platforms-server/pkg/api"
)

// HandleInput - новый вектор ввода (стик, стрелки)
func HandleInput(ctx handlers.Context, p api.InputPayload) (handlers.Result, error) {
	return handlers.Accepted(ctx.Commands.SetInput(ctx.Actor, domain.Vec2{X: p.X, Y: p.Y})), nil
}
