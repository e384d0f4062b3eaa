package actions

import (
	"platforms-server/internal/engine/handlers"
	"platforms-server/pkg/api"
)

// Множители прыжка для "кнопки"
const (
	jumpIntensityDefault = 1.0
	jumpIntensityUp      = 1.25
)

// HandleJump - прыжок. Без явных параметров они выводятся из ввода:
// вниз - спрыгнуть с платформы, вверх - прыжок выше.
func HandleJump(ctx handlers.Context, p api.JumpPayload) (handlers.Result, error) {
	var inputY float64
	if ctx.Actor.Body != nil {
		inputY = ctx.Actor.Body.Input.Y
	}

	fastDrop := inputY < 0
	if p.FastDrop != nil {
		fastDrop = *p.FastDrop
	}

	intensity := jumpIntensityDefault
	if inputY > 0 {
		intensity = jumpIntensityUp
	}
	if p.Intensity != nil {
		intensity = *p.Intensity
	}

	return handlers.Accepted(ctx.Commands.SetJump(ctx.Actor, fastDrop, intensity)), nil
}
