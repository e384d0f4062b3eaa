package actions

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/engine/handlers"
)

// HandleAttack - кнопка атаки. Занятый атакой или оглушенный игнорирует нажатие.
// С предметом в руках кнопка бросает его, с вводом вниз - перекат.
func HandleAttack(ctx handlers.Context) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Combat != nil {
		switch actor.Combat.State {
		case domain.StateAttack, domain.StateHurt:
			return handlers.Accepted(false), nil
		}
	}

	if actor.Held() != nil {
		return handlers.Accepted(ctx.Commands.Throw(actor)), nil
	}
	if actor.Body != nil && actor.Body.Input.Y < 0 {
		return handlers.Accepted(ctx.Commands.SetRoll(actor)), nil
	}
	return handlers.Accepted(ctx.Commands.SetAttack(actor)), nil
}

// HandleRoll - явный перекат
func HandleRoll(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Accepted(ctx.Commands.SetRoll(ctx.Actor)), nil
}
