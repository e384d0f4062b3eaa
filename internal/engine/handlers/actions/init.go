package actions

import (
	"fmt"

	"platforms-server/internal/engine/handlers"
)

// HandleInit - первая отрисовка после входа
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     fmt.Sprintf("%s входит в %s.", ctx.Actor.Name, ctx.World.Name),
		MsgType: "INFO",
	}, nil
}
