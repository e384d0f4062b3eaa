package agent

import (
	"context"
	"encoding/json"
	"math"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine"
	"platforms-server/internal/systems"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// stuckUpdates - сколько снимков подряд бот может стоять у препятствия до прыжка
const stuckUpdates = 10

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подключается к сервису так же, как клиент по WebSocket: логинится,
// получает снимки сцены и отправляет обратно команды ввода.
//
// Жизненный цикл:
//  1. NewBot -> создание сессии.
//  2. Run -> Login, чтение своего канала до отмены контекста.
//  3. На каждый UPDATE вызывается Decide, который строит локальную картину
//     и решает, куда идти, бить ли и прыгать ли.
//  4. По выходу сессия отвязывается (Logout).
type Bot struct {
	Session string
	Token   string // пустой токен - игрок сцены
	Service *engine.GameService
	Tuning  domain.AITuning

	me        domain.EntityID
	lastInput float64
	lastX     float64
	stuck     int
}

func NewBot(service *engine.GameService, token string, tuning domain.AITuning) *Bot {
	return &Bot{
		Session: "bot_" + utils.GenerateID(),
		Token:   token,
		Service: service,
		Tuning:  tuning,
	}
}

// Run запускает цикл жизни бота. Блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	inbox, id, err := b.Service.Login(b.Session, b.Token)
	if err != nil {
		return err
	}
	b.me = id
	defer b.Service.Logout(b.Session)

	log := logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"session":   b.Session,
		"entity_id": id,
	})
	log.Info("Bot started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Bot stopped")
			return nil
		case msg, ok := <-inbox:
			if !ok {
				log.Info("Bot inbox closed")
				return nil
			}
			if msg.Type != api.MsgUpdate {
				continue
			}
			for _, cmd := range b.Decide(msg) {
				if err := b.Service.ProcessCommand(b.Session, cmd); err != nil {
					log.WithError(err).WithField("action", cmd.Action).Debug("Bot command rejected")
				}
			}
		}
	}
}

// Decide - мозг бота: по снимку выбирает команды для отправки
func (b *Bot) Decide(state api.ServerResponse) []api.ClientCommand {
	myID := b.me.Token()
	if state.MyEntityID != "" {
		myID = state.MyEntityID
	}

	var selfView *api.EntityView
	for i := range state.Entities {
		if state.Entities[i].ID == myID {
			selfView = &state.Entities[i]
			break
		}
	}
	if selfView == nil || (selfView.Stats != nil && selfView.Stats.IsDead) {
		return nil
	}

	me := b.toAgent(selfView)
	target := nearestMonster(me, state.Entities)

	var cmds []api.ClientCommand
	if target == nil {
		if b.lastInput != 0 {
			cmds = append(cmds, b.input(0))
		}
		return cmds
	}

	if systems.InEngageRange(me, target) {
		dir := domain.Sign(target.Position().X - me.Position().X)
		// Разворот к цели коротким вводом, затем удар
		if dir != 0 && dir != me.Facing() {
			cmds = append(cmds, b.input(dir))
		} else if b.lastInput != 0 {
			cmds = append(cmds, b.input(0))
		}
		if selfView.State == "" || selfView.State == domain.StateIdle.String() {
			cmds = append(cmds, api.ClientCommand{Action: domain.ActionAttack.String()})
		}
		b.stuck = 0
		return cmds
	}

	dir := systems.DecideMoveInput(me, target)
	if dir != b.lastInput {
		cmds = append(cmds, b.input(dir))
	}

	// Уперлись в стену или уступ - прыгаем
	if dir != 0 && selfView.Grounded && math.Abs(me.Position().X-b.lastX) < 0.01 {
		b.stuck++
		if b.stuck >= stuckUpdates {
			cmds = append(cmds, api.ClientCommand{Action: domain.ActionJump.String()})
			b.stuck = 0
		}
	} else {
		b.stuck = 0
	}
	b.lastX = me.Position().X
	return cmds
}

func (b *Bot) input(x float64) api.ClientCommand {
	b.lastInput = x
	payload, _ := json.Marshal(api.InputPayload{X: x})
	return api.ClientCommand{Action: domain.ActionInput.String(), Payload: payload}
}

// toAgent - минимальная доменная сущность для систем ИИ
func (b *Bot) toAgent(v *api.EntityView) *domain.Entity {
	e := toEntity(v)
	e.AI = &domain.AIComponent{Aware: true}
	b.Tuning.Apply(e.AI)
	return e
}

func toEntity(v *api.EntityView) *domain.Entity {
	id, _ := domain.ParseEntityID(v.ID)
	e := &domain.Entity{
		ID:   id,
		Kind: domain.ParseKind(v.Kind),
		Name: v.Name,
		Transform: &domain.TransformComponent{
			Position: domain.Vec2{X: v.Position.X, Y: v.Position.Y},
			Scale:    domain.Vec2{X: v.Scale.X, Y: v.Scale.Y},
		},
	}
	if v.Stats != nil {
		e.Stats = &domain.StatsComponent{HP: v.Stats.HP, MaxHP: v.Stats.MaxHP, IsDead: v.Stats.IsDead}
	}
	return e
}

func nearestMonster(me *domain.Entity, views []api.EntityView) *domain.Entity {
	var best *domain.Entity
	bestDist := math.Inf(1)
	for i := range views {
		v := &views[i]
		if domain.ParseKind(v.Kind) != domain.KindMonster {
			continue
		}
		e := toEntity(v)
		if !e.Alive() {
			continue
		}
		if d := me.Position().DistanceTo(e.Position()); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
