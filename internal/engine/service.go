package engine

import (
	"errors"
	"fmt"

	"platforms-server/internal/domain"
	"platforms-server/internal/network"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotLoggedIn = errors.New("session is not logged in")
	ErrQueueFull   = errors.New("command queue is full")
)

// ReplayStore сохраняет записанную сессию
type ReplayStore interface {
	Save(session *domain.ReplaySession) (string, error)
}

// CommandMetrics - счетчики входящих команд
type CommandMetrics interface {
	RecordCommand(action, status string)
	SessionOpened()
	SessionClosed()
}

type nopCommandMetrics struct{}

func (nopCommandMetrics) RecordCommand(string, string) {}
func (nopCommandMetrics) SessionOpened()               {}
func (nopCommandMetrics) SessionClosed()               {}

// GameService - граница между клиентами и симуляцией: логин, проверка команд, рассылка
type GameService struct {
	Sim     *Simulation
	Hub     *network.Broadcaster
	Schemas *api.PayloadSchemas

	replays ReplayStore
	metrics CommandMetrics
}

type ServiceOption func(*GameService)

func WithReplayStore(store ReplayStore) ServiceOption {
	return func(s *GameService) { s.replays = store }
}

func WithCommandMetrics(m CommandMetrics) ServiceOption {
	return func(s *GameService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithEventSink подписывает внешнего слушателя (журнал) на события сцены
func WithEventSink(sink EventSink) ServiceOption {
	return func(s *GameService) { s.Sim.AddEventSink(sink) }
}

func NewService(sim *Simulation, opts ...ServiceOption) (*GameService, error) {
	schemas, err := api.NewPayloadSchemas()
	if err != nil {
		return nil, fmt.Errorf("payload schemas: %w", err)
	}

	s := &GameService{
		Sim:     sim,
		Hub:     network.NewBroadcaster(),
		Schemas: schemas,
		metrics: nopCommandMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	sim.OnTick = s.publish
	return s, nil
}

// Login привязывает сессию к сущности и подписывает ее на рассылку
func (s *GameService) Login(session, token string) (<-chan api.ServerResponse, domain.EntityID, error) {
	e, err := s.Sim.BindController(token, session)
	if err != nil {
		return nil, domain.NoEntity, err
	}
	ch := s.Hub.Register(session, e.ID)
	s.metrics.SessionOpened()

	// Первый снимок сразу, не дожидаясь тика рассылки
	var snap api.ServerResponse
	s.Sim.Inspect(func(sim *Simulation) {
		snap = sim.BuildSnapshot()
	})
	snap.MyEntityID = e.ID.Token()
	s.Hub.SendTo(session, snap)

	s.Sim.Submit(SimCommand{
		Cmd:    domain.InternalCommand{Action: domain.ActionInit, Token: e.ID},
		Source: session,
	})
	return ch, e.ID, nil
}

// Logout отвязывает сессию
func (s *GameService) Logout(session string) {
	if _, ok := s.Hub.Entity(session); !ok {
		return
	}
	s.Sim.ReleaseController(session)
	s.Hub.Unregister(session)
	s.metrics.SessionClosed()
}

// ProcessCommand проверяет команду клиента и ставит её в очередь симуляции.
// Актер всегда берется из сессии, токен в команде не доверяется.
func (s *GameService) ProcessCommand(session string, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown || action == domain.ActionLogin {
		s.metrics.RecordCommand(cmd.Action, "invalid")
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Action)
	}

	entity, ok := s.Hub.Entity(session)
	if !ok {
		s.metrics.RecordCommand(action.String(), "invalid")
		return ErrNotLoggedIn
	}

	if err := s.Schemas.Validate(action.String(), cmd.Payload); err != nil {
		s.metrics.RecordCommand(action.String(), "invalid")
		return err
	}

	accepted := s.Sim.Submit(SimCommand{
		Cmd: domain.InternalCommand{
			Action:  action,
			Token:   entity,
			Payload: cmd.Payload,
		},
		Source: session,
	})
	if !accepted {
		s.metrics.RecordCommand(action.String(), "dropped")
		return ErrQueueFull
	}
	s.metrics.RecordCommand(action.String(), "accepted")
	return nil
}

// publish вызывается симуляцией в конце тика под блокировкой
func (s *GameService) publish(sim *Simulation) {
	if events := sim.DrainEvents(); len(events) > 0 {
		s.Hub.Broadcast(api.ServerResponse{
			Type:   api.MsgEvent,
			Tick:   sim.CurrentTick,
			Events: ToEventViews(events),
		}, nil)
	}

	every := int64(sim.Config.SnapshotEvery)
	if every <= 0 {
		every = 1
	}
	if sim.CurrentTick%every != 0 {
		return
	}

	snap := sim.BuildSnapshot()
	snap.Logs = sim.DrainLogs()
	s.Hub.Broadcast(snap, personalize)
}

func personalize(msg *api.ServerResponse, entity domain.EntityID) {
	if entity != domain.NoEntity {
		msg.MyEntityID = entity.Token()
	}
}

// SaveReplay сохраняет записанные команды. Пустая запись не сохраняется.
func (s *GameService) SaveReplay() (string, error) {
	if s.replays == nil {
		return "", nil
	}
	session := s.Sim.ReplaySnapshot()
	if len(session.Actions) == 0 {
		return "", nil
	}
	path, err := s.replays.Save(&session)
	if err != nil {
		return "", fmt.Errorf("save replay: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"sim_id":  s.Sim.ID,
		"actions": len(session.Actions),
		"path":    path,
	}).Info("Replay saved")
	return path, nil
}
