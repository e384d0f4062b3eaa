package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine/handlers"
	"platforms-server/internal/systems"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SimCommand обертка, чтобы передать команду и сессию, которая её прислала
type SimCommand struct {
	Cmd    domain.InternalCommand
	Source string
}

// BodyAttacher выдает телам интегратор движения и убирает их из физического мира
type BodyAttacher interface {
	Attach(e *domain.Entity)
	Detach(e *domain.Entity)
}

// Spawner создает сущность по архетипу (кровь, добыча из сундука).
// Регистрирует сущность уже симуляция.
type Spawner interface {
	Spawn(archetype string, pos domain.Vec2) (*domain.Entity, error)
}

// MetricsRecorder - счетчики симуляции
type MetricsRecorder interface {
	RecordTick(d time.Duration, entities, tasks int)
	RecordTask(name string)
	RecordDecision(loop, outcome string)
	RecordEvent(eventType string)
}

type nopMetrics struct{}

func (nopMetrics) RecordTick(time.Duration, int, int) {}
func (nopMetrics) RecordTask(string)                  {}
func (nopMetrics) RecordDecision(string, string)      {}
func (nopMetrics) RecordEvent(string)                 {}

// EventSink получает события сразу при возникновении (журнал, HUD)
type EventSink func(domain.Event)

// maxPendingEvents - сколько событий копится между рассылками
const maxPendingEvents = 256

// maxLogs - сколько строк журнала хранится между рассылками
const maxLogs = 100

// Simulation - одна изолированная сцена с фиксированным шагом.
// Все изменения мира идут из потока Run под mu.
type Simulation struct {
	ID     string
	World  *domain.World
	Config Config

	Tasks     *TaskRunner
	Scheduler *AIScheduler
	Triggers  *systems.TriggerTracker
	Raycaster domain.Raycaster

	Bodies  BodyAttacher
	Spawner Spawner
	Metrics MetricsRecorder

	// Каналы коммуникации
	CommandChan chan SimCommand

	CurrentTick int64
	Time        float64 // секунды симуляции

	Logs   []api.LogEntry // Журнал с прошлой рассылки
	Events []domain.Event // События с прошлой рассылки

	Rng       *rand.Rand // Локальный генератор
	Seed      int64      // Сид, с которого началась сцена
	Replay    *domain.ReplaySession
	Recording bool

	// OnTick вызывается в конце каждого тика под блокировкой
	OnTick func(sim *Simulation)

	handlers   map[domain.ActionType]handlers.HandlerFunc
	sinks      []EventSink
	indicators map[domain.EntityID]*TaskHandle
	playback   []domain.ReplayAction

	mu sync.RWMutex
}

// Option настраивает симуляцию при создании
type Option func(*Simulation)

func WithBodies(b BodyAttacher) Option {
	return func(s *Simulation) { s.Bodies = b }
}

func WithSpawner(sp Spawner) Option {
	return func(s *Simulation) { s.Spawner = sp }
}

func WithMetrics(m MetricsRecorder) Option {
	return func(s *Simulation) {
		if m != nil {
			s.Metrics = m
		}
	}
}

func WithRaycaster(rc domain.Raycaster) Option {
	return func(s *Simulation) { s.Raycaster = rc }
}

// WithPlayback проигрывает записанные команды вместо живого ввода
func WithPlayback(actions []domain.ReplayAction) Option {
	return func(s *Simulation) {
		s.playback = actions
		s.Recording = false
	}
}

func NewSimulation(id string, world *domain.World, cfg Config, opts ...Option) *Simulation {
	s := &Simulation{
		ID:          id,
		World:       world,
		Config:      cfg,
		Tasks:       NewTaskRunner(),
		Triggers:    systems.NewTriggerTracker(),
		Raycaster:   systems.NewWorldRaycaster(world),
		Metrics:     nopMetrics{},
		CommandChan: make(chan SimCommand, 256),
		Logs:        []api.LogEntry{},
		Events:      make([]domain.Event, 0),
		Rng:         rand.New(rand.NewSource(cfg.Seed)),
		Seed:        cfg.Seed,
		Recording:   true,
		Replay: &domain.ReplaySession{
			Scene:     world.Name,
			Seed:      cfg.Seed,
			TickRate:  cfg.TickRate,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		handlers:   defaultHandlers(),
		indicators: make(map[domain.EntityID]*TaskHandle),
	}
	s.Scheduler = NewAIScheduler(world.Player)

	for _, opt := range opts {
		opt(s)
	}
	if len(s.playback) > 0 {
		s.Recording = false
	}
	return s
}

// Populate регистрирует уже созданные сущности сцены
func (s *Simulation) Populate(entities []*domain.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entities {
		s.AddEntity(e)
	}
}

// Run запускает игровой цикл: команды, затем тик, с фиксированным шагом.
func (s *Simulation) Run(ctx context.Context) error {
	dt := s.Config.TickDelta()
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	logger.Log.WithFields(logrus.Fields{
		"sim_id":    s.ID,
		"tick_rate": s.Config.TickRate,
		"seed":      s.Seed,
	}).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Log.WithFields(logrus.Fields{
				"sim_id": s.ID,
				"tick":   s.CurrentTick,
			}).Info("Simulation loop stopped")
			return nil
		case <-ticker.C:
			s.mu.Lock()
			s.drainCommands()
			s.step(dt)
			s.mu.Unlock()
		}
	}
}

// Step продвигает симуляцию на один тик (для тестов и реплеев)
func (s *Simulation) Step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainCommands()
	s.step(dt)
}

func (s *Simulation) step(dt float64) {
	start := time.Now()

	s.applyPlayback()

	s.CurrentTick++
	s.Time += dt

	s.updateEntities(dt)
	s.Tasks.Step(s, dt)
	s.processTriggers()
	s.Scheduler.Advance(s, s.Time)

	s.Metrics.RecordTick(time.Since(start), s.World.Count(), s.Tasks.Len())

	if s.OnTick != nil {
		s.OnTick(s)
	}
}

// Submit ставит команду в очередь, не блокируясь. false - очередь переполнена.
func (s *Simulation) Submit(cmd SimCommand) bool {
	select {
	case s.CommandChan <- cmd:
		return true
	default:
		logger.Log.WithFields(logrus.Fields{
			"sim_id": s.ID,
			"action": cmd.Cmd.Action.String(),
			"source": cmd.Source,
		}).Warn("Command queue is full, command dropped")
		return false
	}
}

func (s *Simulation) drainCommands() {
	for {
		select {
		case c := <-s.CommandChan:
			s.executeCommand(c.Cmd, c.Source)
		default:
			return
		}
	}
}

// executeCommand выполняет команду в контексте сцены
func (s *Simulation) executeCommand(cmd domain.InternalCommand, source string) {
	fields := logrus.Fields{
		"sim_id": s.ID,
		"action": cmd.Action.String(),
		"token":  cmd.Token,
		"source": source,
	}

	actor := s.World.GetEntity(cmd.Token)
	if actor == nil {
		logger.Log.WithFields(fields).WithError(domain.ErrEntityNotFound).Warn("Command dropped")
		return
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		logger.Log.WithFields(fields).WithError(domain.ErrUnknownCommand).Warn("Command dropped")
		return
	}

	if s.Recording && cmd.Action.Recordable() {
		s.recordAction(cmd)
	}

	ctx := handlers.Context{
		Actor:    actor,
		World:    s.World,
		Commands: s,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("Command rejected")
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}
	logger.Log.WithFields(fields).WithField("accepted", result.Accepted).Debug("Command executed")
}

func (s *Simulation) recordAction(cmd domain.InternalCommand) {
	s.Replay.Actions = append(s.Replay.Actions, domain.ReplayAction{
		Tick:    s.CurrentTick,
		Token:   cmd.Token,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

// applyPlayback выполняет записанные команды текущего тика
func (s *Simulation) applyPlayback() {
	for len(s.playback) > 0 && s.playback[0].Tick <= s.CurrentTick {
		a := s.playback[0]
		s.playback = s.playback[1:]
		s.executeCommand(domain.InternalCommand{
			Action:  a.Action,
			Token:   a.Token,
			Payload: a.Payload,
		}, "replay")
	}
}

// PlaybackPending - сколько записанных команд еще не выполнено
func (s *Simulation) PlaybackPending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.playback)
}

// --- СУЩНОСТИ ---

// AddEntity добавляет сущность в структуры сцены. Вызывается из потока симуляции.
func (s *Simulation) AddEntity(e *domain.Entity) {
	if e.Transform == nil {
		e.Transform = &domain.TransformComponent{Scale: domain.Vec2{X: 1, Y: 1}}
	}
	if e.Item != nil && e.Transform.Parent == nil && s.World.ItemContainer != nil {
		if err := e.Transform.SetParent(s.World.ItemContainer); err != nil {
			logger.Log.WithError(err).WithField("entity_id", e.ID).Warn("Item stays unparented")
		}
	}

	s.World.RegisterEntity(e)

	if s.Bodies != nil && e.Body != nil {
		s.Bodies.Attach(e)
	}
	if e.AI != nil {
		s.Scheduler.AddAgent(e, s.Time)
	}

	s.emit(domain.Event{Type: domain.EventSpawn, EntityID: e.ID, Text: e.Kind.String()})
}

// SpawnArchetype создает сущность через Spawner и регистрирует её
func (s *Simulation) SpawnArchetype(archetype string, pos domain.Vec2) (*domain.Entity, error) {
	if s.Spawner == nil {
		return nil, fmt.Errorf("spawn %s: no spawner configured", archetype)
	}
	e, err := s.Spawner.Spawn(archetype, pos)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", archetype, err)
	}
	s.AddEntity(e)
	return e, nil
}

// RemoveEntity убирает сущность из сцены. Слабые ссылки на нее гаснут сами.
func (s *Simulation) RemoveEntity(e *domain.Entity) {
	if e == nil || e.Destroyed {
		return
	}

	container := s.World.ItemContainer
	if e.Held() != nil {
		if _, err := systems.DetachItem(e, container); err != nil {
			logger.Log.WithError(err).WithField("entity_id", e.ID).Warn("Failed to drop held item")
		}
	}
	if e.Item != nil && e.Item.Holder.Alive() {
		if _, err := systems.DetachItem(e.Item.Holder, container); err != nil {
			logger.Log.WithError(err).WithField("entity_id", e.ID).Warn("Failed to release item")
		}
	}

	s.Tasks.CancelOwner(s, e)
	s.Scheduler.RemoveAgent(e.ID)
	s.Triggers.Forget(e.ID)
	delete(s.indicators, e.ID)

	if s.Bodies != nil && e.Body != nil {
		s.Bodies.Detach(e)
	}
	s.World.UnregisterEntity(e.ID)

	s.emit(domain.Event{Type: domain.EventRemove, EntityID: e.ID, Text: e.Kind.String()})
}

// BindController привязывает сессию к сущности. Пустой токен - игрок сцены.
func (s *Simulation) BindController(token, session string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e *domain.Entity
	if token == "" {
		e = s.World.Player()
	} else {
		id, err := domain.ParseEntityID(token)
		if err != nil {
			return nil, err
		}
		e = s.World.GetEntity(id)
	}
	if e == nil {
		return nil, domain.ErrEntityNotFound
	}

	e.ControllerID = session
	logger.Log.WithFields(logrus.Fields{
		"sim_id":    s.ID,
		"entity_id": e.ID,
		"session":   session,
	}).Info("Session bound to entity")
	return e, nil
}

// ReleaseController отвязывает сессию (выход клиента)
func (s *Simulation) ReleaseController(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.World.Entities() {
		if e.ControllerID == session {
			e.ControllerID = ""
			if e.Body != nil {
				e.Body.Input = domain.Zero
			}
		}
	}
}

// Inspect дает доступ на чтение к состоянию между тиками
func (s *Simulation) Inspect(fn func(sim *Simulation)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s)
}

// ReplaySnapshot - копия записанной сессии
func (s *Simulation) ReplaySnapshot() domain.ReplaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := *s.Replay
	out.Actions = append([]domain.ReplayAction(nil), s.Replay.Actions...)
	return out
}

func (s *Simulation) spawnTask(t Task) *TaskHandle {
	h := s.Tasks.Spawn(t, s.CurrentTick)
	s.Metrics.RecordTask(t.Name())
	return h
}
