package engine

import (
	"container/heap"

	"platforms-server/internal/domain"
	"platforms-server/internal/systems"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// PlayerLocator возвращает текущего игрока или nil. Передается планировщику
// при создании вместо поиска по сцене.
type PlayerLocator func() *domain.Entity

// AIScheduler ведет три самоперезапускающиеся петли на каждого агента:
// зрение, решение о движении и решение об атаке.
type AIScheduler struct {
	queue   TimerQueue
	itemMap map[domain.EntityID][]*TimerItem
	parked  []*TimerItem
	player  PlayerLocator
	seq     uint64
}

func NewAIScheduler(player PlayerLocator) *AIScheduler {
	return &AIScheduler{
		queue:   make(TimerQueue, 0),
		itemMap: make(map[domain.EntityID][]*TimerItem),
		player:  player,
	}
}

// SetPlayerLocator подменяет источник игрока (например, после входа сессии)
func (s *AIScheduler) SetPlayerLocator(player PlayerLocator) {
	s.player = player
}

// AddAgent регистрирует петли агента. Каждая петля впервые сработает через свой интервал.
func (s *AIScheduler) AddAgent(e *domain.Entity, now float64) {
	if e.AI == nil {
		return
	}
	if _, exists := s.itemMap[e.ID]; exists {
		return
	}

	loops := []LoopKind{LoopVision, LoopMove, LoopAttack}
	items := make([]*TimerItem, 0, len(loops))
	for _, loop := range loops {
		s.seq++
		item := &TimerItem{
			Agent:  e,
			Loop:   loop,
			FireAt: now + interval(e.AI, loop),
			Seq:    s.seq,
		}
		heap.Push(&s.queue, item)
		items = append(items, item)
	}
	s.itemMap[e.ID] = items

	logger.Log.WithField("entity_id", e.ID).Debug("Agent added to AIScheduler")
}

// RemoveAgent снимает все петли агента (уничтожение).
func (s *AIScheduler) RemoveAgent(id domain.EntityID) {
	items, ok := s.itemMap[id]
	if !ok {
		return
	}
	for _, item := range items {
		if item.Index >= 0 {
			heap.Remove(&s.queue, item.Index)
		}
	}
	kept := s.parked[:0]
	for _, item := range s.parked {
		if item.Agent.ID != id {
			kept = append(kept, item)
		}
	}
	s.parked = kept
	delete(s.itemMap, id)
}

// Advance срабатывает все таймеры с FireAt <= now.
func (s *AIScheduler) Advance(sim *Simulation, now float64) {
	s.unpark(now)

	for s.queue.Len() > 0 && s.queue[0].FireAt <= now {
		item := s.queue[0]
		agent := item.Agent

		// Петли живут, пока жив агент
		if agent.Destroyed {
			s.RemoveAgent(agent.ID)
			continue
		}

		var attack *TaskHandle
		switch item.Loop {
		case LoopVision:
			s.runVision(sim, agent)
		case LoopMove:
			s.runMove(sim, agent)
		case LoopAttack:
			attack = s.runAttack(sim, agent)
		}

		if attack != nil {
			// Петля атаки перезапустится только после завершения атаки
			heap.Remove(&s.queue, item.Index)
			item.Parked = attack
			s.parked = append(s.parked, item)
			continue
		}

		s.seq++
		item.Seq = s.seq
		s.queue.Update(item, now+interval(agent.AI, item.Loop))
	}
}

func (s *AIScheduler) unpark(now float64) {
	kept := s.parked[:0]
	for _, item := range s.parked {
		if !item.Parked.Done() {
			kept = append(kept, item)
			continue
		}
		item.Parked = nil
		s.seq++
		item.Seq = s.seq
		item.FireAt = now + interval(item.Agent.AI, item.Loop)
		heap.Push(&s.queue, item)
	}
	s.parked = kept
}

// --- ПЕТЛИ ---

func (s *AIScheduler) locatePlayer() *domain.Entity {
	if s.player == nil {
		return nil
	}
	p := s.player()
	if !p.Alive() {
		return nil
	}
	return p
}

func (s *AIScheduler) runVision(sim *Simulation, agent *domain.Entity) {
	player := s.locatePlayer()
	if player == nil || !agent.Alive() || !agent.IsIdle() {
		sim.Metrics.RecordDecision(LoopVision.String(), "skip")
		return
	}

	seen := systems.Perceive(agent, player, sim.Raycaster)
	if seen == agent.AI.Aware {
		sim.Metrics.RecordDecision(LoopVision.String(), "steady")
		return
	}

	agent.AI.Aware = seen
	systems.StopMotion(agent)

	glyph := domain.IndicatorUnaware
	value := 0
	if seen {
		systems.FaceToward(agent, player)
		glyph = domain.IndicatorAware
		value = 1
	}
	sim.ShowIndicator(agent, glyph)
	sim.emit(domain.Event{Type: domain.EventAwareness, EntityID: agent.ID, OtherID: player.ID, Value: value})
	sim.Metrics.RecordDecision(LoopVision.String(), "flip")

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_scheduler",
		"agent_id":  agent.ID,
		"aware":     seen,
	}).Info("Awareness changed.")
}

func (s *AIScheduler) runMove(sim *Simulation, agent *domain.Entity) {
	player := s.locatePlayer()
	if player == nil || !agent.Alive() || !agent.IsIdle() || agent.Body == nil {
		sim.Metrics.RecordDecision(LoopMove.String(), "skip")
		return
	}
	agent.Body.Input.X = systems.DecideMoveInput(agent, player)
	sim.Metrics.RecordDecision(LoopMove.String(), "steer")
}

func (s *AIScheduler) runAttack(sim *Simulation, agent *domain.Entity) *TaskHandle {
	player := s.locatePlayer()
	if player == nil || !agent.Alive() || !agent.IsIdle() {
		sim.Metrics.RecordDecision(LoopAttack.String(), "skip")
		return nil
	}
	if !systems.InEngageRange(agent, player) {
		sim.Metrics.RecordDecision(LoopAttack.String(), "hold")
		return nil
	}

	systems.FaceToward(agent, player)
	h := sim.startAttack(agent)
	if h != nil {
		sim.Metrics.RecordDecision(LoopAttack.String(), "attack")
	}
	return h
}

// minInterval не дает петле с нулевым интервалом зациклить Advance
const minInterval = 1e-3

func interval(ai *domain.AIComponent, loop LoopKind) float64 {
	v := 1.0
	switch loop {
	case LoopVision:
		v = ai.VisionInterval
	case LoopMove:
		v = ai.MoveInterval
	case LoopAttack:
		v = ai.AttackInterval
	}
	if v < minInterval {
		return minInterval
	}
	return v
}

func (s *AIScheduler) Len() int {
	return s.queue.Len() + len(s.parked)
}

// DebugDump возвращает снимок таймеров для отладки
func (s *AIScheduler) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range s.queue {
		result = append(result, map[string]interface{}{
			"id":     item.Agent.ID,
			"name":   item.Agent.Name,
			"loop":   item.Loop.String(),
			"fireAt": item.FireAt,
			"index":  item.Index,
		})
	}
	for _, item := range s.parked {
		result = append(result, map[string]interface{}{
			"id":     item.Agent.ID,
			"name":   item.Agent.Name,
			"loop":   item.Loop.String(),
			"parked": true,
			"taskId": item.Parked.ID,
		})
	}
	return result
}
