package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/internal/systems"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Имена задач (для ActiveFor, метрик и /debug/tasks)
const (
	taskPushBack   = "push_back"
	taskAttack     = "attack"
	taskRoll       = "roll"
	taskHurt       = "hurt"
	taskDeath      = "death"
	taskJumpAttack = "jump_attack"
)

// --- PUSH BACK ---

// pushBackTask ведет тело по горизонтали к точке startX + vec.X.
// Пока задача активна, гравитацию и перемещение тела делает она, а не тик.
type pushBackTask struct {
	owner    *domain.Entity
	vec      domain.Vec2
	duration float64

	elapsed float64
	targetX float64
	started bool
	ended   bool
}

func (t *pushBackTask) Name() string          { return taskPushBack }
func (t *pushBackTask) Owner() *domain.Entity { return t.owner }

func (t *pushBackTask) Step(sim *Simulation, dt float64) bool {
	e := t.owner
	if e.Destroyed || e.Body == nil {
		t.end()
		return true
	}

	tuning := sim.Config.Combat
	if !t.started {
		t.started = true
		e.Body.PushDepth++
		e.Body.Velocity.Y = t.vec.Y
		t.targetX = e.Position().X + t.vec.X
	}

	dx := (t.targetX - e.Position().X) * tuning.PushFollowGain
	e.Body.Velocity.X = domain.Lerp(dx, 0, dt*tuning.PushDecayRate)
	systems.ApplyGravity(e, dt)
	systems.Integrate(e, dt)

	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.end()
		return true
	}
	return false
}

func (t *pushBackTask) Abort(*Simulation) {
	t.end()
}

func (t *pushBackTask) end() {
	if t.ended {
		return
	}
	t.ended = true
	if t.started && t.owner.Body != nil && t.owner.Body.PushDepth > 0 {
		t.owner.Body.PushDepth--
	}
}

// PushBack запускает толчок. Ждать его не обязательно.
func (s *Simulation) PushBack(e *domain.Entity, vec domain.Vec2, duration float64) *TaskHandle {
	if e == nil || e.Body == nil {
		return nil
	}
	return s.spawnTask(&pushBackTask{owner: e, vec: vec, duration: duration})
}

// --- ATTACK ---

type attackPhase uint8

const (
	attackWindup attackPhase = iota
	attackRecoil
	attackRecovery
)

type attackTask struct {
	owner *domain.Entity
	token uint64
	phase attackPhase
	wait  float64

	impulse domain.Vec2
	forward *TaskHandle
	recoil  *TaskHandle
}

func (t *attackTask) Name() string          { return taskAttack }
func (t *attackTask) Owner() *domain.Entity { return t.owner }

func (t *attackTask) Step(sim *Simulation, dt float64) bool {
	e := t.owner
	if !e.Alive() || !e.Combat.Owns(t.token) {
		// Состояние перехватили (Hurt) - толчки атаки больше не наши
		t.Abort(sim)
		return true
	}

	tuning := sim.Config.Combat
	switch t.phase {
	case attackWindup:
		t.wait += dt
		if t.wait < tuning.AttackWindup {
			return false
		}

		target := systems.FindAttackTarget(e, sim.Raycaster, tuning)
		if target == nil {
			t.enterRecovery()
			return false
		}

		damage := systems.RollDamage(sim.Rng, e.Stats)
		sim.Hurt(target, e, damage, systems.AttackKnockback(e, tuning))

		sim.Tasks.Cancel(sim, t.forward)
		t.recoil = sim.PushBack(e, t.impulse.Scale(-0.5), tuning.AttackRecoilDuration)
		t.phase = attackRecoil
		return false

	case attackRecoil:
		if !t.recoil.Done() {
			return false
		}
		t.enterRecovery()
		return false

	case attackRecovery:
		t.wait += dt
		if t.wait < tuning.AttackRecovery {
			return false
		}
		e.Combat.HasAttackedInAir = !e.Grounded()
		e.Combat.Release(t.token)
		return true
	}
	return true
}

func (t *attackTask) enterRecovery() {
	systems.StopMotion(t.owner)
	t.phase = attackRecovery
	t.wait = 0
}

func (t *attackTask) Abort(sim *Simulation) {
	sim.Tasks.Cancel(sim, t.forward)
	sim.Tasks.Cancel(sim, t.recoil)
}

// startAttack забирает состояние из Idle и запускает атаку.
// В воздухе можно ударить один раз до приземления.
func (s *Simulation) startAttack(e *domain.Entity) *TaskHandle {
	if !e.Alive() || e.Combat == nil || e.Body == nil {
		return nil
	}
	if !e.Grounded() && e.Combat.HasAttackedInAir {
		return nil
	}
	token, ok := e.Combat.TryClaim(domain.StateAttack)
	if !ok {
		return nil
	}

	impulse := systems.AttackImpulse(e, s.Config.Combat)
	t := &attackTask{owner: e, token: token, impulse: impulse}
	t.forward = s.PushBack(e, impulse, s.Config.Combat.AttackPushDuration)
	return s.spawnTask(t)
}

// --- ROLL ---

type rollTask struct {
	owner *domain.Entity
	token uint64
	push  *TaskHandle
}

func (t *rollTask) Name() string          { return taskRoll }
func (t *rollTask) Owner() *domain.Entity { return t.owner }

func (t *rollTask) Step(sim *Simulation, _ float64) bool {
	if !t.owner.Alive() || !t.owner.Combat.Owns(t.token) {
		t.Abort(sim)
		return true
	}
	if !t.push.Done() {
		return false
	}
	t.owner.Combat.Release(t.token)
	return true
}

func (t *rollTask) Abort(sim *Simulation) {
	sim.Tasks.Cancel(sim, t.push)
}

func (s *Simulation) startRoll(e *domain.Entity) *TaskHandle {
	if !e.Alive() || e.Combat == nil || e.Body == nil {
		return nil
	}
	token, ok := e.Combat.TryClaim(domain.StateRoll)
	if !ok {
		return nil
	}
	tuning := s.Config.Combat
	push := s.PushBack(e, domain.Vec2{X: e.Facing() * tuning.RollPush}, tuning.RollDuration)
	return s.spawnTask(&rollTask{owner: e, token: token, push: push})
}

// --- HURT ---

type hurtTask struct {
	owner *domain.Entity
	token uint64
	push  *TaskHandle
}

func (t *hurtTask) Name() string          { return taskHurt }
func (t *hurtTask) Owner() *domain.Entity { return t.owner }

func (t *hurtTask) Step(sim *Simulation, _ float64) bool {
	e := t.owner
	if e.Combat != nil && !e.Combat.Owns(t.token) {
		// Новый Hurt перехватил состояние
		t.Abort(sim)
		return true
	}
	if !t.push.Done() {
		return false
	}
	if e.Stats != nil && e.Stats.IsDead {
		sim.Kill(e)
		return true
	}
	if e.Combat != nil {
		e.Combat.Release(t.token)
	}
	return true
}

func (t *hurtTask) Abort(sim *Simulation) {
	sim.Tasks.Cancel(sim, t.push)
}

// Hurt наносит урон сразу и отбрасывает цель. Перехватывает любое действие цели.
// attacker может быть nil (урон от окружения).
func (s *Simulation) Hurt(target, attacker *domain.Entity, damage int, knockback domain.Vec2) *TaskHandle {
	if !target.Alive() || target.Stats == nil {
		return nil
	}

	systems.ApplyDamage(attacker, target, damage)

	ev := domain.Event{Type: domain.EventHurt, EntityID: target.ID, Value: damage}
	if attacker != nil {
		ev.OtherID = attacker.ID
	}
	s.emit(ev)

	var token uint64
	if target.Combat != nil {
		token = target.Combat.Claim(domain.StateHurt)
	}
	systems.StopMotion(target)

	push := s.PushBack(target, knockback, s.Config.Combat.HurtDuration)
	return s.spawnTask(&hurtTask{owner: target, token: token, push: push})
}

// --- DEATH ---

type deathTask struct {
	owner *domain.Entity
	stage int
}

func (t *deathTask) Name() string          { return taskDeath }
func (t *deathTask) Owner() *domain.Entity { return t.owner }

// Step: первый тик - событие и кровь, второй - удаление
func (t *deathTask) Step(sim *Simulation, _ float64) bool {
	e := t.owner
	if t.stage == 0 {
		t.stage = 1
		sim.emit(domain.Event{Type: domain.EventDeath, EntityID: e.ID, Text: e.Name})
		sim.AddLog(e.Name+" погибает.", "COMBAT")
		sim.bleed(e)
		return false
	}
	sim.RemoveEntity(e)
	return true
}

// Kill запускает смерть. Повторный вызов для умирающей сущности игнорируется.
func (s *Simulation) Kill(e *domain.Entity) *TaskHandle {
	if e == nil || e.Destroyed || s.Tasks.ActiveFor(e, taskDeath) > 0 {
		return nil
	}
	if e.Stats != nil {
		e.Stats.HP = 0
		e.Stats.IsDead = true
	}
	if e.Body != nil {
		e.Body.Input = domain.Zero
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"entity_id": e.ID,
		"name":      e.Name,
	}).Info("Entity died.")
	return s.spawnTask(&deathTask{owner: e})
}

// bleed разбрызгивает [DecalsMin, DecalsMax) пятен крови у груди
func (s *Simulation) bleed(e *domain.Entity) {
	tuning := s.Config.Combat
	count := utils.RangeInt(s.Rng, tuning.DecalsMin, tuning.DecalsMax)
	origin := e.ChestPoint()

	for i := 0; i < count; i++ {
		decal, err := s.SpawnArchetype("decal", origin)
		if err != nil {
			logger.Log.WithError(err).Debug("Decal not spawned.")
			return
		}
		if decal.Body != nil {
			decal.Body.Velocity = domain.Vec2{
				X: utils.RangeFloat(s.Rng, -3, 3),
				Y: utils.RangeFloat(s.Rng, 2, 6),
			}
		}
	}
}

// --- JUMP ATTACK ---

type jumpAttackTask struct {
	owner  *domain.Entity
	target *domain.Entity
}

func (t *jumpAttackTask) Name() string          { return taskJumpAttack }
func (t *jumpAttackTask) Owner() *domain.Entity { return t.owner }

func (t *jumpAttackTask) Step(sim *Simulation, _ float64) bool {
	e := t.owner
	if !e.Alive() || !t.target.Alive() {
		return true
	}

	e.Motor.Jumping = false
	systems.Jump(e, false, 1, sim.Config.Movement)

	damage := systems.RollDamage(sim.Rng, e.Stats)
	sim.Hurt(t.target, e, damage, systems.StompKnockback(e, t.target, sim.Config.Combat))
	return true
}
