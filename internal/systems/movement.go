package systems

import (
	"platforms-server/internal/domain"
)

// ResetCollisions - первый шаг тика: реакция на касания прошлого перемещения.
// Касание сверху или снизу гасит вертикальную скорость и завершает прыжок.
func ResetCollisions(e *domain.Entity, tuning domain.MovementTuning) {
	body, motor := e.Body, e.Motor
	if body == nil || motor == nil {
		return
	}

	c := body.Collisions
	if c.Above || c.Below {
		if motor.Jumping {
			body.Velocity.X = 0
		}
		body.Velocity.Y = 0
		motor.Jumping = false
		motor.FastDrop = false
	}

	// Разогнались вниз достаточно - режим быстрого падения больше не нужен
	if body.Velocity.Y < tuning.FastDropClearSpeed {
		motor.FastDrop = false
	}

	if c.Below && e.Combat != nil {
		e.Combat.HasAttackedInAir = false
	}
}

// ComputeInput обновляет вектор ввода по источнику варианта.
// Игрок и ИИ держат то, что им выставили командами; пассивные тела затухают.
func ComputeInput(e *domain.Entity, tuning domain.MovementTuning) {
	body := e.Body
	if body == nil {
		return
	}

	switch e.Caps().Input {
	case domain.InputDevice, domain.InputAI:
		return
	case domain.InputPassive:
		body.Input.X *= tuning.InputDecay
		c := body.Collisions
		if c.Left || c.Right {
			body.Input.X = 0
		}
		if c.Above || c.Below {
			body.Input.X *= tuning.InputSurfaceDamp
		}
	}
}

// SmoothVelocity подтягивает горизонтальную скорость к input.x * speed.
func SmoothVelocity(e *domain.Entity, dt float64) {
	body, motor := e.Body, e.Motor
	if body == nil || motor == nil {
		return
	}

	target := body.Input.X * motor.Speed
	smoothTime := motor.AccelerationTimeAirborne
	if body.Collisions.Below {
		smoothTime = motor.AccelerationTimeGrounded
	}
	body.Velocity.X = domain.SmoothDamp(body.Velocity.X, target, &body.VelocityXSmoothing, smoothTime, dt)
}

// ApplyGravity добавляет гравитацию. На лестнице с вертикальным вводом
// гравитация приостановлена, скорость задается вводом.
func ApplyGravity(e *domain.Entity, dt float64) {
	body, motor := e.Body, e.Motor
	if body == nil || motor == nil || !body.GravityAffected {
		return
	}

	if e.Interaction != nil && e.Interaction.Ladder.Alive() && body.Input.Y != 0 {
		body.Velocity.Y = body.Input.Y * motor.ClimbSpeed
		return
	}
	body.Velocity.Y += motor.Gravity * dt
}

// UpdateFacing разворачивает сущность по знаку горизонтальной скорости.
func UpdateFacing(e *domain.Entity) {
	if e.Body == nil || e.Body.Velocity.X == 0 {
		return
	}
	e.SetFacing(e.Body.Velocity.X)
}

// Integrate прогоняет velocity*dt через интегратор и сохраняет флаги касаний.
// Тело без интегратора просто сдвигается.
func Integrate(e *domain.Entity, dt float64) domain.CollisionFlags {
	body := e.Body
	if body == nil {
		return domain.CollisionFlags{}
	}

	displacement := body.Velocity.Scale(dt)
	fastDrop := e.Motor != nil && e.Motor.FastDrop

	if body.Controller == nil {
		e.Transform.Translate(displacement)
		body.Collisions = domain.CollisionFlags{}
		return body.Collisions
	}

	body.Collisions = body.Controller.Move(displacement, fastDrop)
	return body.Collisions
}

// StepMovement - шаги тикового обновления движения.
// Занятое действием тело не читает ввод: скоростью управляет задача.
// Пока тело ведет PushBack, гравитация и перемещение тоже принадлежат ему.
func StepMovement(e *domain.Entity, dt float64, tuning domain.MovementTuning) {
	if e.Body == nil || e.Motor == nil {
		return
	}

	ResetCollisions(e, tuning)
	if req := e.Motor.PendingJump; req != nil {
		e.Motor.PendingJump = nil
		Jump(e, req.FastDrop, req.Intensity, tuning)
	}
	if e.IsIdle() {
		ComputeInput(e, tuning)
		SmoothVelocity(e, dt)
	}

	if e.Body.PushDepth > 0 {
		UpdateFacing(e)
		return
	}

	ApplyGravity(e, dt)
	UpdateFacing(e)
	Integrate(e, dt)
}

// RequestJump ставит прыжок в очередь до следующего тика.
// Отказ, если прыжок уже идет или уже запрошен.
func RequestJump(e *domain.Entity, fastDrop bool, intensity float64) bool {
	motor := e.Motor
	if motor == nil || motor.Jumping || motor.PendingJump != nil {
		return false
	}
	motor.PendingJump = &domain.JumpRequest{FastDrop: fastDrop, Intensity: intensity}
	return true
}

// Jump запускает прыжок. Повторный прыжок до приземления игнорируется.
// fastDrop - прыжок вниз сквозь одностороннюю платформу: скорость вдвое меньше.
func Jump(e *domain.Entity, fastDrop bool, intensity float64, tuning domain.MovementTuning) bool {
	body, motor := e.Body, e.Motor
	if body == nil || motor == nil || motor.Jumping {
		return false
	}
	if intensity <= 0 {
		intensity = 1
	}

	body.Velocity.Y = motor.JumpVelocity * intensity
	motor.Jumping = true
	if fastDrop {
		motor.FastDrop = true
		body.Velocity.Y *= tuning.FastDropFactor
	}
	return true
}

// IsOutOfBounds - упали ниже плоскости смерти
func IsOutOfBounds(e *domain.Entity, tuning domain.MovementTuning) bool {
	return e.Position().Y < tuning.KillPlaneY
}
