package domain

import "math"

// Init выводит гравитацию и скорость отрыва из высоты прыжка и времени до вершины.
func (m *MotorComponent) Init() {
	if m.TimeToJumpApex > 0 {
		m.Gravity = -(2 * m.JumpHeight) / math.Pow(m.TimeToJumpApex, 2)
		m.JumpVelocity = math.Abs(m.Gravity) * m.TimeToJumpApex
	}
	m.Speed = m.MoveSpeed
}
