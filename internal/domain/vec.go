package domain

import "math"

// Vec2 - точка или вектор в мировых единицах. Ось Y направлена вверх.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var (
	Up    = Vec2{X: 0, Y: 1}
	Right = Vec2{X: 1, Y: 0}
	Zero  = Vec2{}
)

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Mul(o Vec2) Vec2      { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Abs() Vec2            { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Div делит покомпонентно. Делитель с нулевой компонентой - ошибка вызывающего.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// Normalized возвращает единичный вектор (или нулевой для нулевого).
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// DistanceTo возвращает точное расстояние до другой точки
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// ApproxEqual сравнивает векторы с допуском.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Lerp интерполирует с ограничением t в [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// LerpVec - покомпонентный Lerp.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Sign возвращает -1, 0 или 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// SmoothDamp - критически демпфированное сглаживание (пружина без перелета).
// velocity хранит скорость изменения между вызовами.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// Не перелетаем цель
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = (output - originalTo) / dt
	}
	return output
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
