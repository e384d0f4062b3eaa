package domain

import "math"

// AABB - выровненный по осям прямоугольник (статическая геометрия, коллайдеры).
type AABB struct {
	Min Vec2 `json:"min" yaml:"min"`
	Max Vec2 `json:"max" yaml:"max"`
}

// RectFromFeet строит коллайдер по точке "ступней" (низ-центр) и размеру.
func RectFromFeet(feet, size Vec2) AABB {
	half := size.X / 2
	return AABB{
		Min: Vec2{feet.X - half, feet.Y},
		Max: Vec2{feet.X + half, feet.Y + size.Y},
	}
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

// Overlaps - строгое пересечение (касание краями не считается).
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// IntersectRay - slab-тест. Возвращает расстояние вдоль dir (dir нормализован)
// до первой точки входа, либо false. Луч, стартующий внутри, попадает на 0.
func (a AABB) IntersectRay(origin, dir Vec2, maxDist float64) (float64, bool) {
	tMin, tMax := 0.0, maxDist

	for axis := 0; axis < 2; axis++ {
		o, d, lo, hi := origin.X, dir.X, a.Min.X, a.Max.X
		if axis == 1 {
			o, d, lo, hi = origin.Y, dir.Y, a.Min.Y, a.Max.Y
		}

		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
