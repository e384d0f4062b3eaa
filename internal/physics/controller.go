package physics

import (
	"math"

	"platforms-server/internal/domain"

	"github.com/solarlune/resolv"
)

// skin - зазор, чтобы касание не считалось пересечением
const skin = 1e-6

// controller - интегратор тела: двигает сначала по X, затем по Y,
// останавливаясь у твердой геометрии. Актеры не блокируют движение,
// касание с ними возвращается в Target.
type controller struct {
	space  *Space
	entity *domain.Entity
	object *resolv.Object
}

type rect struct {
	x, y, w, h float64
}

func rectOf(o *resolv.Object) rect {
	return rect{o.X, o.Y, o.W, o.H}
}

func (r rect) moved(dx, dy float64) rect {
	return rect{r.x + dx, r.y + dy, r.w, r.h}
}

func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w-skin && r.x+r.w > o.x+skin &&
		r.y < o.y+o.h-skin && r.y+r.h > o.y+skin
}

func (c *controller) Move(displacement domain.Vec2, fastDrop bool) domain.CollisionFlags {
	var flags domain.CollisionFlags
	obj := c.object
	c.space.sync(c.entity, obj)

	k := c.space.cfg.UnitScale
	dx := displacement.X * k
	dy := displacement.Y * k

	// Актер, в которого мы уперлись (для атаки прыжком)
	if dx != 0 || dy != 0 {
		flags.Target = c.touchedActor(dx, dy)
	}

	if dx != 0 {
		dx = c.clampX(dx, &flags)
		obj.X += dx
	}
	if dy != 0 {
		dy = c.clampY(dy, fastDrop, &flags)
		obj.Y += dy
	}
	obj.Update()

	c.entity.Transform.Translate(domain.Vec2{X: dx / k, Y: dy / k})
	return flags
}

func (c *controller) clampX(dx float64, flags *domain.CollisionFlags) float64 {
	obj := c.object
	col := obj.Check(dx, 0, tagSolid, tagPlatform)
	if col == nil {
		return dx
	}

	self := rectOf(obj)
	target := self.moved(dx, 0)
	for _, o := range col.Objects {
		r := rectOf(o)
		if !target.overlaps(r) {
			continue
		}
		if dx > 0 {
			allowed := math.Max(0, r.x-(self.x+self.w))
			if allowed < dx {
				dx = allowed
				flags.Right = true
			}
		} else {
			allowed := math.Min(0, (r.x+r.w)-self.x)
			if allowed > dx {
				dx = allowed
				flags.Left = true
			}
		}
		target = self.moved(dx, 0)
	}
	return dx
}

// clampY: односторонняя платформа держит только падающего сверху и без fastDrop
func (c *controller) clampY(dy float64, fastDrop bool, flags *domain.CollisionFlags) float64 {
	obj := c.object
	col := obj.Check(0, dy, tagSolid, tagPlatform, tagOneWay)
	if col == nil {
		return dy
	}

	self := rectOf(obj)
	target := self.moved(0, dy)
	for _, o := range col.Objects {
		r := rectOf(o)
		if !target.overlaps(r) {
			continue
		}
		if o.HasTags(tagOneWay) {
			top := r.y + r.h
			if dy > 0 || fastDrop || self.y < top-skin {
				continue
			}
		}
		if dy < 0 {
			allowed := math.Min(0, (r.y+r.h)-self.y)
			if allowed > dy {
				dy = allowed
				flags.Below = true
			}
		} else {
			allowed := math.Max(0, r.y-(self.y+self.h))
			if allowed < dy {
				dy = allowed
				flags.Above = true
			}
		}
		target = self.moved(0, dy)
	}
	return dy
}

func (c *controller) touchedActor(dx, dy float64) *domain.Entity {
	obj := c.object
	col := obj.Check(dx, dy, tagActor)
	if col == nil {
		return nil
	}
	target := rectOf(obj).moved(dx, dy)
	for _, o := range col.Objects {
		e, ok := o.Data.(*domain.Entity)
		if !ok || e == c.entity || !e.Alive() {
			continue
		}
		c.space.sync(e, o)
		if target.overlaps(rectOf(o)) {
			return e
		}
	}
	return nil
}
