package systems

import (
	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// WorldRaycaster - лучи по статической геометрии мира и коллайдерам сущностей.
type WorldRaycaster struct {
	World *domain.World
}

func NewWorldRaycaster(w *domain.World) *WorldRaycaster {
	return &WorldRaycaster{World: w}
}

// Raycast возвращает ближайшее попадание в пределах distance.
// Держимые предметы, мертвые и неколлизионные тела лучи не видят.
func (r *WorldRaycaster) Raycast(origin, dir domain.Vec2, distance float64, mask domain.Layer, ignore *domain.Entity) (domain.RayHit, bool) {
	dir = dir.Normalized()
	if dir.IsZero() || distance <= 0 {
		return domain.RayHit{}, false
	}

	best := domain.RayHit{Distance: distance}
	found := false

	if mask&domain.LayerSolid != 0 {
		for _, box := range r.World.Solids {
			if d, ok := box.IntersectRay(origin, dir, best.Distance); ok && (!found || d < best.Distance) {
				best = domain.RayHit{Point: origin.Add(dir.Scale(d)), Distance: d}
				found = true
			}
		}
	}

	for _, e := range r.World.Entities() {
		if e == ignore || !e.Alive() || e.Body == nil || !e.Body.Collidable {
			continue
		}
		if e.Body.Layer&mask == 0 || e.IsHeld() {
			continue
		}
		if d, ok := e.Bounds().IntersectRay(origin, dir, best.Distance); ok && (!found || d < best.Distance) {
			best = domain.RayHit{Entity: e, Point: origin.Add(dir.Scale(d)), Distance: d}
			found = true
		}
	}

	if found {
		logger.Log.WithFields(logrus.Fields{
			"component": "physics_system",
			"origin":    origin,
			"distance":  best.Distance,
			"hit":       best.Entity != nil,
		}).Trace("Raycast hit.")
	}
	return best, found
}

// HasLineOfSight - луч от груди наблюдателя до груди цели не перекрыт ничем
// из маски зрения, кроме самой цели.
func HasLineOfSight(rc domain.Raycaster, viewer, target *domain.Entity, maxDistance float64) bool {
	from := viewer.ChestPoint()
	to := target.ChestPoint()
	dist := from.DistanceTo(to)
	if dist > maxDistance {
		return false
	}
	if dist == 0 {
		return true
	}

	hit, ok := rc.Raycast(from, to.Sub(from), maxDistance, domain.MaskVision, viewer)
	return ok && hit.Entity == target
}
