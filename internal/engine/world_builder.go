package engine

import (
	"platforms-server/internal/physics"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/scene"

	"github.com/sirupsen/logrus"
)

// BuildSimulation собирает сцену: физическое пространство поверх мира, фабрику архетипов
// для спавна крови и добычи и начальные сущности.
func BuildSimulation(id string, sc *scene.Scene, cfg Config, phys physics.Config, opts ...Option) *Simulation {
	space := physics.NewSpace(phys, sc.World)

	base := []Option{
		WithBodies(space),
		WithSpawner(sc.Factory),
	}
	sim := NewSimulation(id, sc.World, cfg, append(base, opts...)...)
	sim.Populate(sc.Entities)

	logger.Log.WithFields(logrus.Fields{
		"sim_id":   id,
		"scene":    sc.World.Name,
		"entities": sc.World.Count(),
		"bodies":   space.Len(),
		"agents":   sim.Scheduler.Len(),
	}).Info("Scene built")
	return sim
}
