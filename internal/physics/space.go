package physics

import (
	"math"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
)

// Теги объектов пространства
const (
	tagSolid    = "solid"
	tagPlatform = "platform"
	tagOneWay   = "oneway"
	tagActor    = "actor"
)

// Config - размеры пространства в мировых единицах
type Config struct {
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height"`
	CellSize  int         `yaml:"cellSize"`  // в пикселях пространства
	UnitScale float64     `yaml:"unitScale"` // пикселей на мировую единицу
	Origin    domain.Vec2 `yaml:"origin"`    // мировая точка, попадающая в (0, 0) пространства
}

func DefaultConfig() Config {
	return Config{
		Width:     64,
		Height:    32,
		CellSize:  16,
		UnitScale: 16,
		Origin:    domain.Vec2{X: -4, Y: -4},
	}
}

// Space - физический мир сцены поверх resolv.Space.
// Выдает телам интеграторы и держит статическую геометрию.
type Space struct {
	cfg     Config
	space   *resolv.Space
	objects map[domain.EntityID]*resolv.Object
}

// NewSpace строит пространство и добавляет в него статическую геометрию мира
func NewSpace(cfg Config, world *domain.World) *Space {
	if cfg.UnitScale <= 0 {
		cfg.UnitScale = 1
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = 16
	}
	cellsX := int(math.Ceil(cfg.Width*cfg.UnitScale)) / cfg.CellSize
	cellsY := int(math.Ceil(cfg.Height*cfg.UnitScale)) / cfg.CellSize

	s := &Space{
		cfg:     cfg,
		space:   resolv.NewSpace((cellsX+1)*cfg.CellSize, (cellsY+1)*cfg.CellSize, cfg.CellSize, cfg.CellSize),
		objects: make(map[domain.EntityID]*resolv.Object),
	}

	solids := 0
	if world != nil {
		solids = len(world.Solids)
		for _, solid := range world.Solids {
			x, y, w, h := s.toSpace(solid)
			s.space.Add(resolv.NewObject(x, y, w, h, tagSolid))
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "physics",
		"cells_x":   cellsX + 1,
		"cells_y":   cellsY + 1,
		"solids":    solids,
	}).Debug("Physics space created.")
	return s
}

// Attach создает объект сущности и выдает её телу интегратор
func (s *Space) Attach(e *domain.Entity) {
	if e.Body == nil {
		return
	}
	if _, exists := s.objects[e.ID]; exists {
		return
	}

	x, y, w, h := s.toSpace(e.Bounds())
	obj := resolv.NewObject(x, y, w, h, tagsFor(e)...)
	obj.Data = e
	s.space.Add(obj)
	s.objects[e.ID] = obj

	e.Body.Controller = &controller{space: s, entity: e, object: obj}
}

// Detach убирает объект сущности из пространства
func (s *Space) Detach(e *domain.Entity) {
	obj, ok := s.objects[e.ID]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.objects, e.ID)
	if e.Body != nil {
		e.Body.Controller = nil
	}
}

// Len - число объектов сущностей (без статики)
func (s *Space) Len() int {
	return len(s.objects)
}

func tagsFor(e *domain.Entity) []string {
	switch e.Tag {
	case domain.TagPlatform:
		return []string{tagPlatform}
	case domain.TagOneWayPlatform:
		return []string{tagOneWay}
	}
	if e.Body.Layer&(domain.LayerPlayer|domain.LayerMonster) != 0 {
		return []string{tagActor}
	}
	return nil
}

// toSpace переводит мировой AABB в прямоугольник пространства
func (s *Space) toSpace(b domain.AABB) (x, y, w, h float64) {
	k := s.cfg.UnitScale
	return (b.Min.X - s.cfg.Origin.X) * k,
		(b.Min.Y - s.cfg.Origin.Y) * k,
		b.Width() * k,
		b.Height() * k
}

// sync двигает объект в позицию сущности (её могли сдвинуть задачи или родитель)
func (s *Space) sync(e *domain.Entity, obj *resolv.Object) {
	obj.X, obj.Y, obj.W, obj.H = s.toSpace(e.Bounds())
	obj.Update()
}
