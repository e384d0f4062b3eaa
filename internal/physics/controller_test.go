package physics

import (
	"math"
	"os"
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newBody(kind domain.EntityKind, id uint64, pos domain.Vec2, layer domain.Layer) *domain.Entity {
	return &domain.Entity{
		ID:        domain.PackEntityID(kind, id),
		Kind:      kind,
		Transform: &domain.TransformComponent{Position: pos, Scale: domain.Vec2{X: 1, Y: 1}},
		Body: &domain.BodyComponent{
			Size:            domain.Vec2{X: 1, Y: 1},
			Collidable:      true,
			GravityAffected: true,
			Layer:           layer,
		},
	}
}

// floorWorld - пол толщиной 1 с верхом на y = 0
func floorWorld() *domain.World {
	w := domain.NewWorld("test")
	w.Solids = []domain.AABB{{Min: domain.Vec2{X: 0, Y: -1}, Max: domain.Vec2{X: 40, Y: 0}}}
	return w
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestController_LandsOnFloor(t *testing.T) {
	w := floorWorld()
	space := NewSpace(DefaultConfig(), w)

	e := newBody(domain.KindPlayer, 1, domain.Vec2{X: 5, Y: 0.5}, domain.LayerPlayer)
	space.Attach(e)
	if e.Body.Controller == nil {
		t.Fatal("Attach must install a controller")
	}

	flags := e.Body.Controller.Move(domain.Vec2{Y: -2}, false)
	if !flags.Below {
		t.Error("expected Below after falling onto the floor")
	}
	if got := e.Position().Y; !near(got, 0) {
		t.Errorf("feet y = %v, want 0", got)
	}

	// Горизонтально по полу - без касаний
	flags = e.Body.Controller.Move(domain.Vec2{X: 1}, false)
	if flags.Left || flags.Right || flags.Below {
		t.Errorf("unexpected flags walking: %+v", flags)
	}
	if got := e.Position().X; !near(got, 6) {
		t.Errorf("x = %v, want 6", got)
	}
}

func TestController_WallStopsHorizontal(t *testing.T) {
	w := floorWorld()
	w.Solids = append(w.Solids, domain.AABB{Min: domain.Vec2{X: 8, Y: 0}, Max: domain.Vec2{X: 9, Y: 4}})
	space := NewSpace(DefaultConfig(), w)

	e := newBody(domain.KindPlayer, 1, domain.Vec2{X: 6, Y: 0}, domain.LayerPlayer)
	space.Attach(e)

	flags := e.Body.Controller.Move(domain.Vec2{X: 3}, false)
	if !flags.Right {
		t.Error("expected Right contact")
	}
	// Правый край тела (x + 0.5) упирается в стену на x = 8
	if got := e.Position().X; !near(got, 7.5) {
		t.Errorf("x = %v, want 7.5", got)
	}
}

func TestController_OneWayPlatform(t *testing.T) {
	w := floorWorld()
	space := NewSpace(DefaultConfig(), w)

	platform := newBody(domain.KindZone, 9, domain.Vec2{X: 5, Y: 2}, 0)
	platform.Tag = domain.TagOneWayPlatform
	platform.Body.Size = domain.Vec2{X: 4, Y: 0.5}
	space.Attach(platform)

	t.Run("lands from above", func(t *testing.T) {
		e := newBody(domain.KindPlayer, 1, domain.Vec2{X: 5, Y: 3}, domain.LayerPlayer)
		space.Attach(e)
		defer space.Detach(e)

		flags := e.Body.Controller.Move(domain.Vec2{Y: -1}, false)
		if !flags.Below || !near(e.Position().Y, 2.5) {
			t.Errorf("flags=%+v y=%v, want landing at 2.5", flags, e.Position().Y)
		}
	})

	t.Run("fast drop passes through", func(t *testing.T) {
		e := newBody(domain.KindPlayer, 2, domain.Vec2{X: 5, Y: 2.5}, domain.LayerPlayer)
		space.Attach(e)
		defer space.Detach(e)

		flags := e.Body.Controller.Move(domain.Vec2{Y: -1}, true)
		if flags.Below || !near(e.Position().Y, 1.5) {
			t.Errorf("flags=%+v y=%v, want to fall to 1.5", flags, e.Position().Y)
		}
	})

	t.Run("jumps through from below", func(t *testing.T) {
		e := newBody(domain.KindPlayer, 3, domain.Vec2{X: 5, Y: 0.5}, domain.LayerPlayer)
		space.Attach(e)
		defer space.Detach(e)

		flags := e.Body.Controller.Move(domain.Vec2{Y: 2}, false)
		if flags.Above || !near(e.Position().Y, 2.5) {
			t.Errorf("flags=%+v y=%v, want to pass to 2.5", flags, e.Position().Y)
		}
	})
}

func TestController_ReportsActorTarget(t *testing.T) {
	w := floorWorld()
	space := NewSpace(DefaultConfig(), w)

	monster := newBody(domain.KindMonster, 2, domain.Vec2{X: 5, Y: 0}, domain.LayerMonster)
	space.Attach(monster)

	player := newBody(domain.KindPlayer, 1, domain.Vec2{X: 5, Y: 1.2}, domain.LayerPlayer)
	space.Attach(player)

	flags := player.Body.Controller.Move(domain.Vec2{Y: -0.5}, false)
	if flags.Target != monster {
		t.Fatalf("Target = %v, want the monster", flags.Target)
	}
	// Актеры не блокируют друг друга
	if !near(player.Position().Y, 0.7) {
		t.Errorf("y = %v, want 0.7", player.Position().Y)
	}
}

func TestSpace_Detach(t *testing.T) {
	space := NewSpace(DefaultConfig(), floorWorld())
	e := newBody(domain.KindPlayer, 1, domain.Vec2{X: 5, Y: 0}, domain.LayerPlayer)

	space.Attach(e)
	space.Attach(e)
	if space.Len() != 1 {
		t.Fatalf("Len = %d, want 1", space.Len())
	}

	space.Detach(e)
	if space.Len() != 0 || e.Body.Controller != nil {
		t.Error("Detach must remove the object and the controller")
	}
}
