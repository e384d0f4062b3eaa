package systems

import (
	"os"
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// groundController - интегратор с бесконечным полом на высоте groundY
type groundController struct {
	e       *domain.Entity
	groundY float64
	moves   int
}

func (g *groundController) Move(d domain.Vec2, fastDrop bool) domain.CollisionFlags {
	g.moves++
	var flags domain.CollisionFlags
	p := g.e.Transform.Position.Add(d)
	if p.Y <= g.groundY {
		p.Y = g.groundY
		flags.Below = true
	}
	g.e.Transform.Position = p
	return flags
}

func newHumanoid(kind domain.EntityKind, pos domain.Vec2) *domain.Entity {
	e := &domain.Entity{
		Kind:      kind,
		Name:      kind.String(),
		Transform: &domain.TransformComponent{Position: pos, Scale: domain.Vec2{X: 1, Y: 1}},
		Body: &domain.BodyComponent{
			Size:            domain.Vec2{X: 0.8, Y: 1.6},
			GravityAffected: true,
			Collidable:      true,
		},
		Motor: &domain.MotorComponent{
			MoveSpeed:      5,
			JumpHeight:     2.5,
			TimeToJumpApex: 0.25,
			ClimbSpeed:     3,
		},
		Combat:      &domain.CombatComponent{},
		Stats:       &domain.StatsComponent{HP: 10, MaxHP: 10, Mass: 1, DamageMin: 1, DamageMax: 3, Destructible: true, DestructibleJumpMass: 1},
		Interaction: &domain.InteractionComponent{},
	}
	switch kind {
	case domain.KindPlayer:
		e.Body.Layer = domain.LayerPlayer
		e.Inventory = &domain.InventoryComponent{}
	case domain.KindMonster:
		e.Body.Layer = domain.LayerMonster
		e.AI = &domain.AIComponent{}
		domain.DefaultAITuning().Apply(e.AI)
	}
	e.Motor.Init()
	return e
}

func newItem(pos domain.Vec2, scale float64) *domain.Entity {
	e := &domain.Entity{
		Kind:      domain.KindItem,
		Name:      "crate",
		Tag:       domain.TagItem,
		Transform: &domain.TransformComponent{Position: pos, Scale: domain.Vec2{X: scale, Y: scale}},
		Body: &domain.BodyComponent{
			Size:            domain.Vec2{X: 1, Y: 1},
			GravityAffected: true,
			Collidable:      true,
			Layer:           domain.LayerItem,
		},
		Motor: &domain.MotorComponent{MoveSpeed: 3, JumpHeight: 1, TimeToJumpApex: 0.3},
		Item:  &domain.ItemComponent{Pickable: true, Pushable: true},
	}
	e.Motor.Init()
	return e
}
