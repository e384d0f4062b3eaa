package systems

import (
	"testing"

	"platforms-server/internal/domain"
)

func TestPerceive(t *testing.T) {
	world := domain.NewWorld("ai")
	player := newHumanoid(domain.KindPlayer, domain.Vec2{X: 5})
	monster := newHumanoid(domain.KindMonster, domain.Vec2{})
	world.RegisterEntity(player)
	world.RegisterEntity(monster)
	rc := NewWorldRaycaster(world)

	if !Perceive(monster, player, rc) {
		t.Error("player in the open must be seen")
	}

	world.Solids = []domain.AABB{{Min: domain.Vec2{X: 2, Y: 0}, Max: domain.Vec2{X: 3, Y: 4}}}
	if Perceive(monster, player, rc) {
		t.Error("wall must hide the player")
	}

	world.Solids = nil
	player.Stats.IsDead = true
	if Perceive(monster, player, rc) {
		t.Error("dead player is not a target")
	}
}

func TestDecideMoveInput(t *testing.T) {
	tests := []struct {
		name    string
		aware   bool
		playerX float64
		want    float64
	}{
		{"unaware stands", false, 5, 0},
		{"chase right", true, 5, 1},
		{"chase left", true, -5, -1},
		{"inside dead zone", true, 0.8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monster := newHumanoid(domain.KindMonster, domain.Vec2{})
			player := newHumanoid(domain.KindPlayer, domain.Vec2{X: tt.playerX})
			monster.AI.Aware = tt.aware

			if got := DecideMoveInput(monster, player); got != tt.want {
				t.Errorf("input = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInEngageRange(t *testing.T) {
	monster := newHumanoid(domain.KindMonster, domain.Vec2{})
	player := newHumanoid(domain.KindPlayer, domain.Vec2{X: 1.4})
	if !InEngageRange(monster, player) {
		t.Error("1.4 is within 1.5")
	}
	player.Transform.Position.X = 1.6
	if InEngageRange(monster, player) {
		t.Error("1.6 is beyond 1.5")
	}
}

func TestFaceToward(t *testing.T) {
	monster := newHumanoid(domain.KindMonster, domain.Vec2{})
	player := newHumanoid(domain.KindPlayer, domain.Vec2{X: -3})

	FaceToward(monster, player)
	if monster.Facing() != -1 {
		t.Error("must face the player on the left")
	}

	player.Transform.Position.X = 0
	FaceToward(monster, player)
	if monster.Facing() != -1 {
		t.Error("target straight above keeps facing")
	}
}
