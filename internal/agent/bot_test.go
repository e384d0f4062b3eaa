package agent

import (
	"encoding/json"
	"os"
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var (
	selfID    = domain.PackEntityID(domain.KindPlayer, 1)
	monsterID = domain.PackEntityID(domain.KindMonster, 1)
)

func newTestBot() *Bot {
	b := &Bot{Session: "bot_test", Tuning: domain.DefaultAITuning()}
	b.me = selfID
	return b
}

func view(id domain.EntityID, x float64, facing float64) api.EntityView {
	return api.EntityView{
		ID:       id.Token(),
		Kind:     id.Kind().String(),
		Position: api.Vec{X: x},
		Scale:    api.Vec{X: facing, Y: 1},
		State:    domain.StateIdle.String(),
		Grounded: true,
		Stats:    &api.StatsView{HP: 10, MaxHP: 10},
	}
}

func snapshot(views ...api.EntityView) api.ServerResponse {
	return api.ServerResponse{Type: api.MsgUpdate, MyEntityID: selfID.Token(), Entities: views}
}

func actions(cmds []api.ClientCommand) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Action)
	}
	return out
}

func inputX(t *testing.T, cmd api.ClientCommand) float64 {
	t.Helper()
	var p api.InputPayload
	if err := json.Unmarshal(cmd.Payload, &p); err != nil {
		t.Fatalf("bad input payload: %v", err)
	}
	return p.X
}

func TestDecide_WalksTowardMonster(t *testing.T) {
	b := newTestBot()

	cmds := b.Decide(snapshot(view(selfID, 0, 1), view(monsterID, 6, -1)))
	if len(cmds) != 1 || cmds[0].Action != "INPUT" {
		t.Fatalf("got %v, want [INPUT]", actions(cmds))
	}
	if x := inputX(t, cmds[0]); x != 1 {
		t.Errorf("input x = %v, want 1", x)
	}

	// Тот же ввод повторно не отправляется
	cmds = b.Decide(snapshot(view(selfID, 0.5, 1), view(monsterID, 6, -1)))
	if len(cmds) != 0 {
		t.Errorf("repeated input sent: %v", actions(cmds))
	}
}

func TestDecide_AttacksInRange(t *testing.T) {
	b := newTestBot()

	t.Run("facing target", func(t *testing.T) {
		cmds := b.Decide(snapshot(view(selfID, 0, 1), view(monsterID, 1, -1)))
		got := actions(cmds)
		if len(got) != 1 || got[0] != "ATTACK" {
			t.Errorf("got %v, want [ATTACK]", got)
		}
	})

	t.Run("turns around first", func(t *testing.T) {
		cmds := b.Decide(snapshot(view(selfID, 0, 1), view(monsterID, -1, 1)))
		got := actions(cmds)
		if len(got) != 2 || got[0] != "INPUT" || got[1] != "ATTACK" {
			t.Fatalf("got %v, want [INPUT ATTACK]", got)
		}
		if x := inputX(t, cmds[0]); x != -1 {
			t.Errorf("input x = %v, want -1", x)
		}
	})

	t.Run("busy does not attack", func(t *testing.T) {
		self := view(selfID, 0, -1)
		self.State = domain.StateAttack.String()
		for _, a := range actions(b.Decide(snapshot(self, view(monsterID, -1, 1)))) {
			if a == "ATTACK" {
				t.Error("attack while busy")
			}
		}
	})
}

func TestDecide_JumpsWhenStuck(t *testing.T) {
	b := newTestBot()
	state := snapshot(view(selfID, 0, 1), view(monsterID, 8, -1))

	jumped := false
	for i := 0; i < stuckUpdates+1; i++ {
		for _, a := range actions(b.Decide(state)) {
			if a == "JUMP" {
				jumped = true
			}
		}
	}
	if !jumped {
		t.Error("bot pressing into a wall should jump")
	}
}

func TestDecide_IdleCases(t *testing.T) {
	t.Run("no monsters stops", func(t *testing.T) {
		b := newTestBot()
		b.lastInput = 1
		cmds := b.Decide(snapshot(view(selfID, 0, 1)))
		if len(cmds) != 1 || inputX(t, cmds[0]) != 0 {
			t.Errorf("got %v, want stop input", actions(cmds))
		}
	})

	t.Run("dead monster ignored", func(t *testing.T) {
		b := newTestBot()
		dead := view(monsterID, 1, -1)
		dead.Stats.IsDead = true
		if cmds := b.Decide(snapshot(view(selfID, 0, 1), dead)); len(cmds) != 0 {
			t.Errorf("got %v, want nothing", actions(cmds))
		}
	})

	t.Run("dead self", func(t *testing.T) {
		b := newTestBot()
		self := view(selfID, 0, 1)
		self.Stats.IsDead = true
		if cmds := b.Decide(snapshot(self, view(monsterID, 1, -1))); cmds != nil {
			t.Errorf("dead bot acted: %v", actions(cmds))
		}
	})

	t.Run("self missing", func(t *testing.T) {
		b := newTestBot()
		if cmds := b.Decide(snapshot(view(monsterID, 1, -1))); cmds != nil {
			t.Errorf("got %v", actions(cmds))
		}
	})
}
