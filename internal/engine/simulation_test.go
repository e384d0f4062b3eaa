package engine

import (
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/pkg/scene"
)

func TestSimulation_StepAndOnTick(t *testing.T) {
	sim := newTestSim(t, nil)

	calls := 0
	sim.OnTick = func(s *Simulation) {
		calls++
		if s.CurrentTick != int64(calls) {
			t.Errorf("OnTick saw tick %d on call %d", s.CurrentTick, calls)
		}
	}
	runFor(sim, 0.5)
	if calls != 30 || sim.CurrentTick != 30 {
		t.Errorf("calls = %d tick = %d, want 30", calls, sim.CurrentTick)
	}
	if sim.Time < 0.49 || sim.Time > 0.51 {
		t.Errorf("time = %v", sim.Time)
	}
}

func TestSimulation_CommandsAndRecording(t *testing.T) {
	sim := newTestSim(t, nil)
	player := sim.World.Player()

	submit(sim, player, domain.ActionInit, "")
	submit(sim, player, domain.ActionInput, `{"x":1,"y":0}`)
	sim.Step(sim.Config.TickDelta())

	if player.Body.Input.X <= 0 {
		t.Fatalf("input x = %v, want positive", player.Body.Input.X)
	}
	if len(sim.Logs) == 0 {
		t.Error("INIT should write a log line")
	}

	replay := sim.ReplaySnapshot()
	if len(replay.Actions) != 1 {
		t.Fatalf("recorded %d actions, want 1 (INIT is not recordable)", len(replay.Actions))
	}
	a := replay.Actions[0]
	if a.Tick != 0 || a.Action != domain.ActionInput || a.Token != player.ID {
		t.Errorf("unexpected record: %+v", a)
	}

	// Копия не разделяет слайс с симуляцией
	replay.Actions[0].Tick = 99
	if sim.Replay.Actions[0].Tick != 0 {
		t.Error("ReplaySnapshot must copy actions")
	}
}

func TestSimulation_RejectsUnknownActor(t *testing.T) {
	sim := newTestSim(t, nil)
	sim.Submit(SimCommand{Cmd: domain.InternalCommand{
		Action: domain.ActionAttack,
		Token:  domain.PackEntityID(domain.KindPlayer, 999),
	}})
	sim.Step(sim.Config.TickDelta())
	if len(sim.Replay.Actions) != 0 {
		t.Error("command for a missing entity must not be recorded")
	}
}

func TestSimulation_SubmitQueueFull(t *testing.T) {
	sim := newTestSim(t, nil)
	player := sim.World.Player()
	cmd := SimCommand{Cmd: domain.InternalCommand{Action: domain.ActionAttack, Token: player.ID}}

	for i := 0; i < cap(sim.CommandChan); i++ {
		if !sim.Submit(cmd) {
			t.Fatalf("submit #%d refused before the queue is full", i)
		}
	}
	if sim.Submit(cmd) {
		t.Error("submit into a full queue must fail")
	}
}

func TestSimulation_ReplayIsDeterministic(t *testing.T) {
	withMonster := func(b *scene.SceneBuilder) {
		b.Spawn("monster", domain.Vec2{X: 9, Y: 0})
	}

	live := newTestSim(t, withMonster)
	player := live.World.Player()
	submit(live, player, domain.ActionInput, `{"x":1,"y":0}`)
	runFor(live, 0.5)
	submit(live, player, domain.ActionJump, "")
	runFor(live, 0.5)
	submit(live, player, domain.ActionAttack, "")
	runFor(live, 0.5)
	submit(live, player, domain.ActionInput, `{"x":0,"y":0}`)
	runFor(live, 0.5)

	actions := live.ReplaySnapshot().Actions
	if len(actions) != 4 {
		t.Fatalf("recorded %d actions, want 4", len(actions))
	}

	b := scene.NewScene("test").
		WithSolid(domain.Vec2{X: -2, Y: -1}, domain.Vec2{X: 40, Y: 0}).
		Spawn("player", domain.Vec2{X: 2, Y: 0})
	withMonster(b)
	sc, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	replay := BuildSimulation("replay", sc, testConfig(), physicsConfig(), WithPlayback(actions))
	if replay.Recording {
		t.Error("playback must not record")
	}
	for replay.CurrentTick < live.CurrentTick {
		replay.Step(replay.Config.TickDelta())
	}
	if replay.PlaybackPending() != 0 {
		t.Fatalf("%d actions were not replayed", replay.PlaybackPending())
	}

	for _, e := range live.World.Entities() {
		other := replay.World.GetEntity(e.ID)
		if other == nil {
			t.Errorf("entity %v missing in replay", e.ID)
			continue
		}
		if e.Position() != other.Position() {
			t.Errorf("entity %v diverged: live %v, replay %v", e.ID, e.Position(), other.Position())
		}
	}
	if live.World.Count() != replay.World.Count() {
		t.Errorf("entity count: live %d, replay %d", live.World.Count(), replay.World.Count())
	}
}

func TestSimulation_BindController(t *testing.T) {
	sim := newTestSim(t, nil)
	player := sim.World.Player()

	e, err := sim.BindController("", "s1")
	if err != nil || e != player || player.ControllerID != "s1" {
		t.Fatalf("bind by empty token: e=%v err=%v", e, err)
	}
	player.Body.Input.X = 1
	sim.ReleaseController("s1")
	if player.ControllerID != "" || player.Body.Input.X != 0 {
		t.Error("release must clear the controller and the input")
	}

	if e, err := sim.BindController(player.ID.Token(), "s2"); err != nil || e != player {
		t.Errorf("bind by token: %v %v", e, err)
	}
	if _, err := sim.BindController("12345", "s3"); err == nil {
		t.Error("unknown token must fail")
	}
	if _, err := sim.BindController("nope", "s4"); err == nil {
		t.Error("bad token must fail")
	}
}
