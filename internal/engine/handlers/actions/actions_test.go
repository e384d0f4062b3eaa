package actions

import (
	"encoding/json"
	"os"
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine/handlers"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeCommands запоминает, какая команда была вызвана
type fakeCommands struct {
	calls     []string
	input     domain.Vec2
	fastDrop  bool
	intensity float64
}

func (f *fakeCommands) SetInput(_ *domain.Entity, v domain.Vec2) bool {
	f.calls = append(f.calls, "input")
	f.input = v
	return true
}

func (f *fakeCommands) SetJump(_ *domain.Entity, fastDrop bool, intensity float64) bool {
	f.calls = append(f.calls, "jump")
	f.fastDrop = fastDrop
	f.intensity = intensity
	return true
}

func (f *fakeCommands) SetAttack(*domain.Entity) bool {
	f.calls = append(f.calls, "attack")
	return true
}

func (f *fakeCommands) SetRoll(*domain.Entity) bool {
	f.calls = append(f.calls, "roll")
	return true
}

func (f *fakeCommands) Throw(*domain.Entity) bool {
	f.calls = append(f.calls, "throw")
	return true
}

func (f *fakeCommands) SetInteract(*domain.Entity) bool {
	f.calls = append(f.calls, "interact")
	return true
}

func (f *fakeCommands) SetInteractHold(*domain.Entity) bool {
	f.calls = append(f.calls, "interact_hold")
	return false
}

func newActor() *domain.Entity {
	return &domain.Entity{
		ID:          domain.PackEntityID(domain.KindPlayer, 1),
		Kind:        domain.KindPlayer,
		Name:        "Hero",
		Transform:   &domain.TransformComponent{Scale: domain.Vec2{X: 1, Y: 1}},
		Body:        &domain.BodyComponent{Size: domain.Vec2{X: 1, Y: 1}},
		Combat:      &domain.CombatComponent{},
		Interaction: &domain.InteractionComponent{},
	}
}

func TestHandleAttack_ButtonMapping(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *domain.Entity)
		want  string
	}{
		{"plain attack", func(e *domain.Entity) {}, "attack"},
		{"input down rolls", func(e *domain.Entity) { e.Body.Input.Y = -1 }, "roll"},
		{"held item is thrown", func(e *domain.Entity) {
			item := &domain.Entity{Kind: domain.KindItem, Item: &domain.ItemComponent{Pickable: true, Holder: e}}
			e.Interaction.Held = item
			e.Body.Input.Y = -1
		}, "throw"},
		{"busy attacking", func(e *domain.Entity) { e.Combat.Claim(domain.StateAttack) }, ""},
		{"hurt", func(e *domain.Entity) { e.Combat.Claim(domain.StateHurt) }, ""},
		{"rolling still attacks", func(e *domain.Entity) { e.Combat.Claim(domain.StateRoll) }, "attack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := newActor()
			tt.setup(actor)
			cmds := &fakeCommands{}

			res, err := HandleAttack(handlers.Context{Actor: actor, Commands: cmds})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.want == "" {
				if len(cmds.calls) != 0 || res.Accepted {
					t.Errorf("expected no command, got %v", cmds.calls)
				}
				return
			}
			if len(cmds.calls) != 1 || cmds.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", cmds.calls, tt.want)
			}
		})
	}
}

func TestHandleJump_DerivesButtonParameters(t *testing.T) {
	tests := []struct {
		name          string
		inputY        float64
		payload       string
		wantFastDrop  bool
		wantIntensity float64
	}{
		{"neutral", 0, ``, false, 1},
		{"up", 1, ``, false, 1.25},
		{"down", -1, `null`, true, 1},
		{"explicit overrides input", 1, `{"fastDrop":true,"intensity":2}`, true, 2},
	}

	handler := handlers.WithPayload(HandleJump)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := newActor()
			actor.Body.Input.Y = tt.inputY
			cmds := &fakeCommands{}

			res, err := handler(handlers.Context{Actor: actor, Commands: cmds}, json.RawMessage(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Accepted {
				t.Fatal("jump should be accepted")
			}
			if cmds.fastDrop != tt.wantFastDrop || cmds.intensity != tt.wantIntensity {
				t.Errorf("got fastDrop=%v intensity=%v, want %v %v",
					cmds.fastDrop, cmds.intensity, tt.wantFastDrop, tt.wantIntensity)
			}
		})
	}
}

func TestHandleInput_ValidatesPayload(t *testing.T) {
	handler := handlers.WithPayload(HandleInput)
	actor := newActor()
	cmds := &fakeCommands{}
	ctx := handlers.Context{Actor: actor, Commands: cmds}

	if _, err := handler(ctx, json.RawMessage(`{"x":0.5,"y":-1}`)); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if cmds.input != (domain.Vec2{X: 0.5, Y: -1}) {
		t.Errorf("input = %+v", cmds.input)
	}

	if _, err := handler(ctx, json.RawMessage(`{"x":3,"y":0}`)); err == nil {
		t.Error("out of range input should fail validation")
	}
	if _, err := handler(ctx, json.RawMessage(`{"x":`)); err == nil {
		t.Error("broken json should fail")
	}
	if len(cmds.calls) != 1 {
		t.Errorf("rejected payloads must not reach the simulation, calls = %v", cmds.calls)
	}

	// Validator реализован на значении
	var _ api.Validator = api.InputPayload{}
}

func TestHandleInteract(t *testing.T) {
	actor := newActor()
	cmds := &fakeCommands{}
	ctx := handlers.Context{Actor: actor, World: domain.NewWorld("test"), Commands: cmds}

	res, _ := HandleInteract(ctx)
	if !res.Accepted || cmds.calls[0] != "interact" {
		t.Errorf("interact: res=%+v calls=%v", res, cmds.calls)
	}

	res, _ = HandleInteractHold(ctx)
	if res.Accepted || res.Msg != "" {
		t.Errorf("refused hold must be silent: %+v", res)
	}

	res, _ = HandleInit(ctx)
	if res.Msg == "" || res.MsgType != "INFO" {
		t.Errorf("init: %+v", res)
	}
}
