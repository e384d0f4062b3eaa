package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"platforms-server/internal/domain"
	"platforms-server/pkg/api"
)

type fakeReplayStore struct {
	saved []*domain.ReplaySession
}

func (f *fakeReplayStore) Save(s *domain.ReplaySession) (string, error) {
	f.saved = append(f.saved, s)
	return "replay.jsonl.zst", nil
}

type fakeCommandMetrics struct {
	statuses map[string]int
	sessions int
}

func (f *fakeCommandMetrics) RecordCommand(_, status string) { f.statuses[status]++ }
func (f *fakeCommandMetrics) SessionOpened()                 { f.sessions++ }
func (f *fakeCommandMetrics) SessionClosed()                 { f.sessions-- }

func newTestService(t *testing.T, opts ...ServiceOption) *GameService {
	t.Helper()
	svc, err := NewService(newTestSim(t, nil), opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

// drain забирает все сообщения без блокировки
func drain(ch <-chan api.ServerResponse) []api.ServerResponse {
	var out []api.ServerResponse
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestService_LoginSendsSnapshot(t *testing.T) {
	svc := newTestService(t)
	player := svc.Sim.World.Player()

	ch, id, err := svc.Login("s1", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id != player.ID || player.ControllerID != "s1" {
		t.Fatalf("bound to %v, want the player", id)
	}

	msgs := drain(ch)
	if len(msgs) != 1 || msgs[0].Type != api.MsgUpdate {
		t.Fatalf("got %d messages, want one snapshot", len(msgs))
	}
	if msgs[0].MyEntityID != player.ID.Token() || len(msgs[0].Entities) == 0 {
		t.Errorf("snapshot: my=%q entities=%d", msgs[0].MyEntityID, len(msgs[0].Entities))
	}

	if _, _, err := svc.Login("s2", "424242"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("unknown token: err = %v", err)
	}
}

func TestService_ProcessCommand(t *testing.T) {
	metrics := &fakeCommandMetrics{statuses: map[string]int{}}
	svc := newTestService(t, WithCommandMetrics(metrics))
	player := svc.Sim.World.Player()

	if err := svc.ProcessCommand("ghost", api.ClientCommand{Action: "ATTACK"}); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("without login: err = %v", err)
	}

	if _, _, err := svc.Login("s1", ""); err != nil {
		t.Fatal(err)
	}
	if metrics.sessions != 1 {
		t.Errorf("sessions = %d", metrics.sessions)
	}

	tests := []struct {
		name    string
		cmd     api.ClientCommand
		wantErr error
	}{
		{"unknown action", api.ClientCommand{Action: "FLY"}, domain.ErrUnknownCommand},
		{"login is not a command", api.ClientCommand{Action: "LOGIN"}, domain.ErrUnknownCommand},
		{"payload out of range", api.ClientCommand{Action: "INPUT", Payload: json.RawMessage(`{"x":3,"y":0}`)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ProcessCommand("s1", tt.cmd)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Токен в команде игнорируется: актер - сущность сессии
	cmd := api.ClientCommand{Token: "1", Action: "INPUT", Payload: json.RawMessage(`{"x":1,"y":0}`)}
	if err := svc.ProcessCommand("s1", cmd); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
	svc.Sim.Step(svc.Sim.Config.TickDelta())
	if player.Body.Input.X <= 0 {
		t.Errorf("input x = %v, want positive", player.Body.Input.X)
	}
	if metrics.statuses["accepted"] != 1 || metrics.statuses["invalid"] != 4 {
		t.Errorf("statuses = %v", metrics.statuses)
	}
}

func TestService_QueueFull(t *testing.T) {
	svc := newTestService(t)
	if _, _, err := svc.Login("s1", ""); err != nil {
		t.Fatal(err)
	}
	player := svc.Sim.World.Player()
	for svc.Sim.Submit(SimCommand{Cmd: domain.InternalCommand{Action: domain.ActionAttack, Token: player.ID}}) {
	}
	if err := svc.ProcessCommand("s1", api.ClientCommand{Action: "ATTACK"}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("err = %v, want ErrQueueFull", err)
	}
}

func TestService_PublishesEventsAndUpdates(t *testing.T) {
	svc := newTestService(t)
	ch, id, err := svc.Login("s1", "")
	if err != nil {
		t.Fatal(err)
	}
	drain(ch)

	svc.Sim.Step(svc.Sim.Config.TickDelta())
	msgs := drain(ch)

	var sawEvent, sawUpdate bool
	for _, m := range msgs {
		switch m.Type {
		case api.MsgEvent:
			sawEvent = len(m.Events) > 0
		case api.MsgUpdate:
			sawUpdate = true
			if m.MyEntityID != id.Token() {
				t.Errorf("update not personalized: %q", m.MyEntityID)
			}
			if len(m.Logs) == 0 {
				t.Error("INIT log should be delivered with the update")
			}
		}
	}
	if !sawEvent || !sawUpdate {
		t.Errorf("event=%v update=%v, messages=%d", sawEvent, sawUpdate, len(msgs))
	}
	if len(svc.Sim.Events) != 0 {
		t.Error("events must be drained after publishing")
	}
}

func TestService_LogoutAndReplay(t *testing.T) {
	store := &fakeReplayStore{}
	svc := newTestService(t, WithReplayStore(store))

	if path, err := svc.SaveReplay(); err != nil || path != "" || len(store.saved) != 0 {
		t.Fatalf("empty session must not be saved: %q %v", path, err)
	}

	ch, _, err := svc.Login("s1", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.ProcessCommand("s1", api.ClientCommand{Action: "JUMP"}); err != nil {
		t.Fatal(err)
	}
	svc.Sim.Step(svc.Sim.Config.TickDelta())

	path, err := svc.SaveReplay()
	if err != nil || path == "" {
		t.Fatalf("save: %q %v", path, err)
	}
	if got := store.saved[0]; len(got.Actions) != 1 || got.Actions[0].Action != domain.ActionJump {
		t.Errorf("saved actions = %+v", got.Actions)
	}

	svc.Logout("s1")
	drain(ch)
	if _, ok := <-ch; ok {
		t.Error("channel must be closed after logout")
	}
	if svc.Sim.World.Player().ControllerID != "" || svc.Hub.SubscriberCount() != 0 {
		t.Error("logout must release the entity and the subscription")
	}
	svc.Logout("s1") // повторный выход - без эффекта
}

func TestService_EventSink(t *testing.T) {
	var got []domain.Event
	svc := newTestService(t, WithEventSink(func(ev domain.Event) { got = append(got, ev) }))
	player := svc.Sim.World.Player()

	svc.Sim.Hurt(player, nil, 1, domain.Vec2{})
	if len(got) != 1 || got[0].Type != domain.EventHurt || got[0].EntityID != player.ID {
		t.Errorf("sink got %+v", got)
	}
}
