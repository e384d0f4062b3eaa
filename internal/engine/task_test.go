package engine

import (
	"testing"

	"platforms-server/internal/domain"
)

// countdownTask завершается после steps шагов
type countdownTask struct {
	owner   *domain.Entity
	steps   int
	calls   int
	aborted bool
	onStep  func()
}

func (t *countdownTask) Name() string          { return "countdown" }
func (t *countdownTask) Owner() *domain.Entity { return t.owner }

func (t *countdownTask) Step(_ *Simulation, _ float64) bool {
	t.calls++
	if t.onStep != nil {
		t.onStep()
		t.onStep = nil
	}
	return t.calls >= t.steps
}

func (t *countdownTask) Abort(*Simulation) { t.aborted = true }

func TestTaskRunner_StepAndComplete(t *testing.T) {
	r := NewTaskRunner()
	owner := &domain.Entity{ID: domain.PackEntityID(domain.KindPlayer, 1)}

	short := &countdownTask{owner: owner, steps: 1}
	long := &countdownTask{owner: owner, steps: 3}
	hShort := r.Spawn(short, 0)
	hLong := r.Spawn(long, 0)

	if got := r.Step(nil, 0.1); got != 1 {
		t.Fatalf("finished = %d, want 1", got)
	}
	if !hShort.Done() || hLong.Done() {
		t.Fatal("only the short task should be done")
	}
	if r.Len() != 1 || r.ActiveFor(owner, "countdown") != 1 {
		t.Errorf("Len = %d ActiveFor = %d, want 1", r.Len(), r.ActiveFor(owner, "countdown"))
	}

	r.Step(nil, 0.1)
	r.Step(nil, 0.1)
	if !hLong.Done() || r.Len() != 0 {
		t.Error("long task should finish on the third step")
	}
	if r.Started["countdown"] != 2 || r.Completed["countdown"] != 2 {
		t.Errorf("counters: started=%v completed=%v", r.Started, r.Completed)
	}
}

func TestTaskRunner_SpawnDuringStepRunsNextTick(t *testing.T) {
	r := NewTaskRunner()
	child := &countdownTask{steps: 1}
	parent := &countdownTask{steps: 1, onStep: func() { r.Spawn(child, 1) }}
	r.Spawn(parent, 0)

	r.Step(nil, 0.1)
	if child.calls != 0 {
		t.Fatal("task spawned during a step must not run in the same step")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want the child only", r.Len())
	}

	r.Step(nil, 0.1)
	if child.calls != 1 || r.Len() != 0 {
		t.Errorf("child calls = %d, Len = %d", child.calls, r.Len())
	}
}

func TestTaskRunner_Cancel(t *testing.T) {
	r := NewTaskRunner()
	a := &domain.Entity{ID: domain.PackEntityID(domain.KindMonster, 1)}
	b := &domain.Entity{ID: domain.PackEntityID(domain.KindMonster, 2)}

	ta := &countdownTask{owner: a, steps: 10}
	tb := &countdownTask{owner: b, steps: 10}
	ha := r.Spawn(ta, 0)
	r.Spawn(tb, 0)
	r.Spawn(&countdownTask{owner: a, steps: 10}, 0)

	r.Cancel(nil, ha)
	if !ha.Done() || !ha.Cancelled() || !ta.aborted {
		t.Fatal("cancel must mark the handle and call Abort")
	}
	r.Cancel(nil, ha) // повторная отмена - без эффекта

	if n := r.CancelOwner(nil, a); n != 1 {
		t.Errorf("CancelOwner = %d, want 1 (one already cancelled)", n)
	}
	r.Step(nil, 0.1)
	if ta.calls != 0 {
		t.Error("cancelled task must never step")
	}
	if r.Len() != 1 || tb.calls != 1 {
		t.Errorf("Len = %d, other owner calls = %d", r.Len(), tb.calls)
	}

	var nilHandle *TaskHandle
	if !nilHandle.Done() || nilHandle.Cancelled() {
		t.Error("nil handle is done and not cancelled")
	}
}

func TestTaskRunner_DebugDump(t *testing.T) {
	r := NewTaskRunner()
	owner := &domain.Entity{ID: domain.PackEntityID(domain.KindPlayer, 1), Name: "Hero"}
	r.Spawn(&countdownTask{owner: owner, steps: 5}, 7)

	dump := r.DebugDump()
	if len(dump) != 1 {
		t.Fatalf("dump = %v", dump)
	}
	if dump[0]["task"] != "countdown" || dump[0]["startTick"] != int64(7) || dump[0]["ownerName"] != "Hero" {
		t.Errorf("unexpected dump entry: %v", dump[0])
	}
}
