package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Task - возобновляемое действие, растянутое на несколько тиков.
// Step вызывается раз в тик и возвращает true, когда задача завершилась.
type Task interface {
	Name() string
	Owner() *domain.Entity
	Step(sim *Simulation, dt float64) bool
}

// aborter - задачи, которым нужно прибраться при отмене
type aborter interface {
	Abort(sim *Simulation)
}

// TaskHandle - ссылка на запущенную задачу (для ожидания и отмены)
type TaskHandle struct {
	ID        uint64
	Task      Task
	StartTick int64

	done      bool
	cancelled bool
}

// Done - задача завершена или отменена
func (h *TaskHandle) Done() bool {
	return h == nil || h.done
}

func (h *TaskHandle) Cancelled() bool {
	return h != nil && h.cancelled
}

// TaskRunner шагает все активные задачи в порядке запуска.
// Задачи, порожденные во время шага, начинают работу со следующего тика.
type TaskRunner struct {
	tasks  []*TaskHandle
	nextID uint64

	// Счетчики для /debug/tasks и метрик
	Started   map[string]int
	Completed map[string]int
}

func NewTaskRunner() *TaskRunner {
	return &TaskRunner{
		tasks:     make([]*TaskHandle, 0),
		Started:   make(map[string]int),
		Completed: make(map[string]int),
	}
}

// Spawn регистрирует задачу
func (r *TaskRunner) Spawn(t Task, tick int64) *TaskHandle {
	r.nextID++
	h := &TaskHandle{ID: r.nextID, Task: t, StartTick: tick}
	r.tasks = append(r.tasks, h)
	r.Started[t.Name()]++

	owner := t.Owner()
	fields := logrus.Fields{"component": "task_runner", "task": t.Name(), "task_id": h.ID}
	if owner != nil {
		fields["owner_id"] = owner.ID
	}
	logger.Log.WithFields(fields).Debug("Task spawned.")
	return h
}

// Step продвигает все задачи на dt. Возвращает число завершившихся.
func (r *TaskRunner) Step(sim *Simulation, dt float64) int {
	n := len(r.tasks)
	finished := 0

	for i := 0; i < n; i++ {
		h := r.tasks[i]
		if h.done {
			continue
		}
		if h.Task.Step(sim, dt) {
			h.done = true
			r.Completed[h.Task.Name()]++
			finished++
		}
	}

	r.compact()
	return finished
}

// Cancel останавливает задачу. Задача сама не вызывается больше ни разу.
func (r *TaskRunner) Cancel(sim *Simulation, h *TaskHandle) {
	if h == nil || h.done {
		return
	}
	h.done = true
	h.cancelled = true
	if a, ok := h.Task.(aborter); ok {
		a.Abort(sim)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "task_runner",
		"task":      h.Task.Name(),
		"task_id":   h.ID,
	}).Debug("Task cancelled.")
}

// CancelOwner отменяет все задачи сущности (удаление из мира).
// Безопасно вызывать из Step: список чистится только в конце шага.
func (r *TaskRunner) CancelOwner(sim *Simulation, owner *domain.Entity) int {
	cancelled := 0
	for _, h := range r.tasks {
		if !h.done && h.Task.Owner() == owner {
			r.Cancel(sim, h)
			cancelled++
		}
	}
	return cancelled
}

// ActiveFor - число незавершенных задач сущности с данным именем ("" - любые)
func (r *TaskRunner) ActiveFor(owner *domain.Entity, name string) int {
	count := 0
	for _, h := range r.tasks {
		if h.done || h.Task.Owner() != owner {
			continue
		}
		if name == "" || h.Task.Name() == name {
			count++
		}
	}
	return count
}

func (r *TaskRunner) Len() int {
	count := 0
	for _, h := range r.tasks {
		if !h.done {
			count++
		}
	}
	return count
}

func (r *TaskRunner) compact() {
	kept := r.tasks[:0]
	for _, h := range r.tasks {
		if !h.done {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(r.tasks); i++ {
		r.tasks[i] = nil // избегаем утечки памяти
	}
	r.tasks = kept
}

// DebugDump возвращает снимок активных задач для отладки
func (r *TaskRunner) DebugDump() []map[string]interface{} {
	result := make([]map[string]interface{}, 0)

	for _, h := range r.tasks {
		if h.done {
			continue
		}
		item := map[string]interface{}{
			"id":        h.ID,
			"task":      h.Task.Name(),
			"startTick": h.StartTick,
		}
		if owner := h.Task.Owner(); owner != nil {
			item["owner"] = owner.ID
			item["ownerName"] = owner.Name
		}
		result = append(result, item)
	}
	return result
}
