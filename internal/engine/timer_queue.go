package engine

import (
	"container/heap"

	"platforms-server/internal/domain"
)

// LoopKind - одна из трех петель агента
type LoopKind uint8

const (
	LoopVision LoopKind = iota
	LoopMove
	LoopAttack
)

func (k LoopKind) String() string {
	switch k {
	case LoopVision:
		return "vision"
	case LoopMove:
		return "move"
	case LoopAttack:
		return "attack"
	}
	return "unknown"
}

// TimerItem обертка для элемента очереди таймеров
type TimerItem struct {
	Agent  *domain.Entity // Владелец петли
	Loop   LoopKind
	FireAt float64 // Время срабатывания в секундах симуляции. Чем меньше, тем раньше.
	Seq    uint64  // Порядок постановки: при равном FireAt раньше тот, кто встал раньше
	Index  int     // Индекс в куче (нужен для update), -1 вне кучи

	// Parked - петля атаки ждет завершения запущенной атаки
	Parked *TaskHandle
}

// TimerQueue реализует heap.Interface и хранит TimerItems
type TimerQueue []*TimerItem

func (pq TimerQueue) Len() int { return len(pq) }

func (pq TimerQueue) Less(i, j int) bool {
	// MinHeap по времени, затем по порядку постановки (детерминизм реплеев)
	if pq[i].FireAt != pq[j].FireAt {
		return pq[i].FireAt < pq[j].FireAt
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TimerQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TimerQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TimerItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TimerQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет время срабатывания элемента в очереди
func (pq *TimerQueue) Update(item *TimerItem, fireAt float64) {
	item.FireAt = fireAt
	heap.Fix(pq, item.Index)
}
