package network

import (
	"sync"

	"platforms-server/internal/domain"
	"platforms-server/pkg/api"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// subscriberBuffer - сколько сообщений ждет медленного клиента
const subscriberBuffer = 100

type subscriber struct {
	entity domain.EntityID
	ch     chan api.ServerResponse
}

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> подписчик
	subscribers map[string]*subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создает личный канал сессии. entity - кем управляет сессия (NoEntity у зрителя).
func (b *Broadcaster) Register(session string, entity domain.EntityID) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[session]; ok {
		close(old.ch)
	}

	sub := &subscriber{entity: entity, ch: make(chan api.ServerResponse, subscriberBuffer)}
	b.subscribers[session] = sub
	return sub.ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[session]; ok {
		close(sub.ch)
		delete(b.subscribers, session)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(session string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sub, ok := b.subscribers[session]
	if !ok {
		return false
	}
	return b.offer(session, sub, msg)
}

// Broadcast отправляет всем. personalize выставляет поля конкретной сессии (MyEntityID).
func (b *Broadcaster) Broadcast(msg api.ServerResponse, personalize func(msg *api.ServerResponse, entity domain.EntityID)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for session, sub := range b.subscribers {
		out := msg
		if personalize != nil {
			personalize(&out, sub.entity)
		}
		b.offer(session, sub, out)
	}
}

func (b *Broadcaster) offer(session string, sub *subscriber, msg api.ServerResponse) bool {
	select {
	case sub.ch <- msg:
		return true
	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "hub",
			"session":   session,
			"type":      msg.Type,
		}).Debug("Subscriber channel full, message dropped")
		return false
	}
}

// Sessions возвращает сессии, управляющие сущностью
func (b *Broadcaster) Sessions(entity domain.EntityID) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []string
	for session, sub := range b.subscribers {
		if sub.entity == entity {
			out = append(out, session)
		}
	}
	return out
}

// Entity возвращает сущность, которой управляет сессия
func (b *Broadcaster) Entity(session string) (domain.EntityID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sub, ok := b.subscribers[session]
	if !ok {
		return domain.NoEntity, false
	}
	return sub.entity, true
}

// HasSubscriber проверяет, управляется ли сущность кем-то
func (b *Broadcaster) HasSubscriber(entity domain.EntityID) bool {
	return len(b.Sessions(entity)) > 0
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
