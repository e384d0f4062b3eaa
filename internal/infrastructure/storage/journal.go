package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// MemoryJournal - путь журнала без файла
const MemoryJournal = ":memory:"

// journalBuffer - сколько событий ждут записи, прежде чем начнут отбрасываться
const journalBuffer = 4096

// JournalEntry - строка журнала
type JournalEntry struct {
	ID         int64           `json:"id"`
	Sim        string          `json:"sim"`
	Tick       int64           `json:"tick"`
	Type       string          `json:"type"`
	EntityID   domain.EntityID `json:"entityId"`
	OtherID    domain.EntityID `json:"otherId,omitempty"`
	Value      int             `json:"value,omitempty"`
	Text       string          `json:"text,omitempty"`
	RecordedAt string          `json:"recordedAt"`
}

type journalReq struct {
	entry JournalEntry
	done  chan struct{} // барьер Flush
}

// Journal пишет значимые события симуляции в sqlite из отдельной горутины,
// не задерживая тик.
type Journal struct {
	db *sql.DB

	ch   chan journalReq
	wg   sync.WaitGroup
	once sync.Once

	closed  atomic.Bool
	dropped atomic.Int64
}

// journaled - какие события попадают в журнал
var journaled = map[domain.EventType]bool{
	domain.EventDeath:            true,
	domain.EventInventoryChanged: true,
	domain.EventHurt:             true,
	domain.EventOpened:           true,
	domain.EventDoorEnter:        true,
}

func OpenJournal(path string) (*Journal, error) {
	if path == "" {
		path = MemoryJournal
	}
	if path != MemoryJournal {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Одно соединение: иначе каждая :memory: база будет своей
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initJournal(db, path != MemoryJournal); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal %q: %w", path, err)
	}

	j := &Journal{
		db: db,
		ch: make(chan journalReq, journalBuffer),
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.loop()
	}()

	logger.Log.WithFields(logrus.Fields{
		"component": "journal",
		"path":      path,
	}).Info("Event journal opened")
	return j, nil
}

func initJournal(db *sql.DB, onDisk bool) error {
	pragmas := []string{
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	if onDisk {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL;")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sim TEXT NOT NULL,
			tick INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			other_id INTEGER NOT NULL,
			value INTEGER NOT NULL,
			text TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_type_tick ON events(type, tick);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Sink возвращает подписчика событий симуляции sim
func (j *Journal) Sink(sim string) func(domain.Event) {
	return func(ev domain.Event) {
		j.Record(sim, ev)
	}
}

// Record ставит событие в очередь. Незначимые события и переполнение отбрасываются.
func (j *Journal) Record(sim string, ev domain.Event) {
	if j == nil || j.closed.Load() || !journaled[ev.Type] {
		return
	}
	entry := JournalEntry{
		Sim:        sim,
		Tick:       ev.Tick,
		Type:       ev.Type.String(),
		EntityID:   ev.EntityID,
		OtherID:    ev.OtherID,
		Value:      ev.Value,
		Text:       ev.Text,
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case j.ch <- journalReq{entry: entry}:
	default:
		j.dropped.Add(1)
	}
}

// Flush ждет, пока очередь до этого момента будет записана
func (j *Journal) Flush(ctx context.Context) error {
	if j == nil || j.closed.Load() {
		return nil
	}
	done := make(chan struct{})
	select {
	case j.ch <- journalReq{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped - сколько событий не поместилось в очередь
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

func (j *Journal) loop() {
	for r := range j.ch {
		if r.done != nil {
			close(r.done)
			continue
		}
		e := r.entry
		_, err := j.db.Exec(
			`INSERT INTO events(sim,tick,type,entity_id,other_id,value,text,recorded_at) VALUES(?,?,?,?,?,?,?,?)`,
			e.Sim, e.Tick, e.Type, int64(e.EntityID), int64(e.OtherID), e.Value, e.Text, e.RecordedAt,
		)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "journal",
				"type":      e.Type,
				"tick":      e.Tick,
			}).WithError(err).Warn("Failed to write journal entry")
		}
	}
}

// MaxRecent - верхняя граница выборки Recent
const MaxRecent = 1000

// Recent возвращает последние limit записей, новые первыми. eventType фильтрует по типу, если не пуст.
func (j *Journal) Recent(ctx context.Context, limit int, eventType string) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxRecent {
		limit = MaxRecent
	}
	query := `SELECT id,sim,tick,type,entity_id,other_id,value,text,recorded_at FROM events`
	args := []any{}
	if eventType != "" {
		query += ` WHERE type = ?`
		args = append(args, eventType)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JournalEntry, 0, limit)
	for rows.Next() {
		var e JournalEntry
		var entity, other int64
		if err := rows.Scan(&e.ID, &e.Sim, &e.Tick, &e.Type, &entity, &other, &e.Value, &e.Text, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.EntityID = domain.EntityID(entity)
		e.OtherID = domain.EntityID(other)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close дописывает очередь и закрывает базу
func (j *Journal) Close() error {
	var err error
	j.once.Do(func() {
		j.closed.Store(true)
		close(j.ch)
		j.wg.Wait()
		err = j.db.Close()
	})
	return err
}
