package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"platforms-server/internal/domain"

	"github.com/klauspost/compress/zstd"
)

const (
	MagicHeader string = `PFRP`
	Version1    int    = 1
	// ReplayExt - реплей это JSONL внутри zstd
	ReplayExt = ".jsonl.zst"
)

// ReplayFileHeader - первая строка файла
type ReplayFileHeader struct {
	Magic       string `json:"magic"`
	Version     int    `json:"version"`
	Scene       string `json:"scene"`
	Seed        int64  `json:"seed"`
	TickRate    int    `json:"tickRate"`
	Timestamp   int64  `json:"timestamp"`
	ActionCount int    `json:"actionCount"`
}

// actionLine - строка действия. Команда пишется строкой, чтобы файл читался глазами.
type actionLine struct {
	Tick    int64           `json:"tick"`
	Token   string          `json:"token"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay dir %q: %w", dir, err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию и возвращает путь файла
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d%s", session.Seed, session.Timestamp, ReplayExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", err
	}
	if err := writeJSONL(enc, session); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return path, f.Sync()
}

func writeJSONL(w io.Writer, s *domain.ReplaySession) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	// 1. Заголовок
	header := ReplayFileHeader{
		Magic:       MagicHeader,
		Version:     Version1,
		Scene:       s.Scene,
		Seed:        s.Seed,
		TickRate:    s.TickRate,
		Timestamp:   s.Timestamp,
		ActionCount: len(s.Actions),
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Действия, по одному в строке
	for _, act := range s.Actions {
		line := actionLine{
			Tick:   act.Tick,
			Token:  act.Token.Token(),
			Action: act.Action.String(),
		}
		if len(act.Payload) > 0 {
			line.Payload = act.Payload
		}
		if err := enc.Encode(&line); err != nil {
			return fmt.Errorf("failed to write action at tick %d: %w", act.Tick, err)
		}
	}

	return bw.Flush()
}
