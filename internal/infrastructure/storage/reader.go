package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"platforms-server/internal/domain"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidReplay = errors.New("invalid replay")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadReplay(path)
}

// LoadReplay читает файл реплея без сервиса (режим -replay)
func LoadReplay(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return readJSONL(dec)
}

func readJSONL(r io.Reader) (*domain.ReplaySession, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	// 1. Заголовок
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrInvalidReplay)
	}
	var header ReplayFileHeader
	if err := json.Unmarshal(sc.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidReplay, err)
	}
	if header.Magic != MagicHeader {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidReplay, header.Magic)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	session := &domain.ReplaySession{
		Scene:     header.Scene,
		Seed:      header.Seed,
		TickRate:  header.TickRate,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, header.ActionCount),
	}

	// 2. Действия
	for sc.Scan() {
		var line actionLine
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			return nil, fmt.Errorf("action #%d: %w", len(session.Actions), err)
		}
		action := domain.ParseAction(line.Action)
		if action == domain.ActionUnknown {
			return nil, fmt.Errorf("action #%d: %w: %q", len(session.Actions), domain.ErrUnknownCommand, line.Action)
		}
		token, err := domain.ParseEntityID(line.Token)
		if err != nil {
			return nil, fmt.Errorf("action #%d: %w", len(session.Actions), err)
		}
		session.Actions = append(session.Actions, domain.ReplayAction{
			Tick:    line.Tick,
			Token:   token,
			Action:  action,
			Payload: line.Payload,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(session.Actions) != header.ActionCount {
		return nil, fmt.Errorf("%w: truncated, %d of %d actions", ErrInvalidReplay, len(session.Actions), header.ActionCount)
	}
	return session, nil
}
