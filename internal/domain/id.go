package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Index)
type EntityID uint64

// Конфигурация битов
const (
	bitsIndex = 48
	bitsKind  = 8

	shiftKind = bitsIndex

	maskIndex = (1 << bitsIndex) - 1 // 0x0000FFFFFFFFFFFF
	maskKind  = (1 << bitsKind) - 1  // 0xFF
)

// NoEntity - нулевой ID, "ссылки нет".
const NoEntity EntityID = 0

// PackEntityID создает ID из вида сущности и порядкового номера
func PackEntityID(kind EntityKind, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// ParseEntityID разбирает десятичную строку (токен клиента).
func ParseEntityID(s string) (EntityID, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NoEntity, fmt.Errorf("parse entity id %q: %w", s, err)
	}
	return EntityID(val), nil
}

// Token - десятичная форма для клиентов и реплеев.
func (id EntityID) Token() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Token() + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: [kind:idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%d]", id.Kind(), id.Index())
}
