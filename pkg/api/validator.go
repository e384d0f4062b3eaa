package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return errors.New("input vector must be a number")
	}
	if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
		return errors.New("input vector out of range")
	}
	return nil
}

func (p JumpPayload) Validate() error {
	if p.Intensity != nil && (*p.Intensity <= 0 || math.IsNaN(*p.Intensity)) {
		return errors.New("jump intensity must be positive")
	}
	return nil
}
