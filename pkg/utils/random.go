package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	mrand "math/rand"
)

// GenerateID создает простой уникальный ID сессии (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed превращает строку в детерминированный сид (для реплеев).
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF)
}

// RangeInt возвращает число из [min, max). Если max <= min, возвращает min.
func RangeInt(rng *mrand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min)
}

// RangeFloat возвращает число из [min, max).
func RangeFloat(rng *mrand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
