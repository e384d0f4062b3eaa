package domain

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}

	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность
func (s *StatsComponent) Heal(amount int) {
	if s.IsDead {
		return // Не лечим трупы!
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
}

// CanBeStompedBy - бюджет массы для атаки прыжком сверху
func (s *StatsComponent) CanBeStompedBy(attackerMass float64) bool {
	return s.DestructibleJumpMass != 0 && s.DestructibleJumpMass <= attackerMass
}
