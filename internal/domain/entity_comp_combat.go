package domain

// Claim забирает машину состояний под новое действие и возвращает токен владения.
// Предыдущий владелец теряет права: его Release и Owns вернут false.
func (c *CombatComponent) Claim(state CombatState) uint64 {
	c.claim++
	c.State = state
	return c.claim
}

// TryClaim забирает состояние только из Idle.
func (c *CombatComponent) TryClaim(state CombatState) (uint64, bool) {
	if c.State != StateIdle {
		return 0, false
	}
	return c.Claim(state), true
}

// Owns - токен все еще владеет состоянием
func (c *CombatComponent) Owns(token uint64) bool {
	return token != 0 && c.claim == token
}

// Release возвращает Idle, если токен все еще владеет состоянием
func (c *CombatComponent) Release(token uint64) bool {
	if !c.Owns(token) {
		return false
	}
	c.State = StateIdle
	return true
}
