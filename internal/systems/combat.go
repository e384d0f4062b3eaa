package systems

import (
	"math/rand"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"
	"platforms-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// RollDamage - целое в [min, max). При max <= min урон равен min.
func RollDamage(rng *rand.Rand, stats *domain.StatsComponent) int {
	if stats == nil {
		return 0
	}
	return utils.RangeInt(rng, stats.DamageMin, stats.DamageMax)
}

// AttackImpulse - собственный рывок атакующего вперед и вверх.
// В воде подброс меньше.
func AttackImpulse(attacker *domain.Entity, tuning domain.CombatTuning) domain.Vec2 {
	lift := tuning.AttackLift
	if attacker.Interaction != nil && attacker.Interaction.Submerged {
		lift = tuning.AttackLiftSubmerged
	}
	return domain.Vec2{X: attacker.Facing() * tuning.AttackPush, Y: lift}
}

// AttackKnockback - отбрасывание цели в направлении взгляда атакующего
func AttackKnockback(attacker *domain.Entity, tuning domain.CombatTuning) domain.Vec2 {
	return domain.Vec2{X: attacker.Facing() * tuning.AttackKnockback, Y: tuning.AttackTargetLift}
}

// FindAttackTarget пускает луч из груди по направлению взгляда.
// Возвращает цель, только если она разрушаема и жива.
func FindAttackTarget(attacker *domain.Entity, rc domain.Raycaster, tuning domain.CombatTuning) *domain.Entity {
	if rc == nil {
		return nil
	}
	dir := domain.Vec2{X: attacker.Facing()}
	hit, ok := rc.Raycast(attacker.ChestPoint(), dir, tuning.AttackRange, domain.MaskAttack, attacker)
	if !ok || hit.Entity == nil {
		return nil
	}

	target := hit.Entity
	if !target.Alive() || target.Stats == nil || !target.Stats.Destructible {
		logger.Log.WithFields(logrus.Fields{
			"component":   "combat_system",
			"attacker_id": attacker.ID,
			"hit_id":      target.ID,
		}).Debug("Attack ray hit a non-destructible entity.")
		return nil
	}
	return target
}

// CanStomp - прыжок сверху на цель: падаем достаточно быстро, цель по массе
// укладывается в наш бюджет и мы выше заданной доли ее роста.
func CanStomp(attacker, target *domain.Entity, tuning domain.CombatTuning) bool {
	if attacker == target || !attacker.Alive() || !target.Alive() {
		return false
	}
	if attacker.Body == nil || attacker.Stats == nil || target.Stats == nil {
		return false
	}
	if attacker.Body.Velocity.Y > -tuning.StompMinFallSpeed {
		return false
	}
	if !target.Stats.CanBeStompedBy(attacker.Stats.Mass) {
		return false
	}
	threshold := target.Position().Y + target.Height()*tuning.StompOverlap
	return attacker.Position().Y >= threshold
}

// StompKnockback - отбрасывание от атакующего к цели
func StompKnockback(attacker, target *domain.Entity, tuning domain.CombatTuning) domain.Vec2 {
	return target.Position().Sub(attacker.Position()).Normalized().Scale(tuning.StompKnockback)
}

// ApplyDamage наносит урон и пишет лог. Возвращает true, если цель умерла.
func ApplyDamage(attacker, target *domain.Entity, amount int) bool {
	if target.Stats == nil || target.Stats.IsDead {
		return false
	}

	hpBefore := target.Stats.HP
	died := target.Stats.TakeDamage(amount)

	fields := logrus.Fields{
		"component":   "combat_system",
		"target_id":   target.ID,
		"target_name": target.Name,
		"damage":      amount,
		"hp_before":   hpBefore,
		"hp_after":    target.Stats.HP,
		"target_died": died,
	}
	if attacker != nil {
		fields["attacker_id"] = attacker.ID
		fields["attacker_name"] = attacker.Name
	}
	logger.Log.WithFields(fields).Info("Attack resolved.")

	return died
}
