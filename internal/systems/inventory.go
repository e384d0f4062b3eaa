package systems

import (
	"fmt"

	"platforms-server/internal/domain"
	"platforms-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// --- LOOT ---

// BeginLootPickup помечает добычу собранной и отключает ей физику.
// Повторный подбор той же добычи - ошибка.
func BeginLootPickup(collector, loot *domain.Entity) error {
	if collector.Inventory == nil {
		return fmt.Errorf("%s не может иметь инвентарь", collector.Name)
	}
	if loot.Loot == nil {
		return fmt.Errorf("%s - это не добыча", loot.Name)
	}
	if loot.Loot.Collected {
		return fmt.Errorf("%s уже подобрана", loot.Name)
	}

	loot.Loot.Collected = true
	if loot.Body != nil {
		loot.Body.Collidable = false
		loot.Body.GravityAffected = false
		loot.Body.Velocity = domain.Zero
		loot.Body.Input = domain.Zero
	}
	return nil
}

// StepLootPickup - один тик анимации: позиция тянется к точке над сборщиком,
// масштаб уходит в ноль со своей скоростью. Возвращает true, когда добыча долетела.
func StepLootPickup(collector, loot *domain.Entity, dt float64, tuning domain.LootTuning) bool {
	target := collector.Position().Add(domain.Up.Scale(collector.Height() * 0.5))

	pos := domain.LerpVec(loot.Position(), target, dt*tuning.PositionEase)
	loot.Transform.SetWorldPosition(pos)
	loot.Transform.Scale = domain.LerpVec(loot.Transform.Scale, domain.Zero, dt*tuning.ScaleEase)

	return pos.DistanceTo(target) <= tuning.Epsilon
}

// AddLootToInventory кладет добычу в инвентарь сборщика.
// Возвращает новое количество в записи.
func AddLootToInventory(collector, loot *domain.Entity) int {
	if collector.Inventory == nil || loot.Loot == nil {
		return 0
	}
	count := collector.Inventory.AddLoot(loot.Loot)

	logger.Log.WithFields(logrus.Fields{
		"component":    "inventory_system",
		"collector_id": collector.ID,
		"path":         loot.Loot.Path,
		"count":        count,
	}).Info("Loot added to inventory.")
	return count
}
