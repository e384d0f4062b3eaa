package domain

// InvItem - запись инвентаря. Path - ключ идентичности.
type InvItem struct {
	Path         string `json:"path"`
	Count        int    `json:"count"`
	DisplayValue int    `json:"displayValue"`
	Icon         string `json:"icon"`
}

// InventoryComponent хранит добычу в порядке первого появления.
type InventoryComponent struct {
	Items []InvItem `json:"items"`
}

// AddLoot сливает добычу по Path: валюта добавляет номинал, остальное - 1.
// Возвращает итоговое количество в записи.
func (inv *InventoryComponent) AddLoot(loot *LootComponent) int {
	if inv == nil || loot == nil {
		return 0
	}

	amount := 1
	if loot.Currency {
		amount = loot.Value
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		if item.Path == loot.Path {
			item.Count += amount
			item.DisplayValue = loot.Value
			item.Icon = loot.Icon
			return item.Count
		}
	}

	inv.Items = append(inv.Items, InvItem{
		Path:         loot.Path,
		Count:        amount,
		DisplayValue: loot.Value,
		Icon:         loot.Icon,
	})
	return amount
}

// Count возвращает количество по Path (0, если записи нет).
func (inv *InventoryComponent) Count(path string) int {
	if inv == nil {
		return 0
	}
	for _, item := range inv.Items {
		if item.Path == path {
			return item.Count
		}
	}
	return 0
}
