package engine

import (
	"platforms-server/internal/domain"
	"platforms-server/pkg/api"
)

// BuildSnapshot создает общий снимок сцены. Персональные поля (MyEntityID)
// заполняет тот, кто рассылает.
func (s *Simulation) BuildSnapshot() api.ServerResponse {
	entities := s.World.Entities()
	views := make([]api.EntityView, 0, len(entities))
	for _, e := range entities {
		if e.Transform == nil {
			continue
		}
		views = append(views, toEntityView(e))
	}

	return api.ServerResponse{
		Type:     api.MsgUpdate,
		Tick:     s.CurrentTick,
		Scene:    s.World.Name,
		Entities: views,
	}
}

func toEntityView(e *domain.Entity) api.EntityView {
	pos := e.Position()
	scale := e.Transform.WorldScale()

	view := api.EntityView{
		ID:       e.ID.Token(),
		Kind:     e.Kind.String(),
		Name:     e.Name,
		Tag:      string(e.Tag),
		Position: api.Vec{X: pos.X, Y: pos.Y},
		Scale:    api.Vec{X: scale.X, Y: scale.Y},
		Grounded: e.Grounded(),
	}

	if e.Render != nil {
		view.Sprite = e.Render.Sprite
		view.Color = e.Render.Color
		view.Indicator = e.Render.Indicator
	}
	if e.Body != nil {
		view.Velocity = &api.Vec{X: e.Body.Velocity.X, Y: e.Body.Velocity.Y}
	}
	if e.Combat != nil {
		view.State = e.Combat.State.String()
	}
	if e.AI != nil {
		view.Aware = e.AI.Aware
	}
	if held := e.Held(); held != nil {
		view.HeldID = held.ID.Token()
	}
	if e.Item != nil && e.Item.Holder.Alive() {
		view.HolderID = e.Item.Holder.ID.Token()
	}

	if e.Stats != nil {
		view.Stats = &api.StatsView{
			HP:     e.Stats.HP,
			MaxHP:  e.Stats.MaxHP,
			IsDead: e.Stats.IsDead,
		}
	}

	if e.Inventory != nil {
		items := make([]api.InventoryItemView, 0, len(e.Inventory.Items))
		for _, it := range e.Inventory.Items {
			items = append(items, api.InventoryItemView{
				Path:         it.Path,
				Count:        it.Count,
				DisplayValue: it.DisplayValue,
				Icon:         it.Icon,
			})
		}
		view.Inventory = &api.InventoryView{Items: items}
	}

	if e.Openable != nil {
		view.Openable = &api.OpenableView{
			Opening:  e.Openable.Opening,
			Opened:   e.Openable.Opened,
			Progress: e.Openable.Progress,
		}
	}

	return view
}

// ToEventViews конвертирует события для клиента
func ToEventViews(events []domain.Event) []api.EventView {
	out := make([]api.EventView, 0, len(events))
	for _, ev := range events {
		v := api.EventView{
			Type:     ev.Type.String(),
			Tick:     ev.Tick,
			EntityID: ev.EntityID.Token(),
			Value:    ev.Value,
			Text:     ev.Text,
		}
		if ev.OtherID != domain.NoEntity {
			v.OtherID = ev.OtherID.Token()
		}
		out = append(out, v)
	}
	return out
}
