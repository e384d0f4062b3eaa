package systems

import (
	"testing"

	"platforms-server/internal/domain"
)

func TestTriggerTracker_Phases(t *testing.T) {
	player := newHumanoid(domain.KindPlayer, domain.Vec2{})
	player.ID = domain.PackEntityID(domain.KindPlayer, 1)
	crate := newItem(domain.Vec2{X: 0.5}, 1)
	crate.ID = domain.PackEntityID(domain.KindItem, 2)
	entities := []*domain.Entity{player, crate}

	tracker := NewTriggerTracker()

	events := tracker.Update(entities)
	if len(events) != 1 || events[0].Phase != TriggerEnter {
		t.Fatalf("expected enter, got %+v", events)
	}

	events = tracker.Update(entities)
	if len(events) != 1 || events[0].Phase != TriggerStay {
		t.Fatalf("expected stay, got %+v", events)
	}

	crate.Transform.Position.X = 5
	events = tracker.Update(entities)
	if len(events) != 1 || events[0].Phase != TriggerExit || events[0].Other != crate {
		t.Fatalf("expected exit, got %+v", events)
	}
	if tracker.Len() != 0 {
		t.Errorf("tracker should be empty, has %d", tracker.Len())
	}
}

func TestHandleTrigger_NearbyLifecycle(t *testing.T) {
	player := newHumanoid(domain.KindPlayer, domain.Vec2{})
	crate := newItem(domain.Vec2{}, 1)

	HandleTrigger(TriggerEvent{Self: player, Other: crate, Phase: TriggerEnter})
	if player.Nearby() != crate {
		t.Fatal("pickable item must become nearby on enter")
	}

	other := newItem(domain.Vec2{}, 1)
	other.Item.Pickable = false
	HandleTrigger(TriggerEvent{Self: player, Other: other, Phase: TriggerEnter})
	if player.Nearby() != crate {
		t.Error("non-pickable item must not replace nearby")
	}

	HandleTrigger(TriggerEvent{Self: player, Other: other, Phase: TriggerExit})
	if player.Nearby() != crate {
		t.Error("exit of another zone must not clear nearby")
	}

	HandleTrigger(TriggerEvent{Self: player, Other: crate, Phase: TriggerExit})
	if player.Nearby() != nil {
		t.Error("exit must clear nearby")
	}
}

func TestHandleTrigger_LadderWaterLoot(t *testing.T) {
	player := newHumanoid(domain.KindPlayer, domain.Vec2{})
	ladder := &domain.Entity{Kind: domain.KindItem, Tag: domain.TagLadder}
	water := &domain.Entity{Kind: domain.KindItem, Tag: domain.TagWater}
	coin := &domain.Entity{Kind: domain.KindLoot, Tag: domain.TagLoot, Loot: &domain.LootComponent{Path: "coin"}}

	HandleTrigger(TriggerEvent{Self: player, Other: ladder, Phase: TriggerEnter})
	if player.Interaction.Ladder != ladder {
		t.Error("ladder enter")
	}
	HandleTrigger(TriggerEvent{Self: player, Other: ladder, Phase: TriggerExit})
	if player.Interaction.Ladder != nil {
		t.Error("ladder exit")
	}

	HandleTrigger(TriggerEvent{Self: player, Other: water, Phase: TriggerStay})
	if !player.Interaction.Submerged {
		t.Error("water stay must submerge")
	}
	HandleTrigger(TriggerEvent{Self: player, Other: water, Phase: TriggerExit})
	if player.Interaction.Submerged {
		t.Error("water exit must surface")
	}

	if !HandleTrigger(TriggerEvent{Self: player, Other: coin, Phase: TriggerStay}).CollectLoot {
		t.Error("loot contact must request collection")
	}
	coin.Loot.Collected = true
	if HandleTrigger(TriggerEvent{Self: player, Other: coin, Phase: TriggerStay}).CollectLoot {
		t.Error("collected loot must not be requested twice")
	}

	monster := newHumanoid(domain.KindMonster, domain.Vec2{})
	coin.Loot.Collected = false
	if HandleTrigger(TriggerEvent{Self: monster, Other: coin, Phase: TriggerEnter}).CollectLoot {
		t.Error("entities without inventory do not collect")
	}
}
