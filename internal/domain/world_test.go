package domain

import "testing"

func TestWorld_RegisterUnregister(t *testing.T) {
	world := NewWorld("test")

	a := &Entity{Kind: KindPlayer, Transform: &TransformComponent{Scale: Vec2{1, 1}}}
	b := &Entity{Kind: KindMonster, Transform: &TransformComponent{Scale: Vec2{1, 1}}}

	world.RegisterEntity(a)
	world.RegisterEntity(b)

	if a.ID == NoEntity || b.ID == NoEntity {
		t.Fatal("entities without ID must receive one on register")
	}
	if a.ID.Kind() != KindPlayer || b.ID.Kind() != KindMonster {
		t.Errorf("packed kind mismatch: %v %v", a.ID, b.ID)
	}
	if world.GetEntity(a.ID) != a {
		t.Error("GetEntity returned wrong entity")
	}
	if world.Player() != a {
		t.Error("Player() should return the registered player")
	}

	removed := world.UnregisterEntity(a.ID)
	if removed != a || !a.Destroyed {
		t.Error("unregister must return the entity and mark it destroyed")
	}
	if world.GetEntity(a.ID) != nil {
		t.Error("entity should be gone after unregister")
	}
	if world.Player() != nil {
		t.Error("no player expected after removal")
	}
	if world.Count() != 1 {
		t.Errorf("expected 1 entity left, got %d", world.Count())
	}
}

func TestWorld_EntitiesKeepsOrder(t *testing.T) {
	world := NewWorld("order")
	var ids []EntityID
	for i := 0; i < 5; i++ {
		e := &Entity{Kind: KindItem, Transform: &TransformComponent{Scale: Vec2{1, 1}}}
		world.RegisterEntity(e)
		ids = append(ids, e.ID)
	}
	world.UnregisterEntity(ids[1])

	got := world.Entities()
	want := []EntityID{ids[0], ids[2], ids[3], ids[4]}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: got %v want %v", i, got[i].ID, want[i])
		}
	}
}

func TestEntityID_Pack(t *testing.T) {
	id := PackEntityID(KindLoot, 12345)
	if id.Kind() != KindLoot {
		t.Errorf("Kind() = %v, want LOOT", id.Kind())
	}
	if id.Index() != 12345 {
		t.Errorf("Index() = %d, want 12345", id.Index())
	}

	parsed, err := ParseEntityID(id.Token())
	if err != nil {
		t.Fatalf("ParseEntityID: %v", err)
	}
	if parsed != id {
		t.Errorf("token round trip: got %v want %v", parsed, id)
	}

	if _, err := ParseEntityID("not-a-number"); err == nil {
		t.Error("expected error for garbage token")
	}
}
