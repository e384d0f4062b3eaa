package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"JUMP", ActionJump},
		{"jump", ActionJump},
		{"Attack", ActionAttack},
		{"INTERACT_HOLD", ActionInteractHold},
		{"interact_hold", ActionInteractHold},
		{"ROLL", ActionRoll},
		{"UNKNOWN_ACTION", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionInput, "INPUT"},
		{ActionAttack, "ATTACK"},
		{ActionInteractHold, "INTERACT_HOLD"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_Recordable(t *testing.T) {
	if ActionLogin.Recordable() || ActionInit.Recordable() {
		t.Error("session commands must not be recorded")
	}
	if !ActionJump.Recordable() || !ActionInput.Recordable() {
		t.Error("gameplay commands must be recorded")
	}
}
