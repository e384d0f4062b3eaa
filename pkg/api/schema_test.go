package api

import (
	"encoding/json"
	"testing"
)

func TestPayloadSchemas_Validate(t *testing.T) {
	schemas, err := NewPayloadSchemas()
	if err != nil {
		t.Fatalf("NewPayloadSchemas: %v", err)
	}

	tests := []struct {
		name    string
		action  string
		payload string
		wantErr bool
	}{
		{"input ok", "INPUT", `{"x":1,"y":-0.5}`, false},
		{"input lowercase action", "input", `{"x":0,"y":0}`, false},
		{"input missing y", "INPUT", `{"x":1}`, true},
		{"input out of range", "INPUT", `{"x":2,"y":0}`, true},
		{"input wrong type", "INPUT", `{"x":"left","y":0}`, true},
		{"input extra field", "INPUT", `{"x":0,"y":0,"z":1}`, true},
		{"jump empty", "JUMP", ``, false},
		{"jump null", "JUMP", `null`, false},
		{"jump explicit", "JUMP", `{"fastDrop":true,"intensity":1.25}`, false},
		{"jump bad flag", "JUMP", `{"fastDrop":"yes"}`, true},
		{"attack has no schema", "ATTACK", `{"anything":1}`, false},
		{"broken json", "INPUT", `{"x":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.Validate(tt.action, json.RawMessage(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%s, %s) error = %v, wantErr %v", tt.action, tt.payload, err, tt.wantErr)
			}
		})
	}
}

func TestPayloadSchemas_Document(t *testing.T) {
	schemas, err := NewPayloadSchemas()
	if err != nil {
		t.Fatalf("NewPayloadSchemas: %v", err)
	}

	if got := schemas.Actions(); len(got) != 2 || got[0] != "INPUT" || got[1] != "JUMP" {
		t.Fatalf("Actions() = %v", got)
	}

	doc, ok := schemas.Document("input")
	if !ok {
		t.Fatal("expected schema for INPUT")
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := parsed["properties"].(map[string]interface{})
	if !ok || props["x"] == nil || props["y"] == nil {
		t.Errorf("schema properties = %v", parsed["properties"])
	}

	if _, ok := schemas.Document("ROLL"); ok {
		t.Error("ROLL has no payload and must have no schema")
	}
}

func TestValidators(t *testing.T) {
	neg := -1.0
	one := 1.0

	tests := []struct {
		name    string
		v       Validator
		wantErr bool
	}{
		{"input ok", InputPayload{X: -1, Y: 1}, false},
		{"input too big", InputPayload{X: 1.5}, true},
		{"jump default", JumpPayload{}, false},
		{"jump positive", JumpPayload{Intensity: &one}, false},
		{"jump negative", JumpPayload{Intensity: &neg}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.v.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
