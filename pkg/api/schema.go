package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	reflectschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadTypes - действия, у которых есть тело. Остальные payload игнорируют.
var payloadTypes = map[string]reflect.Type{
	"INPUT": reflect.TypeOf(InputPayload{}),
	"JUMP":  reflect.TypeOf(JumpPayload{}),
}

// PayloadSchemas - JSON Schema для тел команд: генерируется из Go-структур
// и компилируется валидатором один раз при старте.
type PayloadSchemas struct {
	documents map[string][]byte
	compiled  map[string]*jsonschema.Schema
}

func NewPayloadSchemas() (*PayloadSchemas, error) {
	reflector := reflectschema.Reflector{DoNotReference: true}
	compiler := jsonschema.NewCompiler()

	s := &PayloadSchemas{
		documents: make(map[string][]byte, len(payloadTypes)),
		compiled:  make(map[string]*jsonschema.Schema, len(payloadTypes)),
	}

	for action, typ := range payloadTypes {
		doc := reflector.ReflectFromType(typ)
		if doc == nil {
			return nil, fmt.Errorf("reflect schema for %s", action)
		}
		doc.ID = ""
		doc.Title = strings.ToLower(action) + " payload"

		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal schema for %s: %w", action, err)
		}
		url := "mem://payloads/" + strings.ToLower(action) + ".json"
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema for %s: %w", action, err)
		}
		compiled, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", action, err)
		}
		s.documents[action] = data
		s.compiled[action] = compiled
	}
	return s, nil
}

// Validate проверяет тело команды. Пустое тело эквивалентно {}.
func (s *PayloadSchemas) Validate(action string, raw json.RawMessage) error {
	schema, ok := s.compiled[strings.ToUpper(action)]
	if !ok {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("invalid payload format: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}

// Document возвращает сгенерированную схему действия (для /debug/schema)
func (s *PayloadSchemas) Document(action string) ([]byte, bool) {
	doc, ok := s.documents[strings.ToUpper(action)]
	return doc, ok
}

// Actions - действия со схемами, по алфавиту
func (s *PayloadSchemas) Actions() []string {
	out := make([]string, 0, len(s.documents))
	for action := range s.documents {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}
