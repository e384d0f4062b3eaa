package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"platforms-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if _, err := cfg.SceneBuilder().Build(); err != nil {
		t.Fatalf("default scene does not build: %v", err)
	}
}

func TestLoadFromReader(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Sim.TickRate != 60 {
					t.Errorf("tickRate = %d", cfg.Sim.TickRate)
				}
			},
		},
		{
			name: "overrides sections",
			yaml: `
sim:
  tickRate: 30
  seed: 42
  killPlaneY: -10
combat:
  rollDuration: 0.5
archetypes:
  orc:
    kind: MONSTER
    name: Орк
    size: {x: 1, y: 2}
    hostile: true
    stats: {hp: 8, damageMin: 2, damageMax: 4}
`,
			check: func(t *testing.T, cfg *Config) {
				ec := cfg.Engine()
				if ec.TickRate != 30 || ec.Seed != 42 {
					t.Errorf("engine config = %+v", ec)
				}
				if ec.Movement.KillPlaneY != -10 {
					t.Errorf("killPlaneY = %v", ec.Movement.KillPlaneY)
				}
				if ec.Combat.RollDuration != 0.5 || ec.Combat.HurtDuration != 0.5 {
					t.Errorf("combat not merged with defaults: %+v", ec.Combat)
				}
				if _, ok := cfg.Archetypes["orc"]; !ok {
					t.Error("custom archetype lost")
				}
			},
		},
		{
			name:    "unknown field",
			yaml:    "sim:\n  tickrate: 30\n",
			wantErr: "field tickrate not found",
		},
		{
			name:    "non-positive interval",
			yaml:    "ai:\n  moveInterval: 0\n",
			wantErr: "ai.moveInterval",
		},
		{
			name:    "inverted damage",
			yaml:    "archetypes:\n  bad:\n    kind: MONSTER\n    stats: {damageMin: 5, damageMax: 1}\n",
			wantErr: "inverted",
		},
		{
			name:    "negative scale",
			yaml:    "archetypes:\n  bad:\n    kind: ITEM\n    scale: -1\n",
			wantErr: "non-zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromReader(strings.NewReader(tt.yaml))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	t.Setenv(EnvAddr, ":7777")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("env override ignored: %q", cfg.Server.Addr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file must fail")
	}
}
