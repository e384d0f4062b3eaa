// Package config загружает YAML-конфиг сервера.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"platforms-server/internal/domain"
	"platforms-server/internal/engine"
	"platforms-server/internal/physics"
	"platforms-server/pkg/scene"

	"gopkg.in/yaml.v3"
)

// EnvAddr перекрывает server.addr
const EnvAddr = "PLATFORMS_ADDR"

type Config struct {
	Server     ServerConfig               `yaml:"server"`
	Log        LogConfig                  `yaml:"log"`
	Sim        SimConfig                  `yaml:"sim"`
	Physics    physics.Config             `yaml:"physics"`
	Combat     domain.CombatTuning        `yaml:"combat"`
	Movement   domain.MovementTuning      `yaml:"movement"`
	AI         domain.AITuning            `yaml:"ai"`
	Loot       domain.LootTuning          `yaml:"loot"`
	Archetypes map[string]scene.Archetype `yaml:"archetypes"`
	Scene      scene.Layout               `yaml:"scene"`
	Storage    StorageConfig              `yaml:"storage"`
	Metrics    MetricsConfig              `yaml:"metrics"`
}

type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"` // маршруты /debug/*
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

type SimConfig struct {
	TickRate      int     `yaml:"tickRate"`
	Seed          int64   `yaml:"seed"` // 0 - случайный
	KillPlaneY    float64 `yaml:"killPlaneY"`
	SnapshotEvery int     `yaml:"snapshotEvery"`
}

type StorageConfig struct {
	ReplayDir   string `yaml:"replayDir"`   // пусто - реплеи не пишутся
	JournalPath string `yaml:"journalPath"` // пусто - журнал в памяти
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default - конфиг со значениями оригинальной игры и стартовой сценой
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", Debug: true},
		Log:    LogConfig{Level: "info", Format: "text"},
		Sim: SimConfig{
			TickRate:      60,
			KillPlaneY:    domain.DefaultMovementTuning().KillPlaneY,
			SnapshotEvery: 3,
		},
		Physics:    physics.DefaultConfig(),
		Combat:     domain.DefaultCombatTuning(),
		Movement:   domain.DefaultMovementTuning(),
		AI:         domain.DefaultAITuning(),
		Loot:       domain.DefaultLootTuning(),
		Archetypes: map[string]scene.Archetype{},
		Scene:      scene.DefaultLayout(),
		Storage:    StorageConfig{ReplayDir: "replays", JournalPath: "journal.db"},
		Metrics:    MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load читает файл поверх Default. Пустой path - только Default и окружение.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader декодирует YAML поверх Default и проверяет результат
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
}

// Validate собирает все ошибки сразу
func (c *Config) Validate() error {
	var errs []error

	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tickRate %d must be positive", c.Sim.TickRate))
	}
	if c.Sim.SnapshotEvery <= 0 {
		errs = append(errs, fmt.Errorf("sim.snapshotEvery %d must be positive", c.Sim.SnapshotEvery))
	}

	if c.Physics.Width <= 0 || c.Physics.Height <= 0 {
		errs = append(errs, fmt.Errorf("physics size %vx%v must be positive", c.Physics.Width, c.Physics.Height))
	}
	if c.Physics.UnitScale <= 0 {
		errs = append(errs, fmt.Errorf("physics.unitScale %v must be positive", c.Physics.UnitScale))
	}

	intervals := map[string]float64{
		"ai.visionInterval": c.AI.VisionInterval,
		"ai.moveInterval":   c.AI.MoveInterval,
		"ai.attackInterval": c.AI.AttackInterval,
	}
	for _, name := range []string{"ai.visionInterval", "ai.moveInterval", "ai.attackInterval"} {
		if intervals[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s %v must be positive", name, intervals[name]))
		}
	}

	if c.Combat.DecalsMax < c.Combat.DecalsMin {
		errs = append(errs, fmt.Errorf("combat.decalsMax %d is less than decalsMin %d", c.Combat.DecalsMax, c.Combat.DecalsMin))
	}
	if c.Combat.RollDuration <= 0 || c.Combat.HurtDuration <= 0 {
		errs = append(errs, errors.New("combat.rollDuration and combat.hurtDuration must be positive"))
	}

	for name, a := range c.Archetypes {
		prefix := fmt.Sprintf("archetypes.%s", name)
		if domain.ParseKind(a.Kind) == domain.KindUnknown {
			errs = append(errs, fmt.Errorf("%s.kind %q is invalid", prefix, a.Kind))
		}
		if a.Scale < 0 {
			errs = append(errs, fmt.Errorf("%s.scale %v: %w", prefix, a.Scale, domain.ErrZeroScale))
		}
		if a.Stats != nil && a.Stats.DamageMax < a.Stats.DamageMin {
			errs = append(errs, fmt.Errorf("%s.stats: damage range [%d, %d] is inverted", prefix, a.Stats.DamageMin, a.Stats.DamageMax))
		}
	}

	if c.Scene.Name == "" {
		errs = append(errs, errors.New("scene.name is required"))
	}
	for i, sp := range c.Scene.Spawns {
		if sp.Archetype == "" {
			errs = append(errs, fmt.Errorf("scene.spawns[%d].archetype is required", i))
		}
		if sp.Scale < 0 {
			errs = append(errs, fmt.Errorf("scene.spawns[%d].scale %v: %w", i, sp.Scale, domain.ErrZeroScale))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path is required when metrics are enabled"))
	}

	return errors.Join(errs...)
}

// Engine собирает параметры симуляции
func (c *Config) Engine() engine.Config {
	seed := c.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	movement := c.Movement
	movement.KillPlaneY = c.Sim.KillPlaneY

	return engine.Config{
		Seed:          seed,
		TickRate:      c.Sim.TickRate,
		SnapshotEvery: c.Sim.SnapshotEvery,
		Combat:        c.Combat,
		Movement:      movement,
		Loot:          c.Loot,
		AI:            c.AI,
	}
}

// SceneBuilder - сцена из конфига с архетипами и настройками ИИ
func (c *Config) SceneBuilder() *scene.SceneBuilder {
	return scene.FromLayout(c.Scene).
		WithArchetypes(c.Archetypes).
		WithAITuning(c.AI)
}
