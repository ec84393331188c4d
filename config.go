package heroscene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Scene selects the composed scene: "hero" or "specials".
	Scene  string       `toml:"scene"`
	Seed   int64        `toml:"seed"`
	FPS    int          `toml:"fps"`
	Frames uint64       `toml:"frames"`
	Debug  bool         `toml:"debug"`
	Render RenderConfig `toml:"render"`
	Steam  SteamConfig  `toml:"steam"`
	Dust   DustConfig   `toml:"dust"`
}

const (
	SceneHero     = "hero"
	SceneSpecials = "specials"
)

type RenderConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	DPR        float32 `toml:"dpr"`
	Background string  `toml:"background"`
	OutDir     string  `toml:"out_dir"`
}

type SteamConfig struct {
	Count int     `toml:"count"`
	Step  float32 `toml:"step"`
	Wrap  string  `toml:"wrap"`
}

type DustConfig struct {
	Count int `toml:"count"`
}

func DefaultConfig() Config {
	hero := DefaultHeroOptions()
	return Config{
		Scene: SceneHero,
		Seed:  hero.Seed,
		FPS:   60,
		Render: RenderConfig{
			Width:      640,
			Height:     360,
			DPR:        2,
			Background: "#FAF7F2",
		},
		Steam: SteamConfig{
			Count: hero.SteamCount,
			Step:  hero.SteamStep,
			Wrap:  hero.SteamWrap.String(),
		},
		Dust: DustConfig{
			Count: hero.DustCount,
		},
	}
}

// ParseConfig decodes TOML over the defaults and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Scene != SceneHero && c.Scene != SceneSpecials {
		errs = append(errs, fmt.Errorf("scene must be %q or %q, got %q", SceneHero, SceneSpecials, c.Scene))
	}
	if c.FPS < 0 {
		errs = append(errs, fmt.Errorf("fps must not be negative, got %d", c.FPS))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.DPR <= 0 {
		errs = append(errs, fmt.Errorf("render dpr must be positive, got %g", c.Render.DPR))
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render background: %w", err))
	}
	if c.Steam.Count < 0 || c.Dust.Count < 0 {
		errs = append(errs, fmt.Errorf("particle counts must not be negative"))
	}
	if c.Steam.Step <= 0 || c.Steam.Step >= steamTop-steamBottom {
		errs = append(errs, fmt.Errorf("steam step must be in (0, %d), got %g", steamTop-steamBottom, c.Steam.Step))
	}
	if _, err := parseWrapMode(c.Steam.Wrap); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// HeroOptions extracts the scene settings. The config must be valid.
func (c Config) HeroOptions() HeroOptions {
	wrap, _ := parseWrapMode(c.Steam.Wrap)
	return HeroOptions{
		Seed:       c.Seed,
		SteamCount: c.Steam.Count,
		SteamStep:  c.Steam.Step,
		SteamWrap:  wrap,
		DustCount:  c.Dust.Count,
	}
}

func (c Config) SpecialsOptions() SpecialsOptions {
	return SpecialsOptions{Seed: c.Seed}
}

// SceneModule picks the scene module named by the config.
func (c Config) SceneModule() Module {
	if c.Scene == SceneSpecials {
		return SpecialsSceneModule{Options: c.SpecialsOptions()}
	}
	return HeroSceneModule{Options: c.HeroOptions()}
}

// ConfigModule keeps the running config as a resource so reloads can tell
// which keys changed.
type ConfigModule struct {
	Config Config
}

func (m ConfigModule) Install(app *App) {
	cfg := m.Config
	app.addResources(&cfg)
}

func parseWrapMode(s string) (WrapMode, error) {
	switch s {
	case "", "reset":
		return WrapReset, nil
	case "carry":
		return WrapCarry, nil
	}
	return WrapReset, fmt.Errorf("steam wrap must be \"reset\" or \"carry\", got %q", s)
}
