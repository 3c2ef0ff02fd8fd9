package boardconfig

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables for one board-generation run.
type Config struct {
	// Seed is the master seed all per-stage RNGs derive from. When the
	// config is loaded with LoadConfig/LoadConfigFromBytes, 0 is replaced
	// by a seed generated from the current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	Board  BoardCfg  `yaml:"board" json:"board"`
	Placer PlacerCfg `yaml:"placer" json:"placer"`
	Router RouterCfg `yaml:"router" json:"router"`
	Render RenderCfg `yaml:"render" json:"render"`
}

// BoardCfg controls board sizing defaults used by Stage 1 of the placer.
type BoardCfg struct {
	// DefaultWidthMM/DefaultHeightMM are the board dimensions used when
	// the schematic has no components (§4.2 default 100x100); otherwise
	// the grid seed stage computes the board size itself.
	DefaultWidthMM  float64 `yaml:"defaultWidthMM" json:"defaultWidthMM"`
	DefaultHeightMM float64 `yaml:"defaultHeightMM" json:"defaultHeightMM"`

	// MarginMM is the board-edge keep-out applied by the grid seed stage.
	MarginMM float64 `yaml:"marginMM" json:"marginMM"`

	// ComponentWidthMM/ComponentHeightMM is the default footprint size
	// used for any component lacking explicit geometry.
	ComponentWidthMM  float64 `yaml:"componentWidthMM" json:"componentWidthMM"`
	ComponentHeightMM float64 `yaml:"componentHeightMM" json:"componentHeightMM"`

	// GridCellMM is the Stage 1 deterministic grid cell size.
	GridCellMM float64 `yaml:"gridCellMM" json:"gridCellMM"`
}

// PlacerCfg controls the Stage 2 simulated-annealing refinement.
type PlacerCfg struct {
	// IterationBudget is the SA iteration count; 0 disables Stage 2
	// entirely, leaving the Stage 1 grid seed as the final layout.
	IterationBudget int `yaml:"iterationBudget" json:"iterationBudget"`

	// CoolingAlpha is the geometric cooling factor applied each iteration.
	CoolingAlpha float64 `yaml:"coolingAlpha" json:"coolingAlpha"`

	// TargetAcceptanceRatio drives the initial-temperature auto-tune.
	TargetAcceptanceRatio float64 `yaml:"targetAcceptanceRatio" json:"targetAcceptanceRatio"`

	// OverlapPenalty is lambda_ov, the per-mm^2 overlap cost weight.
	OverlapPenalty float64 `yaml:"overlapPenalty" json:"overlapPenalty"`

	// HintPenalty is lambda_h, the squared-distance-to-hint cost weight.
	HintPenalty float64 `yaml:"hintPenalty" json:"hintPenalty"`

	// HintFreezeEpsilonMM is the distance within which a hinted
	// component is frozen (excluded from SA moves).
	HintFreezeEpsilonMM float64 `yaml:"hintFreezeEpsilonMM" json:"hintFreezeEpsilonMM"`
}

// RouterCfg controls the A* grid router.
type RouterCfg struct {
	// ResolutionMM is r, the router grid's cell side length.
	ResolutionMM float64 `yaml:"resolutionMM" json:"resolutionMM"`

	// ObstaclePenalty is lambda_c, the additive cost of routing through
	// an obstacle or previously-routed cell.
	ObstaclePenalty float64 `yaml:"obstaclePenalty" json:"obstaclePenalty"`

	// NodeExpansionCapFactor scales W*H to bound A*'s node expansions
	// per terminal pair (default factor 10, per §4.3's sizing note).
	NodeExpansionCapFactor int `yaml:"nodeExpansionCapFactor" json:"nodeExpansionCapFactor"`
}

// RenderCfg controls SVG output styling.
type RenderCfg struct {
	// ShowRatsnest draws straight-line connectivity when no routes exist.
	ShowRatsnest bool `yaml:"showRatsnest" json:"showRatsnest"`
}

// DefaultConfig returns the spec's documented defaults (§4.2, §4.3).
func DefaultConfig() *Config {
	return &Config{
		Seed: 1,
		Board: BoardCfg{
			DefaultWidthMM:    100,
			DefaultHeightMM:   100,
			MarginMM:          20,
			ComponentWidthMM:  30,
			ComponentHeightMM: 20,
			GridCellMM:        50,
		},
		Placer: PlacerCfg{
			IterationBudget:       5000,
			CoolingAlpha:          0.995,
			TargetAcceptanceRatio: 0.8,
			OverlapPenalty:        50.0,
			HintPenalty:           1.0,
			HintFreezeEpsilonMM:   0.5,
		},
		Router: RouterCfg{
			ResolutionMM:           1.0,
			ObstaclePenalty:        5.0,
			NodeExpansionCapFactor: 10,
		},
		Render: RenderCfg{
			ShowRatsnest: true,
		},
	}
}

// LoadConfig reads and validates a YAML configuration file, filling in
// DefaultConfig's values for any zero field left unset by the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing board config YAML: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("board config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every configuration constraint, returning the first
// violation found.
func (c *Config) Validate() error {
	if c.Board.DefaultWidthMM <= 0 || c.Board.DefaultHeightMM <= 0 {
		return errors.New("board: default width/height must be positive")
	}
	if c.Board.MarginMM < 0 {
		return errors.New("board: margin must not be negative")
	}
	if c.Board.ComponentWidthMM <= 0 || c.Board.ComponentHeightMM <= 0 {
		return errors.New("board: component default size must be positive")
	}
	if c.Board.GridCellMM <= 0 {
		return errors.New("board: grid cell size must be positive")
	}
	if c.Placer.IterationBudget < 0 {
		return errors.New("placer: iteration budget must not be negative")
	}
	if c.Placer.CoolingAlpha <= 0 || c.Placer.CoolingAlpha >= 1 {
		return errors.New("placer: cooling alpha must be in (0, 1)")
	}
	if c.Placer.TargetAcceptanceRatio <= 0 || c.Placer.TargetAcceptanceRatio >= 1 {
		return errors.New("placer: target acceptance ratio must be in (0, 1)")
	}
	if c.Placer.OverlapPenalty < 0 || c.Placer.HintPenalty < 0 {
		return errors.New("placer: penalty weights must not be negative")
	}
	if c.Router.ResolutionMM <= 0 {
		return errors.New("router: resolution must be positive")
	}
	if c.Router.ObstaclePenalty < 1.0 {
		return errors.New("router: obstacle penalty must be at least the free-cell cost of 1.0")
	}
	if c.Router.NodeExpansionCapFactor <= 0 {
		return errors.New("router: node expansion cap factor must be positive")
	}
	return nil
}

// ToYAML renders c back to its canonical YAML form, used by Hash.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash returns the sha256 digest of c's canonical YAML encoding, the
// seed fed into pkg/boardrng's per-stage derivation.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed derives a seed from the current time for Seed == 0.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
