// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Cloth     ClothConfig     `yaml:"cloth"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Tear      TearConfig      `yaml:"tear"`
	Regen     RegenConfig     `yaml:"regen"`
	Scar      ScarConfig      `yaml:"scar"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	Camera    CameraConfig    `yaml:"camera"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Splatter  SplatterConfig  `yaml:"splatter"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// Attractor is a grid coordinate around which particles get pinned.
type Attractor struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ClothConfig describes the particle grid built at setup.
type ClothConfig struct {
	Width           int         `yaml:"width"`   // cells across; particles = width+1
	Height          int         `yaml:"height"`  // cells down; particles = height+1
	Spacing         float64     `yaml:"spacing"` // base spacing in world units
	Damping         float64     `yaml:"damping"`
	Stiffness       float64     `yaml:"stiffness"` // structural constraint stiffness
	Taper           float64     `yaml:"taper"`     // horizontal widening toward the bottom row
	OffsetY         float64     `yaml:"offset_y"`
	AttractorRadius float64     `yaml:"attractor_radius"` // in grid cells
	Attractors      []Attractor `yaml:"attractors"`
}

// PhysicsConfig holds integration and relaxation parameters.
type PhysicsConfig struct {
	DT         float64    `yaml:"dt"` // seconds per frame tick
	Gravity    [3]float64 `yaml:"gravity"`
	Iterations int        `yaml:"iterations"`
	Epsilon    float64    `yaml:"epsilon"` // constraint lengths below this skip correction
}

// TearConfig holds tear detector parameters.
type TearConfig struct {
	Radius    float64 `yaml:"radius"`
	Increment float64 `yaml:"increment"` // tear counter step per torn constraint
}

// RegenConfig holds regeneration scheduler parameters.
type RegenConfig struct {
	IntervalMin   time.Duration `yaml:"interval_min"`
	IntervalMax   time.Duration `yaml:"interval_max"`
	CooldownMin   time.Duration `yaml:"cooldown_min"`
	CooldownMax   time.Duration `yaml:"cooldown_max"`
	BatchMin      int           `yaml:"batch_min"`
	BatchMax      int           `yaml:"batch_max"`
	StretchFactor float64       `yaml:"stretch_factor"` // stretch bound = spacing * this
	RestMin       float64       `yaml:"rest_min"`       // new rest = spacing * [min, max]
	RestMax       float64       `yaml:"rest_max"`
	ScarChance    float64       `yaml:"scar_chance"` // red palette probability, remainder infected
	JitterMin     float64       `yaml:"jitter_min"`
	JitterMax     float64       `yaml:"jitter_max"`
}

// ScarConfig holds scar growth parameters.
type ScarConfig struct {
	MaxConstraints int     `yaml:"max_constraints"`
	QuerySize      float64 `yaml:"query_size"`
	WideQuerySize  float64 `yaml:"wide_query_size"`
	MinNeighbors   int     `yaml:"min_neighbors"`
	ClustersMin    int     `yaml:"clusters_min"`
	ClustersMax    int     `yaml:"clusters_max"`
	PartnerChance  float64 `yaml:"partner_chance"`
	LinkFactor     float64 `yaml:"link_factor"` // max anchor-partner distance = spacing * this
	FilamentsMin   int     `yaml:"filaments_min"`
	FilamentsMax   int     `yaml:"filaments_max"`
	RadiusMin      float64 `yaml:"radius_min"`
	RadiusMax      float64 `yaml:"radius_max"`
	ZJitter        float64 `yaml:"z_jitter"`
	StiffnessMin   float64 `yaml:"stiffness_min"`
	StiffnessMax   float64 `yaml:"stiffness_max"`
	LoopChance     float64 `yaml:"loop_chance"`
}

// Bounds is an axis-aligned box with (X, Y) at its top-left corner.
type Bounds struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// SpatialConfig holds quadtree parameters.
type SpatialConfig struct {
	Capacity    int    `yaml:"capacity"`
	MaxDepth    int    `yaml:"max_depth"`
	FrameBounds Bounds `yaml:"frame_bounds"`
	RegenBounds Bounds `yaml:"regen_bounds"`
}

// CameraConfig holds the perspective camera used to turn the pointer into a ray.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Up       [3]float64 `yaml:"up"`
	FovY     float64    `yaml:"fovy"` // vertical field of view in degrees
}

// FeedbackConfig holds environment feedback parameters.
type FeedbackConfig struct {
	BaseIntensity      float64 `yaml:"base_intensity"`
	FlickerProbability float64 `yaml:"flicker_probability"` // per unit of tear count
	FlickerGap         float64 `yaml:"flicker_gap"`         // random part of check gap, divided by count
	FlickerMinGap      float64 `yaml:"flicker_min_gap"`     // fixed part of check gap, divided by count
	FlickerMin         float64 `yaml:"flicker_min"`         // seconds
	FlickerMax         float64 `yaml:"flicker_max"`
}

// SplatterConfig holds blood decal parameters.
type SplatterConfig struct {
	MaxDecals     int     `yaml:"max_decals"`
	DarkenSeconds float64 `yaml:"darken_seconds"`
	RoomHalfWidth float64 `yaml:"room_half_width"`
	FloorY        float64 `yaml:"floor_y"`
	CeilingY      float64 `yaml:"ceiling_y"`
	WallMinY      float64 `yaml:"wall_min_y"`
	WallMaxY      float64 `yaml:"wall_max_y"`
	Spread        float64 `yaml:"spread"` // placement range across a surface, centred on zero
	Bump          float64 `yaml:"bump"`   // offset off the surface toward the room
	MinSize       float64 `yaml:"min_size"`
	MaxSize       float64 `yaml:"max_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	FadeSeconds         float64 `yaml:"fade_seconds"` // age at which a segment reaches its final colour
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticleCount int           // (width+1)*(height+1)
	Structural    int           // grid-adjacency constraint count
	StretchBound  float64       // Cloth.Spacing * Regen.StretchFactor
	MaxLink       float64       // Cloth.Spacing * Scar.LinkFactor
	Aspect        float64       // Screen.Width / Screen.Height
	TickDuration  time.Duration // Physics.DT as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// validate rejects settings the simulation cannot be built from.
func (c *Config) validate() error {
	switch {
	case c.Cloth.Width < 1 || c.Cloth.Height < 1:
		return fmt.Errorf("cloth grid must be at least 1x1, got %dx%d", c.Cloth.Width, c.Cloth.Height)
	case c.Cloth.Spacing <= 0:
		return fmt.Errorf("cloth spacing must be positive, got %v", c.Cloth.Spacing)
	case c.Spatial.Capacity < 1:
		return fmt.Errorf("spatial capacity must be positive, got %d", c.Spatial.Capacity)
	case c.Regen.IntervalMin <= 0 || c.Regen.IntervalMax < c.Regen.IntervalMin:
		return fmt.Errorf("invalid regen interval window [%v, %v]", c.Regen.IntervalMin, c.Regen.IntervalMax)
	case c.Regen.CooldownMax < c.Regen.CooldownMin:
		return fmt.Errorf("invalid regen cooldown window [%v, %v]", c.Regen.CooldownMin, c.Regen.CooldownMax)
	case c.Regen.BatchMin < 1 || c.Regen.BatchMax < c.Regen.BatchMin:
		return fmt.Errorf("invalid regen batch window [%d, %d]", c.Regen.BatchMin, c.Regen.BatchMax)
	case c.Scar.ClustersMax < c.Scar.ClustersMin || c.Scar.FilamentsMax < c.Scar.FilamentsMin:
		return fmt.Errorf("invalid scar cluster/filament windows")
	case c.Scar.MaxConstraints < structuralCount(c.Cloth):
		return fmt.Errorf("scar max_constraints %d is below the %d structural constraints",
			c.Scar.MaxConstraints, structuralCount(c.Cloth))
	}
	return nil
}

// structuralCount returns the number of grid-adjacency constraints.
func structuralCount(cc ClothConfig) int {
	return cc.Width*(cc.Height+1) + (cc.Width+1)*cc.Height
}

// ComputeDerived calculates values derived from loaded config.
// Callers that edit a Config in place must call it again.
func (c *Config) ComputeDerived() {
	c.Derived.ParticleCount = (c.Cloth.Width + 1) * (c.Cloth.Height + 1)
	c.Derived.Structural = structuralCount(c.Cloth)
	c.Derived.StretchBound = c.Cloth.Spacing * c.Regen.StretchFactor
	c.Derived.MaxLink = c.Cloth.Spacing * c.Scar.LinkFactor
	c.Derived.TickDuration = time.Duration(c.Physics.DT * float64(time.Second))

	c.Derived.Aspect = 1
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	}

	if c.Spatial.MaxDepth <= 0 {
		c.Spatial.MaxDepth = 16
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
