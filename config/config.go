package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/filter"
	"github.com/swdee/go-schlemmer/spring"
	"github.com/swdee/go-schlemmer/tracker"
	"github.com/swdee/go-schlemmer/trail"
	"go.uber.org/multierr"
)

// Config is the tunable configuration of a visualizer.  Every field is read
// once per frame so changes take effect on the next frame.
type Config struct {
	// SmoothingFactor is the EMA weight of the new keypoint position, 1
	// disables smoothing
	SmoothingFactor float64      `json:"smoothingFactor"`
	Trail           trail.Policy `json:"trail"`
	// Springs draws sprung curves instead of straight sticks
	Springs   bool          `json:"springs"`
	Spring    spring.Params `json:"spring"`
	CurveMode spring.Mode   `json:"curveMode"`
	// Region is the polygon poses must sit inside when RegionEnabled
	Region        filter.Region `json:"region"`
	RegionEnabled bool          `json:"regionEnabled"`
	RegionRule    filter.Rule   `json:"regionRule"`
	// RegionMargin grows the region outward when positive and shrinks it
	// when negative
	RegionMargin float64 `json:"regionMargin"`
	// CalibrationScale multiplies the nose to ankle distance
	CalibrationScale float64 `json:"calibrationScale"`
	// AutoCalibrate calibrates from the first usable pose while
	// uncalibrated
	AutoCalibrate    bool         `json:"autoCalibrate"`
	Identity         tracker.Mode `json:"identity"`
	MaxTrackDistance float64      `json:"maxTrackDistance"`
	MaxMissed        int          `json:"maxMissed"`
	HeadEllipse      bool         `json:"headEllipse"`
	ShowKeyPoints    bool         `json:"showKeyPoints"`
	StrokeWidth      float64      `json:"strokeWidth"`
	// FPS is the target frame rate of the render loop
	FPS int `json:"fps"`
}

// DefaultConfig returns the configuration used by the installation
func DefaultConfig() Config {
	return Config{
		SmoothingFactor:  0.5,
		Trail:            trail.DecayingTrail(5, 30),
		Springs:          true,
		Spring:           spring.DefaultParams(),
		CurveMode:        spring.TwoPoint,
		RegionRule:       filter.QuarterOfAll,
		CalibrationScale: schlemmer.DefaultCalibrationScale,
		AutoCalibrate:    true,
		Identity:         tracker.Positional,
		MaxTrackDistance: 150,
		MaxMissed:        10,
		HeadEllipse:      true,
		StrokeWidth:      4,
		FPS:              30,
	}
}

// Clone returns a copy of the config sharing no memory with c
func (c Config) Clone() Config {
	out := c

	if c.Region != nil {
		out.Region = make(filter.Region, len(c.Region))
		copy(out.Region, c.Region)
	}

	return out
}

// Validate checks every field and returns all problems found combined into
// one error
func (c *Config) Validate() error {

	var err error

	if !inRange(c.SmoothingFactor, 0, 1) {
		err = multierr.Append(err,
			fmt.Errorf("smoothingFactor %v must be within [0,1]", c.SmoothingFactor))
	}

	if c.Trail.Enabled() {
		if c.Trail.Interval < 1 {
			err = multierr.Append(err,
				fmt.Errorf("trail interval %d must be at least 1", c.Trail.Interval))
		}
		if c.Trail.MaxAge < 0 {
			err = multierr.Append(err,
				fmt.Errorf("trail maxAge %d must not be negative", c.Trail.MaxAge))
		}
	}

	if !inRange(c.Spring.Hardness, 0, 1) || c.Spring.Hardness == 0 {
		err = multierr.Append(err,
			fmt.Errorf("spring hardness %v must be within (0,1]", c.Spring.Hardness))
	}

	if !inRange(c.Spring.Damping, 0, 1) || c.Spring.Damping == 0 {
		err = multierr.Append(err,
			fmt.Errorf("spring damping %v must be within (0,1]", c.Spring.Damping))
	}

	if !inRange(c.Spring.MidHardness, 0, 1) {
		err = multierr.Append(err,
			fmt.Errorf("spring midHardness %v must be within [0,1]", c.Spring.MidHardness))
	}

	if !inRange(c.Spring.ControlRatio, 0, 1) {
		err = multierr.Append(err,
			fmt.Errorf("spring controlRatio %v must be within [0,1]", c.Spring.ControlRatio))
	}

	if c.RegionEnabled && len(c.Region) < 3 {
		err = multierr.Append(err,
			fmt.Errorf("region needs at least 3 points, has %d", len(c.Region)))
	}

	for i, pt := range c.Region {
		if !finite(pt.X) || !finite(pt.Y) {
			err = multierr.Append(err, fmt.Errorf("region point %d is not finite", i))
		}
	}

	if !finite(c.RegionMargin) {
		err = multierr.Append(err, fmt.Errorf("regionMargin is not finite"))
	}

	if !finite(c.CalibrationScale) || c.CalibrationScale <= 0 {
		err = multierr.Append(err,
			fmt.Errorf("calibrationScale %v must be positive", c.CalibrationScale))
	}

	if c.Identity == tracker.Centroid {
		if c.MaxTrackDistance <= 0 {
			err = multierr.Append(err,
				fmt.Errorf("maxTrackDistance %v must be positive", c.MaxTrackDistance))
		}
		if c.MaxMissed < 0 {
			err = multierr.Append(err,
				fmt.Errorf("maxMissed %d must not be negative", c.MaxMissed))
		}
	}

	if !finite(c.StrokeWidth) || c.StrokeWidth <= 0 {
		err = multierr.Append(err,
			fmt.Errorf("strokeWidth %v must be positive", c.StrokeWidth))
	}

	if c.FPS < 1 {
		err = multierr.Append(err, fmt.Errorf("fps %d must be at least 1", c.FPS))
	}

	return err
}

// LoadConfig reads a JSON config file.  Fields missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes JSON config data over the defaults and validates it
func ParseConfig(data []byte) (Config, error) {

	cfg := DefaultConfig()

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// inRange returns true if v is a number within [min,max]
func inRange(v, min, max float64) bool {
	return v >= min && v <= max
}

// finite returns true if v is neither NaN nor infinite
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
