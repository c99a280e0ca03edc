package ccd

import(
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

subtractoverscan: true
removecosmicrays: true
cosmicraypolicy: sigmaclip
cosmicraysigma: 5.0

rescale:
  mode: log
  power: 0.5
  clip: 0.01

colormap: gray

exclude:
  - focus_test_003.fits

*/

type RescaleOptions struct {
	Mode  string
	Power float64
	Clip  float64  // percentile clipped at each end when auto-picking cuts
}

type Config struct {
	SubtractOverscan bool
	RemoveCosmicRays bool
	CosmicRayPolicy  string
	CosmicRaySigma   float64

	Rescale  RescaleOptions
	Colormap string
	Exclude  []string

	// Values we derive/compute
	cosmicRays CosmicRayFilter
}

func NewConfig() Config {
	return Config{
		SubtractOverscan: true,
		RemoveCosmicRays: true,
		CosmicRayPolicy:  "sigmaclip",
		CosmicRaySigma:   5.0,
		Rescale: RescaleOptions{
			Mode: "linear",
			Clip: 0.01,
		},
		Colormap:   "gray",
		Exclude:    []string{},
		cosmicRays: SigmaClipFilter{Sigma: 5.0},
	}
}

func LoadConfig(filename string) (Config, error) {
	c := NewConfig()

	if contents, err := os.ReadFile(filename); err != nil {
		return c, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("parse '%s': %v", filename, err)
	}

	return c, c.FinalizeConfig()
}

// FinalizeConfig does sanity checks and other post-processing
func (c *Config)FinalizeConfig() error {
	switch c.CosmicRayPolicy {
	case "", "none":
		c.cosmicRays = NoOpFilter{}
	case "sigmaclip":
		if c.CosmicRaySigma <= 0.0 {
			return fmt.Errorf("CosmicRaySigma must be positive, have %g", c.CosmicRaySigma)
		}
		c.cosmicRays = SigmaClipFilter{Sigma: c.CosmicRaySigma}
	default:
		return fmt.Errorf("no CosmicRayPolicy named '%s'", c.CosmicRayPolicy)
	}

	if _, err := stretchFunc(c.Rescale.Mode); err != nil {
		return err
	}
	if c.Rescale.Mode == "power" && c.Rescale.Power <= 0.0 {
		return fmt.Errorf("power rescale needs a positive exponent, have %g", c.Rescale.Power)
	}
	if c.Rescale.Clip < 0.0 || c.Rescale.Clip >= 0.5 {
		return fmt.Errorf("rescale clip must be in [0,0.5), have %g", c.Rescale.Clip)
	}

	return nil
}

// Excluded reports whether a raw frame name is on the exclude list.
func (c Config)Excluded(name string) bool {
	for _, excl := range c.Exclude {
		if excl == name { return true }
	}
	return false
}
