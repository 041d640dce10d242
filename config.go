package pixelbatt

import (
	"image"
	"slices"
	"strconv"
	"time"

	"github.com/pgaskin/pixelbatt/internal/logutil"
	"github.com/pgaskin/pixelbatt/power"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultThickness     = 2
	DefaultPollInterval  = 10 * time.Second
	MaxPollInterval      = time.Hour
	DefaultHideThreshold = 0
	DefaultWarnThreshold = 10
)

// Config is the configuration for the bar. It is not modified after startup.
type Config struct {
	Edge           Edge
	Thickness      int
	PollInterval   time.Duration
	HideThreshold  int // hide the bar while charging above this; 0 to never hide
	WarnThreshold  int // keep showing the popup while discharging at or below this
	StayOnTop      bool
	Font           string
	Display        string // empty for the default
	Sampler        string // see power.New
	KeepLastSample bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Edge:          EdgeLeft,
		Thickness:     DefaultThickness,
		PollInterval:  DefaultPollInterval,
		HideThreshold: DefaultHideThreshold,
		WarnThreshold: DefaultWarnThreshold,
		Font:          DefaultFont,
		Sampler:       "auto",
	}
}

// Validate checks the configuration. A poll interval which is zero or above
// MaxPollInterval is replaced by the default with a warning, and other invalid
// values are a ConfigError.
func (c *Config) Validate(log logrus.FieldLogger) error {
	log = logutil.OrDiscard(log)
	if c.Thickness <= 0 {
		return configErr("invalid size", strconv.Itoa(c.Thickness), errors.New("must be positive"))
	}
	if c.PollInterval <= 0 || c.PollInterval > MaxPollInterval {
		log.Warnf("anything can happen in %s, falling back to %s poll interval", c.PollInterval, DefaultPollInterval)
		c.PollInterval = DefaultPollInterval
	}
	if c.HideThreshold < 0 || c.HideThreshold > 100 {
		return configErr("invalid hide percentage", strconv.Itoa(c.HideThreshold), errors.New("must be between 0 and 100"))
	}
	if c.WarnThreshold < 0 || c.WarnThreshold > 100 {
		return configErr("invalid warn percentage", strconv.Itoa(c.WarnThreshold), errors.New("must be between 0 and 100"))
	}
	if c.Font == "" {
		return configErr("invalid font", `""`, errors.New("must not be empty"))
	}
	if len(c.Font) >= 1024 {
		return configErr("invalid font", c.Font[:32]+"...", errors.New("too long"))
	}
	if c.Sampler != "" && c.Sampler != "auto" && !slices.Contains(power.Backends, c.Sampler) {
		return configErr("invalid sampler", strconv.Quote(c.Sampler), errors.Errorf("must be auto or one of %q", power.Backends))
	}
	return nil
}

// ClampThickness ensures the bar is thinner than the screen it is on.
func (c *Config) ClampThickness(screen image.Rectangle, log logrus.FieldLogger) {
	extent := screen.Dy()
	if !c.Edge.Horizontal() {
		extent = screen.Dx()
	}
	if c.Thickness > extent-1 {
		logutil.OrDiscard(log).Warnf("%d is bigger than the display, falling back to %d pixels", c.Thickness, extent-1)
		c.Thickness = max(extent-1, 1)
	}
}
