// Command pixelbatt shows the battery level as a thin bar along the edge of an
// X11 screen.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pgaskin/pixelbatt"
	"github.com/pgaskin/pixelbatt/power"
	"github.com/pgaskin/pixelbatt/xbar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var edges = []pixelbatt.Edge{
	pixelbatt.EdgeTop,
	pixelbatt.EdgeBottom,
	pixelbatt.EdgeLeft,
	pixelbatt.EdgeRight,
}

type options struct {
	cfg      pixelbatt.Config
	edge     string
	shortcut [4]bool // indexed like edges
	poll     uint
	logLevel string
}

func setupLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return &pixelbatt.Error{Kind: pixelbatt.ConfigError, Op: "invalid log level", Arg: logLevel, Err: err}
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pixelbatt: %v\n", err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	opt := options{
		cfg:      pixelbatt.DefaultConfig(),
		poll:     uint(pixelbatt.DefaultPollInterval / time.Second),
		logLevel: "info",
	}

	cmd := &cobra.Command{
		Use:   "pixelbatt [flags]",
		Short: "pixelbatt shows the battery level as a thin bar along the edge of the screen",
		Long: `pixelbatt shows the battery level as a thin bar along the edge of the screen.

The filled part of the bar is magenta while discharging and green while
charging. The rest is yellow, or red while discharging below 25% (olive above
75% while charging), or blue if there is no battery. Hover over the bar to
show the remaining charge and time.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger(opt.logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opt.config(cmd.Flags()); err != nil {
				return err
			}
			// everything after this is a runtime error
			cmd.SilenceUsage = true
			return run(opt.cfg, logrus.StandardLogger())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opt.edge, "edge", "e", opt.cfg.Edge.String(), "screen edge to show the bar on (top, bottom, left, right)")
	for i, edge := range edges {
		flags.BoolVar(&opt.shortcut[i], edge.String(), false, "same as --edge="+edge.String())
	}
	flags.IntVarP(&opt.cfg.Thickness, "size", "s", opt.cfg.Thickness, "bar thickness in pixels")
	flags.UintVarP(&opt.poll, "poll", "p", opt.poll, "seconds between battery samples")
	flags.IntVar(&opt.cfg.HideThreshold, "hide", opt.cfg.HideThreshold, "hide the bar while charging above this percentage (0 to never hide)")
	flags.IntVarP(&opt.cfg.WarnThreshold, "warn", "w", opt.cfg.WarnThreshold, "show the popup while discharging at or below this percentage")
	flags.StringVarP(&opt.cfg.Font, "font", "f", opt.cfg.Font, "popup font (family[-size][:style][:size=N][:pixelsize=N], or a path to a font file)")
	flags.StringVarP(&opt.cfg.Display, "display", "d", opt.cfg.Display, "X11 display (default $DISPLAY)")
	flags.BoolVarP(&opt.cfg.StayOnTop, "stay-on-top", "t", opt.cfg.StayOnTop, "keep the bar above other windows")
	flags.StringVar(&opt.cfg.Sampler, "sampler", opt.cfg.Sampler, "power backend (auto, "+strings.Join(power.Backends, ", ")+")")
	flags.BoolVar(&opt.cfg.KeepLastSample, "keep-last-sample", opt.cfg.KeepLastSample, "reuse the last battery sample if one fails")
	flags.StringVarP(&opt.logLevel, "log-level", "l", opt.logLevel, "log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.MarkFlagsMutuallyExclusive("edge", "top", "bottom", "left", "right")

	return cmd
}

// config applies the flags which need conversion, then validates the
// configuration.
func (opt *options) config(flags *pflag.FlagSet) error {
	edge, err := pixelbatt.ParseEdge(opt.edge)
	if err != nil {
		return &pixelbatt.Error{Kind: pixelbatt.ConfigError, Op: "invalid edge", Arg: opt.edge, Err: err}
	}
	for i, set := range opt.shortcut {
		if set {
			edge = edges[i]
		}
	}
	opt.cfg.Edge = edge

	if ceil := uint(pixelbatt.MaxPollInterval / time.Second); opt.poll > ceil {
		opt.cfg.PollInterval = pixelbatt.MaxPollInterval + time.Second
	} else {
		opt.cfg.PollInterval = time.Duration(opt.poll) * time.Second
	}

	if !flags.Changed("display") {
		opt.cfg.Display = os.Getenv("DISPLAY")
	}
	return opt.cfg.Validate(logrus.StandardLogger())
}

func run(cfg pixelbatt.Config, log logrus.FieldLogger) error {
	sampler, err := power.New(cfg.Sampler, log)
	if err != nil {
		return &pixelbatt.Error{Kind: pixelbatt.SampleError, Op: "open power backend", Arg: cfg.Sampler, Err: err}
	}
	if cfg.KeepLastSample {
		sampler = power.KeepLastGood(sampler, log)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigs)

	display, err := xbar.Open(cfg.Display, log)
	if err != nil {
		return &pixelbatt.Error{Kind: pixelbatt.PlatformError, Op: "open display", Arg: cfg.Display, Err: err}
	}
	cfg.ClampThickness(display.Bounds(), log)

	loop, err := pixelbatt.NewLoop(cfg, display, sampler, nil, log)
	if err != nil {
		return err
	}
	return loop.Run(sigs)
}
