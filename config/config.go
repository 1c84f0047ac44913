// Package config loads the engine's runtime knobs: evaluator choice,
// worker/simulation defaults, table and telemetry directories, all
// layered the way the teacher repo layers its own config — flag
// defaults first, an optional YAML file overlaid on top.
package config

import (
	"fmt"

	"github.com/namsral/flag"
	"github.com/spf13/viper"
)

// Config holds every knob a pokerequity process reads at startup.
type Config struct {
	TableDir           string
	DefaultAlgorithm   string
	DefaultWorkers     int
	DefaultSimulations int
	UpdateInterval     int
	TelemetryDir       string
	ConfigFile         string
	Debug              bool
}

// RegisterFlags declares the ambient flags on fs, binding them directly
// into c's fields. Callers that need additional, job-specific flags on
// the same command line (cmd/pokerequity) call this against their own
// FlagSet before adding their own flags and parsing, instead of going
// through Load.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.TableDir, "table-dir", "./data/tables", "directory holding generated evaluator lookup tables")
	fs.StringVar(&c.DefaultAlgorithm, "algorithm", "perfect_hash", "default evaluator: naive, cactus_kev, perfect_hash, two_plus_two, simd")
	fs.IntVar(&c.DefaultWorkers, "num-workers", 0, "default worker count (0 = single-threaded)")
	fs.IntVar(&c.DefaultSimulations, "num-simulations", 100000, "default per-job simulation budget")
	fs.IntVar(&c.UpdateInterval, "update-interval", 1000, "trials between periodic telemetry merges")
	fs.StringVar(&c.TelemetryDir, "telemetry-dir", "/dev/shm", "telemetry shared-memory directory (not read by package telemetry, which always uses /dev/shm)")
	fs.StringVar(&c.ConfigFile, "config-file", "", "optional YAML file overlaying these defaults")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug-level logging")
}

// ApplyOverlay reads -config-file, if set, and overlays it via viper onto
// c: any key the file sets wins over the flag default, but never over a
// value the caller explicitly passed on fs's command line.
func (c *Config) ApplyOverlay(fs *flag.FlagSet) error {
	if c.ConfigFile == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(c.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: reading %s: %w", c.ConfigFile, err)
	}
	explicit := explicitlySet(fs)
	overlay := map[string]*string{
		"table-dir":     &c.TableDir,
		"algorithm":     &c.DefaultAlgorithm,
		"telemetry-dir": &c.TelemetryDir,
	}
	for key, dst := range overlay {
		if !explicit[key] && v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	intOverlay := map[string]*int{
		"num-workers":     &c.DefaultWorkers,
		"num-simulations": &c.DefaultSimulations,
		"update-interval": &c.UpdateInterval,
	}
	for key, dst := range intOverlay {
		if !explicit[key] && v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	return nil
}

// Load parses args with namsral/flag (so PKREQ_-prefixed environment
// variables work the same way macondo's flags do) against a FlagSet
// carrying only the ambient flags, then applies the YAML overlay.
// Callers that need to mix in their own flags should call RegisterFlags
// and ApplyOverlay directly instead.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("pokerequity", "PKREQ", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.ApplyOverlay(fs)
}

// explicitlySet reports which flags were actually passed on the command
// line, so the YAML overlay never clobbers an explicit CLI choice.
func explicitlySet(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
