// cmd/diversionwheel/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mmp/diversionwheel/log"
	"github.com/mmp/diversionwheel/util"
	"github.com/mmp/diversionwheel/wheel"
)

// Config is everything needed to produce a wheel. It can be given as a
// JSON file, e.g.:
//
//	{
//	    "speed_knots": 95,
//	    "wind_direction_deg": 250,
//	    "wind_speed_knots": 15,
//	    "variation_deg": -1,
//	    "flipped": true,
//	    "output": "wheel.pdf"
//	}
//
// Fields that aren't given keep their default values.
type Config struct {
	wheel.Params
	wheel.Options
	Output string `json:"output"`
}

var defaultConfig = Config{
	Params:  wheel.DefaultParams(),
	Options: wheel.DefaultOptions(),
	Output:  wheel.DefaultOutputPath,
}

// MakeDefaultConfig returns a new Config holding the defaults. Config
// has no reference fields, so a plain copy is independent of
// defaultConfig.
func MakeDefaultConfig() *Config {
	c := defaultConfig
	return &c
}

var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig returns the defaults overridden by the contents of the JSON
// file at path, if path is non-empty.
func LoadConfig(path string, lg *log.Logger) (*Config, error) {
	c := MakeDefaultConfig()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var e util.ErrorLogger
	e.Push(path)
	for _, dup := range util.FindDuplicateJSONKeys(b) {
		if dup.Path == "" {
			e.ErrorString("%q: key appears more than once", dup.Key)
		} else {
			e.ErrorString("%s: %q: key appears more than once", dup.Path, dup.Key)
		}
	}
	if err := util.UnmarshalJSONBytes(b, c); err != nil {
		e.Error(err)
	}
	e.Pop()

	if e.HaveErrors() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidConfig, e.String())
	}

	lg.Infof("%s: loaded configuration", path)
	return c, nil
}

// ApplyFlags overrides c with the command-line flags in fs that were set
// explicitly; flags left at their defaults don't clobber values from a
// configuration file.
func (c *Config) ApplyFlags(fs *flag.FlagSet) {
	f32 := func(v any) float32 { return float32(v.(float64)) }

	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		v := g.Get()

		switch f.Name {
		case "flipped":
			c.Flipped = v.(bool)
		case "speed":
			c.Speed = f32(v)
		case "winddir":
			c.WindDirection = f32(v)
		case "windspeed":
			c.WindSpeed = f32(v)
		case "variation":
			c.Variation = f32(v)
		case "output":
			c.Output = v.(string)
		case "scale":
			c.Scale = f32(v)
		case "segments":
			c.CircleSegments = v.(int)
		case "font":
			c.FontFamily = v.(string)
		case "fontsize":
			c.FontSize = f32(v)
		case "compress":
			c.Compress = v.(bool)
		}
	})
}

func (c *Config) Validate(e *util.ErrorLogger) {
	if c.Output == "" {
		e.ErrorString("output: no output file given")
	}
	c.Options.Validate(e)
}

// ResolveConfig loads the configuration file at path (if any), applies
// the flags that were set in fs, and checks that the result is usable.
func ResolveConfig(path string, fs *flag.FlagSet, lg *log.Logger) (*Config, error) {
	c, err := LoadConfig(path, lg)
	if err != nil {
		return nil, err
	}

	c.ApplyFlags(fs)

	var e util.ErrorLogger
	c.Validate(&e)
	if e.HaveErrors() {
		e.PrintErrors(os.Stderr, lg)
		return nil, ErrInvalidConfig
	}
	return c, nil
}
