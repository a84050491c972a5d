// cmd/diversionwheel/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// diversionwheel draws a diversion wheel: a transparent overlay for a
// 1:250000 chart showing how far the aircraft travels in 2 and 4
// minutes, with a compass rose corrected for magnetic variation and the
// corresponding wind drift.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmp/diversionwheel/log"
	"github.com/mmp/diversionwheel/wheel"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
	"github.com/pkg/browser"
)

var (
	flipped    = flag.Bool("flipped", defaultConfig.Flipped, "mirror the wheel horizontally for printing on the back of a transparency")
	speed      = flag.Float64("speed", float64(defaultConfig.Speed), "groundspeed in knots")
	windDir    = flag.Float64("winddir", float64(defaultConfig.WindDirection), "direction the wind is from, in degrees")
	windSpeed  = flag.Float64("windspeed", float64(defaultConfig.WindSpeed), "wind speed in knots")
	variation  = flag.Float64("variation", float64(defaultConfig.Variation), "magnetic variation in degrees, east positive")
	output     = flag.String("output", defaultConfig.Output, "PDF file to write")
	chartScale = flag.Float64("scale", float64(defaultConfig.Scale), "chart scale denominator")
	segments   = flag.Int("segments", defaultConfig.CircleSegments, "number of segments used to draw circles; 0 for Bezier curves")
	font       = flag.String("font", defaultConfig.FontFamily, "label font: Times, Helvetica, or Courier")
	fontSize   = flag.Float64("fontsize", float64(defaultConfig.FontSize), "label font size in points")
	compress   = flag.Bool("compress", defaultConfig.Compress, "compress the PDF content stream")
	configFile = flag.String("config", "", "JSON file with wheel parameters; flags given explicitly take precedence")
	logLevel   = flag.String("loglevel", "", "logging level: debug, info, warn, error (default warn, or info with -logdir)")
	logDir     = flag.String("logdir", "", "log file directory; if not given, log messages go to stderr")
	commands   = flag.String("commands", "", "write the recorded drawing commands to this file")
	summary    = flag.Bool("summary", false, "print a JSON summary of what was drawn")
	dumpConfig = flag.Bool("dumpconfig", false, "print the resolved configuration")
	openPDF    = flag.Bool("open", false, "open the PDF in the system viewer once it has been written")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)

	config, err := ResolveConfig(*configFile, flag.CommandLine, lg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *dumpConfig {
		godump.Fdump(os.Stdout, config)
	}

	r := wheel.NewRenderer(config.Options, lg)
	pg, err := r.Render(config.Params, config.Output)
	if err != nil {
		lg.Error("unable to render wheel", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *commands != "" {
		cb := pg.Commands()
		if err := cb.SaveFile(*commands); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", wheel.ErrIOFailure, *commands, err)
			os.Exit(1)
		}
		lg.Infof("%s: saved %d drawing commands", *commands, len(cb.Commands))
	}

	if *summary {
		b, err := json.MarshalIndent(Summarize(pg, config.Output), "", "    ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	}

	if *openPDF {
		if err := browser.OpenFile(config.Output); err != nil {
			lg.Warnf("%s: unable to open: %v", config.Output, err)
		}
	}
}
