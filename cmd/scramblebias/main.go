package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scramblebias/bias"
	"github.com/domino14/scramblebias/config"
	"github.com/domino14/scramblebias/report"
)

var (
	GitVersion string
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Str("version", GitVersion).Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}

func run(cfg config.Config, w io.Writer) error {
	e := bias.NewEstimator()
	e.SetLogger(log.Logger)
	e.SetMaxBit(cfg.GetInt(config.ConfigMaxBit))

	start := time.Now()
	rows := bias.Table(e, cfg.GetInt(config.ConfigFromBit), cfg.GetInt(config.ConfigToBit))
	conv := bias.AnalyzeConvergence(rows, cfg.GetFloat64(config.ConfigConfidence))
	log.Debug().Int("rows", len(rows)).Dur("elapsed", time.Since(start)).Msg("built-table")

	return report.Write(w, report.Options{
		Format:    cfg.GetString(config.ConfigFormat),
		Reference: cfg.GetBool(config.ConfigReference),
	}, rows, conv)
}
