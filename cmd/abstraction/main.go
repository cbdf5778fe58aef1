package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"path to HCL build configuration" default:"abstraction.hcl"`

	Strength StrengthCmd `cmd:"" help:"generate the canonical 5-card strength dataset"`
	Equity   EquityCmd   `cmd:"" help:"build or resume the river equity dataset"`
	Buckets  BucketsCmd  `cmd:"" help:"build the flop/turn abstraction datasets"`
	Show     ShowCmd     `cmd:"" help:"inspect a hand's canonical form, strength, equity and bucket"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("abstraction"),
		kong.Description("Offline builder for hand abstraction datasets"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	switch ctx.Command() {
	case "strength":
		if err := cli.Strength.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("strength build failed")
		}
	case "equity":
		if err := cli.Equity.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("equity build failed")
		}
	case "buckets":
		if err := cli.Buckets.Run(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("bucket build failed")
		}
	case "show <hand>":
		if err := cli.Show.Run(); err != nil {
			log.Fatal().Err(err).Msg("show failed")
		}
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
