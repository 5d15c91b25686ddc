package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"

	"github.com/linhadecascais/nexttrain/config"
	"github.com/linhadecascais/nexttrain/cptravel"
	"github.com/linhadecascais/nexttrain/engine"
	"github.com/linhadecascais/nexttrain/gtfsfeed"
	"github.com/linhadecascais/nexttrain/livefeed"
	"github.com/linhadecascais/nexttrain/server"
	"github.com/linhadecascais/nexttrain/stations"
	"github.com/linhadecascais/nexttrain/timetable"
)

func main() {
	if os.Getenv("NEXTTRAIN_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("NEXTTRAIN_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "nexttrain",
		Description: "Next-train departures service for the Cascais line",

		Commands: []*cli.Command{
			serverCommand(),
			probeCommand(),
			gtfsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func loadConfig() config.AppConfig {
	if err := config.LoadAppConfig(); err != nil {
		log.Warn().Err(err).Msg("config.yml not loaded, running on defaults")
		config.Config = config.Default()
	}
	return config.Config
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "run the departures API server",
		Action: func(c *cli.Context) error {
			cfg := loadConfig()

			reg := stations.NewRegistry()
			provider := timetable.NewProvider()

			var live engine.LiveSource
			if cfg.LiveFeed.Source == "gtfsrt" {
				live = livefeed.NewGTFSRTSource(cfg.LiveFeed, reg)
			} else {
				live = livefeed.NewClient(cfg.LiveFeed, cfg.Line, reg)
			}

			opts, err := engine.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}

			frozen := engine.NewDisappearanceCache()
			go sweepFrozen(frozen)

			eng := engine.New(reg, provider, live, cptravel.NewClient(cfg.TravelAPI), frozen, opts)
			srv := server.New(cfg.Server, eng, reg)

			go func() {
				if err := srv.Listen(); err != nil {
					log.Fatal().Err(err).Msg("server error")
				}
			}()
			log.Info().Int("port", cfg.Server.Port).Msg("server listening")

			waitForShutdown(srv)
			return nil
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "scan the travel API gateway for a working endpoint/header combination",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Value: "9434007",
				Usage: "timetable id of the origin station",
			},
			&cli.StringFlag{
				Name:  "to",
				Value: "9430005",
				Usage: "timetable id of the destination station",
			},
			&cli.StringFlag{
				Name:  "date",
				Value: time.Now().Format("2006-01-02"),
				Usage: "travel date (YYYY-MM-DD)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := loadConfig()
			client := cptravel.NewClient(cfg.TravelAPI)

			results := client.Scan(c.Context, c.String("from"), c.String("to"), c.String("date"))
			for _, r := range results {
				ev := log.Warn()
				if r.Success() {
					ev = log.Info()
				}
				ev.Str("method", r.Method).
					Str("path", r.Path).
					Str("headers", r.HeaderSet).
					Int("status", r.Status).
					Int("records", r.Records).
					Err(r.Err).
					Msg("probe")
			}
			if len(results) > 0 && results[len(results)-1].Success() {
				log.Info().Msg("working combination found")
			} else {
				log.Warn().Msg("no working combination found")
			}
			return nil
		},
	}
}

func gtfsCommand() *cli.Command {
	return &cli.Command{
		Name:  "gtfs",
		Usage: "query departures from an extracted GTFS directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "GTFS directory (defaults to gtfs.path from config.yml)",
			},
			&cli.StringFlag{
				Name:     "stop",
				Usage:    "GTFS stop id",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "date",
				Value: time.Now().Format("2006-01-02"),
				Usage: "service date (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "after",
				Value: time.Now().Format("15:04:05"),
				Usage: "earliest departure time (HH:MM:SS)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "maximum departures to print",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := loadConfig()
			path := c.String("path")
			if path == "" {
				path = cfg.GTFS.Path
			}

			feed, err := gtfsfeed.LoadDir(path)
			if err != nil {
				return err
			}
			date, err := time.Parse("2006-01-02", c.String("date"))
			if err != nil {
				return err
			}

			departures := feed.NextTrains(c.String("stop"), date, c.String("after"), c.Int("limit"))
			for _, d := range departures {
				log.Info().
					Str("departure", d.DepartureTime).
					Str("destination", d.Destination).
					Str("route", d.Route).
					Str("trip", d.TripID).
					Msg("departure")
			}
			if len(departures) == 0 {
				log.Warn().Msg("no departures found")
			}
			return nil
		},
	}
}

// sweepFrozen periodically drops disappearance entries for trains
// that passed hours ago.
func sweepFrozen(frozen *engine.DisappearanceCache) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if n := frozen.Evict(time.Now().Add(-6 * time.Hour)); n > 0 {
			log.Debug().Int("evicted", n).Msg("disappearance cache swept")
		}
	}
}

func waitForShutdown(srv *server.Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		return
	}
	log.Info().Msg("server shut down successfully")
}
