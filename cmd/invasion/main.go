package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/invasion/batch"
	"github.com/zucenko/invasion/config"
	"github.com/zucenko/invasion/model"
)

var errUsage = errors.New("usage")

type args struct {
	mapFile string
	aliens  int
	days    int
	conf    *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			log.Error(err)
		}
		os.Exit(1)
	}
}

func parseArgs(argv []string, stderr io.Writer) (*args, error) {
	fs := flag.NewFlagSet("invasion", flag.ContinueOnError)
	fs.SetOutput(stderr)
	confPath := fs.String("config", "", "config file (yaml, json or toml)")
	seed := fs.Int64("seed", 0, "random seed, 0 picks one from the clock")
	runs := fs.Int("runs", 0, "play the map this many times and print statistics")
	workers := fs.Int("workers", 0, "concurrent runs in batch mode")
	level := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: invasion [flags] MAPFILE ALIENS ITERATIONS\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		return nil, errUsage
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return nil, errUsage
	}
	aliens, err := strconv.Atoi(fs.Arg(1))
	if err != nil || aliens < 0 {
		fmt.Fprintf(stderr, "ALIENS must be a non negative number, got %q\n", fs.Arg(1))
		return nil, errUsage
	}
	days, err := strconv.Atoi(fs.Arg(2))
	if err != nil || days < 0 {
		fmt.Fprintf(stderr, "ITERATIONS must be a non negative number, got %q\n", fs.Arg(2))
		return nil, errUsage
	}

	conf, err := config.Load(*confPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			conf.Sim.Seed = *seed
		case "runs":
			conf.Batch.Runs = *runs
		case "workers":
			conf.Batch.Workers = *workers
		case "log-level":
			conf.Log.Level = *level
		}
	})
	if conf.Sim.Seed == 0 {
		conf.Sim.Seed = time.Now().UnixNano()
	}
	return &args{mapFile: fs.Arg(0), aliens: aliens, days: days, conf: conf}, nil
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	a, err := parseArgs(argv, stderr)
	if err != nil {
		return err
	}
	config.SetupLogging(a.conf.Log.Level)
	log.Debugf("seed %d", a.conf.Sim.Seed)

	if a.conf.Batch.Runs > 1 {
		return runBatch(ctx, a, stdout)
	}

	reg, err := model.LoadMap(a.mapFile)
	if err != nil {
		return err
	}
	w := model.NewWorld(reg, rand.New(rand.NewSource(a.conf.Sim.Seed)))
	w.SpawnAliens(a.aliens)
	summary := w.Run(a.days, func(report model.DayReport) {
		log.WithField("day", report.Day).Debugf("%d moves", len(report.Moves))
	})
	log.Infof("Invasion ended after %d days: %d cities left, %d dead, %d trapped",
		summary.Days, summary.Cities, summary.Dead, summary.Trapped)
	_, err = w.Registry.WriteTo(stdout)
	return err
}

func runBatch(ctx context.Context, a *args, stdout io.Writer) error {
	text, err := os.ReadFile(a.mapFile)
	if err != nil {
		return err
	}
	stats, err := batch.Run(ctx, text, batch.Options{
		Aliens:  a.aliens,
		Days:    a.days,
		Runs:    a.conf.Batch.Runs,
		Workers: a.conf.Batch.Workers,
		Seed:    a.conf.Sim.Seed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "runs:            %d\n", stats.Runs)
	fmt.Fprintf(stdout, "ended early:     %d\n", stats.Ended)
	fmt.Fprintf(stdout, "days:            %.1f (min %d, max %d)\n", stats.MeanDays, stats.MinDays, stats.MaxDays)
	fmt.Fprintf(stdout, "cities destroyed:%.2f\n", stats.Destroyed)
	fmt.Fprintf(stdout, "aliens dead:     %.2f\n", stats.Dead)
	fmt.Fprintf(stdout, "aliens trapped:  %.2f\n", stats.Trapped)
	fmt.Fprintf(stdout, "aliens roaming:  %.2f\n", stats.Survivors)
	return nil
}
