// Package batch plays the same invasion many times to gather statistics.
// Every run parses its own registry and owns its random source.
package batch

import (
	"context"
	"errors"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zucenko/invasion/model"
)

type Options struct {
	Aliens  int
	Days    int
	Runs    int
	Workers int
	// Run i is seeded with Seed+i.
	Seed int64
}

type Stats struct {
	Runs      int
	Ended     int // runs that stopped before the day limit
	MinDays   int
	MaxDays   int
	MeanDays  float64
	Destroyed float64
	Dead      float64
	Trapped   float64
	Survivors float64
}

var ErrNoRuns = errors.New("batch needs at least one run")

// Run parses mapText once to fail fast, then plays opts.Runs independent
// simulations on at most opts.Workers goroutines.
func Run(ctx context.Context, mapText []byte, opts Options) (*Stats, error) {
	if opts.Runs < 1 {
		return nil, ErrNoRuns
	}
	if _, err := model.ParseMap(string(mapText)); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	summaries := make([]model.Summary, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			s, err := runOne(ctx, mapText, opts, opts.Seed+int64(i))
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats := collect(summaries, opts.Days)
	log.WithFields(log.Fields{"runs": stats.Runs, "ended": stats.Ended}).
		Infof("Batch done, mean %.1f days", stats.MeanDays)
	return stats, nil
}

func runOne(ctx context.Context, mapText []byte, opts Options, seed int64) (model.Summary, error) {
	reg, err := model.ParseMap(string(mapText))
	if err != nil {
		return model.Summary{}, err
	}
	w := model.NewWorld(reg, rand.New(rand.NewSource(seed)))
	w.SpawnAliens(opts.Aliens)
	for day := 0; day < opts.Days && !w.IsOver(); day++ {
		if err := ctx.Err(); err != nil {
			return model.Summary{}, err
		}
		w.Tick()
	}
	return w.Summary(), nil
}

func collect(summaries []model.Summary, days int) *Stats {
	stats := &Stats{Runs: len(summaries)}
	for i, s := range summaries {
		if i == 0 || s.Days < stats.MinDays {
			stats.MinDays = s.Days
		}
		if s.Days > stats.MaxDays {
			stats.MaxDays = s.Days
		}
		if s.Days < days {
			stats.Ended++
		}
		stats.MeanDays += float64(s.Days)
		stats.Destroyed += float64(s.Destroyed)
		stats.Dead += float64(s.Dead)
		stats.Trapped += float64(s.Trapped)
		stats.Survivors += float64(s.Survivors())
	}
	n := float64(len(summaries))
	stats.MeanDays /= n
	stats.Destroyed /= n
	stats.Dead /= n
	stats.Trapped /= n
	stats.Survivors /= n
	return stats
}
