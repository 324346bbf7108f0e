package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/invasion/client"
	"github.com/zucenko/invasion/config"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080/invade", "simulation server endpoint")
	aliens := flag.Int("aliens", 0, "aliens to land, 0 uses the server default")
	days := flag.Int("days", 0, "days to simulate, 0 uses the server default")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one")
	level := flag.String("log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s: [flags] MAPNAME\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	config.SetupLogging(*level)

	u, err := url.Parse(*addr)
	if err != nil {
		log.Fatalf("bad addr: %v", err)
	}
	q := u.Query()
	q.Set("map", flag.Arg(0))
	if *aliens > 0 {
		q.Set("aliens", strconv.Itoa(*aliens))
	}
	if *days > 0 {
		q.Set("days", strconv.Itoa(*days))
	}
	if *seed != 0 {
		q.Set("seed", strconv.FormatInt(*seed, 10))
	}
	u.RawQuery = q.Encode()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if _, err := client.Watch(ctx, u.String(), os.Stdout); err != nil {
		log.Errorf("watch: %v", err)
		os.Exit(1)
	}
}
