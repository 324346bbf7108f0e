package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/invasion/config"
	"github.com/zucenko/invasion/server"
)

type Server struct {
	router    *way.Router
	SimServer *server.SimServer
}

func main() {
	confPath := flag.String("config", "", "config file (yaml, json or toml)")
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.SetupLogging(conf.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := Server{
		SimServer: server.NewSimServer(conf),
	}
	go s.SimServer.Loop(ctx)
	s.routes()

	httpServer := &http.Server{Addr: ":" + conf.Server.Port, Handler: s.router}
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = httpServer.Shutdown(context.Background())
	}()
	log.Printf("Serving maps from %s on port %s", conf.Server.MapsDir, conf.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalln(err)
	}
}
