// Command nettworkers-server runs the authoritative simulation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/henrikhaus/nettworkers/server"
	"github.com/henrikhaus/nettworkers/shared"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logger.WithField("component", "server")

	cfg, err := server.LoadConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	scene, err := shared.LoadScene(cfg.ScenePath)
	if err != nil {
		log.WithError(err).Fatal("failed to load scene")
	}

	srv, err := server.New(cfg.Addr, scene, time.Duration(cfg.TickMs)*time.Millisecond, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start server")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.WithField("addr", cfg.Addr).Info("server listening")
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Fatal("server exited with an error")
	}
	log.Info("server shut down")
}
