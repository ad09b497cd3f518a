// Command nettworkers-client runs a client against a running server.
// It has no renderer: input is generated synthetically (a walk-then-
// jump pattern driven by a sine wave) and frame state is logged
// instead of drawn.
package main

import (
	"context"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/henrikhaus/nettworkers/client"
	"github.com/henrikhaus/nettworkers/shared"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logger.WithField("component", "client")

	cfg, err := client.LoadConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	scene, err := shared.LoadScene("scenes/scene_1.yaml")
	if err != nil {
		log.WithError(err).Fatal("failed to load scene")
	}

	cli, err := client.New(cfg.ServerAddr, cfg.Name, uint64(cfg.DelayMs)*1000, cfg.Predict, cfg.Reconcile, scene, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	sample := func() []shared.PlayerCommand {
		t := time.Since(start).Seconds()

		var cmds []shared.PlayerCommand
		switch {
		case math.Sin(t) > 0.3:
			cmds = append(cmds, shared.CommandMoveRight)
		case math.Sin(t) < -0.3:
			cmds = append(cmds, shared.CommandMoveLeft)
		}
		if math.Cos(t*0.5) > 0.95 {
			cmds = append(cmds, shared.CommandJump)
		}
		return cmds
	}

	frame := 0
	draw := func(local *shared.PlayerState, remotes shared.PositionSnapshot) {
		frame++
		if frame%60 != 0 || local == nil {
			return
		}
		log.WithFields(logrus.Fields{
			"pos":          local.Pos,
			"vel":          local.Vel,
			"remote_count": len(remotes),
		}).Info("frame snapshot")
	}

	log.WithField("server", cfg.ServerAddr).Info("connecting")
	if err := cli.Run(ctx, sample, draw); err != nil && ctx.Err() == nil {
		log.WithError(err).Fatal("client exited with an error")
	}
	log.Info("client shut down")
}
