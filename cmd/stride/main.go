package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/stride/internal/anim"
	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/controller"
	"github.com/Versifine/stride/internal/debug"
	"github.com/Versifine/stride/internal/host"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/world"
)

func main() {
	configPath := flag.String("config", "configs/stride.yaml", "tuning config path")
	headless := flag.Bool("headless", false, "drive the loop from the terminal instead of a window")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := world.NewFromConfig(cfg.World, world.CharacterSize{Width: 0.6, Height: 1.8})

	if *headless {
		if err := runHeadless(ctx, cfg, w); err != nil {
			slog.Error("Console exited", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runWindowed(ctx, *configPath, cfg, w); err != nil {
		slog.Error("Game exited", "error", err)
		os.Exit(1)
	}
}

func runWindowed(ctx context.Context, configPath string, cfg *config.Config, w *world.World) error {
	source := host.NewSource()
	loop := controller.New(controller.FromTuning(cfg.Tuning), source, w, w)
	loop.AttachRigs(&host.Rig{Name: "first_person"}, &host.Rig{Name: "third_person"})

	game := host.NewGame(loop, source, w)

	events := anim.NewEvents()
	sink := audio.NewSink(cfg.Audio)
	if err := sink.Init(); err != nil {
		slog.Warn("Audio unavailable, continuing silent", "error", err)
	} else {
		defer sink.Close()
	}
	sink.Attach(events)
	game.WithAudio(sink, anim.NewEventEmitter(events, 1.4))

	if watcher, err := config.Watch(configPath); err != nil {
		slog.Warn("Config watch unavailable, live tuning disabled", "error", err)
	} else {
		defer watcher.Close()
		updates := make(chan controller.Config, 1)
		go forwardTuning(ctx, watcher.Configs, updates)
		game.WithConfigUpdates(updates)
	}

	return host.Run(game)
}

func runHeadless(ctx context.Context, cfg *config.Config, w *world.World) error {
	console := debug.NewConsole()
	loop := controller.New(controller.FromTuning(cfg.Tuning), console, w, w)
	console.Bind(loop)
	return console.Start(ctx)
}

// forwardTuning maps reloaded config revisions onto controller configs. The
// updates channel holds one revision; a newer one replaces an undrained
// older one.
func forwardTuning(ctx context.Context, in <-chan *config.Config, out chan controller.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-in:
			if !ok {
				return
			}
			next := controller.FromTuning(cfg.Tuning)
			select {
			case out <- next:
			default:
				select {
				case <-out:
				default:
				}
				out <- next
			}
			slog.Info("Tuning reloaded")
		}
	}
}
