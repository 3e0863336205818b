package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/config"
	"github.com/swdee/go-schlemmer/render"
	"github.com/swdee/go-schlemmer/visualizer"
	"go.uber.org/zap"
)

func main() {

	// read in cli flags
	poseFile := flag.String("p", "../data/poses.jsonl", "JSON lines pose recording, one pose list per line")
	cfgFile := flag.String("c", "", "JSON config file, defaults are used if not given")
	outDir := flag.String("o", "frames", "Directory to write rendered PNG frames to")
	width := flag.Int("w", 1280, "Output canvas width")
	height := flag.Int("h", 720, "Output canvas height")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	logger, err := newLogger(*debug)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	defer logger.Sync()
	log := logger.Sugar()

	if err := run(log, *poseFile, *cfgFile, *outDir, *width, *height, *watch); err != nil {
		log.Fatalw("Replay failed", "error", err)
	}
}

// newLogger returns a development logger when debugging, otherwise a
// production one
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run replays the recording frame by frame onto a canvas
func run(log *zap.SugaredLogger, poseFile, cfgFile, outDir string,
	width, height int, watch bool) error {

	cfg := config.DefaultConfig()

	if cfgFile != "" {
		var err error
		cfg, err = config.LoadConfig(cfgFile)

		if err != nil {
			return err
		}
	}

	tunables := config.NewTunables(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if watch && cfgFile != "" {
		go func() {
			if err := config.Watch(ctx, cfgFile, tunables, log); err != nil {
				log.Warnw("Config watch stopped", "error", err)
			}
		}()
	}

	f, err := os.Open(poseFile)

	if err != nil {
		return fmt.Errorf("error opening pose recording: %w", err)
	}

	defer f.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	canvas := render.NewGGTarget(width, height)

	vis := visualizer.New(tunables,
		visualizer.WithLogger(log),
		visualizer.WithSurfaces(visualizer.Surface{
			Name:      "canvas",
			Target:    canvas,
			Transform: render.Identity(),
			Clear:     true,
		}),
	)

	reader := schlemmer.NewPoseReader(f)

	for {
		if ctx.Err() != nil {
			return nil
		}

		poses, err := reader.Next()

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		frame := vis.Step(poses)
		vis.Draw(&frame)

		canvas.Status([]string{
			fmt.Sprintf("Frame: %d", frame.Number),
			fmt.Sprintf("Poses: %d", frame.Poses),
			fmt.Sprintf("Base length: %.1f", frame.BaseLength),
		}, render.Yellow)

		path := filepath.Join(outDir, fmt.Sprintf("frame-%05d.png", frame.Number))

		if err := canvas.SavePNG(path); err != nil {
			return fmt.Errorf("error saving frame: %w", err)
		}
	}

	log.Infow("Replay complete", "output", outDir)

	return nil
}
