package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/morphtree"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <script.json>",
		Short: "Replay a gesture script headless and report the outcome",
		Long: `Loads a JSON gesture script, attaches it to a scene and runs Update at a
fixed rate until the script finishes (plus --settle seconds so transitions can
complete) or --max-frames is reached. Mode and gesture changes are logged;
a YAML summary is printed at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			script, err := morphtree.LoadGestureScript(data)
			if err != nil {
				return err
			}
			cfg, err := sceneConfigFromFlags(cmd)
			if err != nil {
				return err
			}
			opts := simulateOptions{}
			opts.fps, _ = cmd.Flags().GetFloat64("fps")
			opts.settle, _ = cmd.Flags().GetFloat64("settle")
			opts.maxFrames, _ = cmd.Flags().GetInt("max-frames")
			opts.debug, _ = cmd.Flags().GetBool("debug")

			sum, err := simulate(cfg, script, opts, slog.Default())
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().Float64("fps", 60, "Simulated frame rate")
	cmd.Flags().Float64("settle", 2.5, "Seconds to keep running after the script finishes")
	cmd.Flags().Int("max-frames", 36000, "Hard frame limit")
	cmd.Flags().Bool("debug", false, "Log per-frame timing stats at debug level")
	return cmd
}

type simulateOptions struct {
	fps       float64
	settle    float64
	maxFrames int
	debug     bool
}

// summary is the YAML report printed by simulate.
type summary struct {
	Frames      int            `yaml:"frames"`
	Elapsed     float64        `yaml:"elapsed"`
	Finished    bool           `yaml:"finished"`
	Mode        morphtree.Mode `yaml:"mode"`
	Morph       float64        `yaml:"morph"`
	ModeChanges int            `yaml:"mode_changes"`
	Events      []eventRecord  `yaml:"events"`
	Star        starRecord     `yaml:"star"`
}

type eventRecord struct {
	Type    string  `yaml:"type"`
	Time    float64 `yaml:"time"`
	Mode    string  `yaml:"mode,omitempty"`
	Gesture string  `yaml:"gesture,omitempty"`
}

type starRecord struct {
	Position morphtree.Vec3 `yaml:"position"`
	Scale    float64        `yaml:"scale"`
}

// logStore logs scene events and keeps them for the summary.
type logStore struct {
	logger *slog.Logger
	events []eventRecord
	modes  int
}

func (l *logStore) EmitEvent(e morphtree.Event) {
	switch e.Type {
	case morphtree.EventModeChange:
		l.modes++
		l.logger.Info("mode change", "from", e.Previous, "to", e.Mode, "t", e.Time)
		l.events = append(l.events, eventRecord{Type: "mode", Time: e.Time, Mode: e.Mode.String()})
	case morphtree.EventGesture:
		l.logger.Info("gesture", "label", e.Gesture, "t", e.Time)
		l.events = append(l.events, eventRecord{Type: "gesture", Time: e.Time, Gesture: e.Gesture.String()})
	}
}

func simulate(cfg morphtree.SceneConfig, script *morphtree.GestureScript, opts simulateOptions, logger *slog.Logger) (summary, error) {
	if opts.fps <= 0 {
		return summary{}, fmt.Errorf("fps must be positive, got %v", opts.fps)
	}
	scene, err := morphtree.NewScene(cfg)
	if err != nil {
		return summary{}, err
	}
	store := &logStore{logger: logger}
	scene.SetEventStore(store)
	scene.SetLogger(logger)
	scene.SetDebugMode(opts.debug)
	scene.SetScript(script)

	dt := 1 / opts.fps
	settleFrames := int(opts.settle * opts.fps)
	frames := 0
	for frames < opts.maxFrames {
		scene.Update(dt)
		frames++
		if script.Done() {
			if settleFrames <= 0 {
				break
			}
			settleFrames--
		}
	}
	if !script.Done() {
		logger.Warn("frame limit reached before the script finished", "frames", frames)
	}

	f := scene.Frame()
	return summary{
		Frames:      frames,
		Elapsed:     scene.Elapsed(),
		Finished:    script.Done(),
		Mode:        scene.Mode(),
		Morph:       scene.Morph().Value(),
		ModeChanges: store.modes,
		Events:      store.events,
		Star:        starRecord{Position: f.Star.Position, Scale: f.Star.Scale},
	}, nil
}
