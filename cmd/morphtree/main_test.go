package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/morphtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func smallConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, "scene.yaml", `
seed: 7
tree:
  count: 120
sphere:
  count: 120
`)
}

// --- config ---

func TestConfigCommand_DefaultsRoundTrip(t *testing.T) {
	out, err := runCLI(t, "config")
	require.NoError(t, err)

	cfg, err := parseSceneConfig([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, morphtree.DefaultSceneConfig(), cfg)
}

func TestParseSceneConfig_Overlay(t *testing.T) {
	cfg, err := parseSceneConfig([]byte("morph_duration: 1.5\ngesture:\n  stable_frames: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), cfg.MorphDuration)
	assert.Equal(t, 3, cfg.Gesture.StableFrames)
	assert.Equal(t, morphtree.DefaultParticleCount, cfg.Tree.Count, "unspecified fields keep defaults")
	assert.Equal(t, morphtree.RoleFollower2, cfg.Engine.Entities[2].Role)
}

func TestParseSceneConfig_Empty(t *testing.T) {
	cfg, err := parseSceneConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, morphtree.DefaultSceneConfig(), cfg)
}

func TestParseSceneConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "colour: red\n"},
		{"count mismatch", "tree:\n  count: 10\n"},
		{"bad damping", "engine:\n  mirror:\n    damping: 4\n"},
		{"not yaml", "tree: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSceneConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadSceneConfig_MissingFile(t *testing.T) {
	_, err := loadSceneConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

// --- dump ---

func TestDumpCommand(t *testing.T) {
	out, err := runCLI(t, "dump", "--config", smallConfig(t), "-t", "1.5", "-m", "0.5", "--limit", "3")
	require.NoError(t, err)

	var d struct {
		T         float64          `yaml:"t"`
		M         float64          `yaml:"m"`
		Mode      string           `yaml:"mode"`
		Count     int              `yaml:"count"`
		Positions []morphtree.Vec3 `yaml:"positions"`
		Entities  []entityDump     `yaml:"entities"`
		Mirror    mirrorDump       `yaml:"mirror"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1.5, d.T)
	assert.Equal(t, 0.5, d.M)
	assert.Equal(t, "tree", d.Mode)
	assert.Equal(t, 120, d.Count)
	assert.Len(t, d.Positions, 3)
	require.Len(t, d.Entities, morphtree.EntityCount)
	assert.Equal(t, "leader", d.Entities[0].Role)
	assert.Equal(t, -8.5, d.Mirror.FloorY)
	require.Len(t, d.Mirror.Positions, 3)
	for i, p := range d.Positions {
		assert.InDelta(t, 2*d.Mirror.FloorY-p.Y, d.Mirror.Positions[i].Y, 1e-9)
	}
}

func TestDumpFrame_SphereModeSettled(t *testing.T) {
	cfg := morphtree.DefaultSceneConfig()
	cfg.Tree.Count, cfg.Sphere.Count = 50, 50
	d, err := dumpFrame(cfg, morphtree.ModeSphere, 0, 1, -1)
	require.NoError(t, err)
	assert.Len(t, d.Positions, 50)
	assert.InDelta(t, 1.6, d.Star.Scale, 1e-5)
	for _, dec := range d.Decorations {
		assert.Equal(t, 0.0, dec.Scale)
	}
}

func TestDumpCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "dump", "--mode", "cube")
	assert.Error(t, err)
	_, err = runCLI(t, "dump", "-m", "1.5")
	assert.ErrorContains(t, err, "morph")
}

// --- simulate ---

func TestSimulateCommand(t *testing.T) {
	script := writeFile(t, "script.json", `{"steps": [
		{"action": "palm", "frames": 3},
		{"action": "wait", "frames": 30},
		{"action": "absent", "frames": 5},
		{"action": "fist", "frames": 2}
	]}`)
	out, err := runCLI(t, "simulate", script, "--config", smallConfig(t), "--settle", "3")
	require.NoError(t, err)

	var sum summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.True(t, sum.Finished)
	assert.Equal(t, morphtree.ModeTree, sum.Mode)
	assert.Equal(t, 2, sum.ModeChanges)
	assert.Equal(t, 0.0, sum.Morph, "morph settles back on the tree")
	assert.InDelta(t, 8.6, sum.Star.Position.Y, 1e-5)

	var modes []string
	for _, e := range sum.Events {
		if e.Type == "mode" {
			modes = append(modes, e.Mode)
		}
	}
	assert.Equal(t, []string{"sphere", "tree"}, modes)
}

func TestSimulate_LogsEvents(t *testing.T) {
	script, err := morphtree.LoadGestureScript([]byte(`{"steps": [{"action": "palm"}]}`))
	require.NoError(t, err)
	cfg := morphtree.DefaultSceneConfig()
	cfg.Tree.Count, cfg.Sphere.Count = 40, 40

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	sum, err := simulate(cfg, script, simulateOptions{fps: 60, maxFrames: 100}, logger)
	require.NoError(t, err)

	assert.Equal(t, morphtree.ModeSphere, sum.Mode)
	assert.Contains(t, logs.String(), `msg="mode change"`)
	assert.Contains(t, logs.String(), "to=sphere")
}

func TestSimulate_FrameLimit(t *testing.T) {
	script, err := morphtree.LoadGestureScript([]byte(`{"steps": [{"action": "wait", "frames": 1000}]}`))
	require.NoError(t, err)
	cfg := morphtree.DefaultSceneConfig()
	cfg.Tree.Count, cfg.Sphere.Count = 10, 10

	var logs bytes.Buffer
	sum, err := simulate(cfg, script, simulateOptions{fps: 60, maxFrames: 10}, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	assert.False(t, sum.Finished)
	assert.Equal(t, 10, sum.Frames)
	assert.True(t, strings.Contains(logs.String(), "frame limit"))
}

func TestSimulateCommand_BadScript(t *testing.T) {
	script := writeFile(t, "bad.json", `{"steps": [{"action": "wave"}]}`)
	_, err := runCLI(t, "simulate", script)
	assert.ErrorContains(t, err, "unknown action")
}

// --- logging ---

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
