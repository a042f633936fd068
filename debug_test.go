package morphtree

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestDebugMode_LogsFrameStats(t *testing.T) {
	s, _ := newTestScene(t)
	var buf bytes.Buffer
	s.SetLogger(debugLogger(&buf))
	s.SetDebugMode(true)

	s.Update(1.0 / 60)

	out := buf.String()
	if !strings.Contains(out, "msg=frame") {
		t.Fatalf("expected a frame record, got: %s", out)
	}
	for _, key := range []string{"particles=200", "decorations=40", "mode=tree"} {
		if !strings.Contains(out, key) {
			t.Errorf("frame record missing %q: %s", key, out)
		}
	}
}

func TestDebugMode_LogsModeChange(t *testing.T) {
	s, _ := newTestScene(t)
	var buf bytes.Buffer
	s.SetLogger(debugLogger(&buf))
	s.SetDebugMode(true)

	s.SetMode(ModeSphere)
	out := buf.String()
	if !strings.Contains(out, `msg="mode change"`) || !strings.Contains(out, "to=sphere") {
		t.Errorf("expected a mode change record, got: %s", out)
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	s, _ := newTestScene(t)
	var buf bytes.Buffer
	s.SetLogger(debugLogger(&buf))

	s.SetMode(ModeSphere)
	s.Update(1.0 / 60)
	if buf.Len() != 0 {
		t.Errorf("release mode should not log, got: %s", buf.String())
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetDebugMode(true)
	if !s.debug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug {
		t.Error("debug should be false")
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetLogger(nil)
	if s.logger != slog.Default() {
		t.Error("nil logger should restore slog.Default")
	}
}
