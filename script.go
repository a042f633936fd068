package morphtree

import (
	"encoding/json"
	"fmt"
)

// maxStepFrames bounds a single script step.
const maxStepFrames = 1 << 20

// scriptStep is one entry of a JSON gesture script.
type scriptStep struct {
	Action string `json:"action"`
	Mode   string `json:"mode,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type opKind uint8

const (
	opHand opKind = iota
	opAbsent
	opIdle
	opMode
)

// scriptOp is what the script does on one frame.
type scriptOp struct {
	kind    opKind
	gesture Gesture
	mode    Mode
}

// GestureScript replays hand frames and mode changes, one operation per
// Scene.Update, so a scene can be driven without a camera.
//
// The JSON form is {"steps": [...]}, each step an object with "action" and
// optional "frames" (default 1) and "mode":
//
//	fist, palm   a synthetic hand showing the gesture, for frames frames
//	none         a hand without usable landmarks
//	absent       no hand in view
//	wait         frames frames with no input
//	mode         Scene.SetMode with "tree" or "sphere" (one frame)
type GestureScript struct {
	ops    []scriptOp
	cursor int
}

// LoadGestureScript parses and expands a JSON gesture script.
func LoadGestureScript(data []byte) (*GestureScript, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}

	var ops []scriptOp
	for i, st := range doc.Steps {
		n := max(st.Frames, 1)
		if n > maxStepFrames {
			return nil, fmt.Errorf("parse gesture script: step %d: %d frames exceeds %d", i, n, maxStepFrames)
		}
		var op scriptOp
		switch st.Action {
		case "fist":
			op = scriptOp{kind: opHand, gesture: GestureClosedFist}
		case "palm":
			op = scriptOp{kind: opHand, gesture: GestureOpenPalm}
		case "none":
			op = scriptOp{kind: opHand, gesture: GestureNone}
		case "absent":
			op = scriptOp{kind: opAbsent}
		case "wait":
			op = scriptOp{kind: opIdle}
		case "mode":
			m, err := ParseMode(st.Mode)
			if err != nil {
				return nil, fmt.Errorf("parse gesture script: step %d: %w", i, err)
			}
			op, n = scriptOp{kind: opMode, mode: m}, 1
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		for range n {
			ops = append(ops, op)
		}
	}
	return &GestureScript{ops: ops}, nil
}

// Len returns the number of frames the script spans.
func (g *GestureScript) Len() int {
	return len(g.ops)
}

// Done reports whether every frame of the script has been played.
func (g *GestureScript) Done() bool {
	return g.cursor >= len(g.ops)
}

// SetScript attaches a script; it plays from the next Update. nil detaches.
func (s *Scene) SetScript(script *GestureScript) {
	s.script = script
}

// play runs the operation for the current frame. Hands are queued so they
// are classified by the same Update.
func (g *GestureScript) play(s *Scene) {
	if g.Done() {
		return
	}
	op := g.ops[g.cursor]
	g.cursor++
	switch op.kind {
	case opHand:
		s.InjectHands([]Hand{SyntheticHand(op.gesture)})
	case opAbsent:
		s.InjectHands(nil)
	case opMode:
		s.SetMode(op.mode)
	}
}
