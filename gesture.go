package morphtree

import "math"

// LandmarkCount is the number of landmarks in a complete hand.
const LandmarkCount = 21

// Landmark indices used by the classifier.
const (
	landmarkWrist = 0
)

var (
	fingerTips   = [4]int{8, 12, 16, 20} // index, middle, ring, pinky
	fingerJoints = [4]int{6, 10, 14, 18} // matching proximal joints
)

// Landmark is one hand keypoint. X and Y are normalized image coordinates in
// [0, 1]; Z is relative depth.
type Landmark struct {
	X, Y, Z float64
}

// Hand is a single detected hand as delivered by a landmark extractor.
type Hand struct {
	Landmarks []Landmark
}

// complete reports whether the hand carries every landmark with real values.
func (h Hand) complete() bool {
	if len(h.Landmarks) < LandmarkCount {
		return false
	}
	for _, l := range h.Landmarks[:LandmarkCount] {
		if math.IsNaN(l.X) || math.IsNaN(l.Y) || math.IsInf(l.X, 0) || math.IsInf(l.Y, 0) {
			return false
		}
	}
	return true
}

// Result is the output of one classification tick.
type Result struct {
	Gesture Gesture
	// Present is true whenever a complete hand was seen on a new frame,
	// regardless of the label.
	Present bool
}

// GestureConfig tunes the curl heuristic and label stabilization.
type GestureConfig struct {
	// CurlSlack is the tolerance on tip-versus-joint distance. A finger is
	// curled when dTip < dJoint * CurlSlack.
	CurlSlack float64 `yaml:"curl_slack"`
	// MinCurled is the number of curled fingers (out of 4) for a fist.
	MinCurled int `yaml:"min_curled"`
	// StableFrames is how many consecutive fresh results must agree before a
	// label is acted on. 1 acts immediately.
	StableFrames int `yaml:"stable_frames"`
}

// DefaultGestureConfig returns the reference classifier tuning.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		CurlSlack:    1.2,
		MinCurled:    3,
		StableFrames: 1,
	}
}

// Validate reports the first invalid field.
func (c GestureConfig) Validate() error {
	switch {
	case !(c.CurlSlack > 0):
		return configErr("gesture.curl_slack", "must be positive")
	case c.MinCurled < 1 || c.MinCurled > len(fingerTips):
		return configErr("gesture.min_curled", "must be within [1, 4]")
	case c.StableFrames < 1:
		return configErr("gesture.stable_frames", "must be at least 1")
	}
	return nil
}

// Classifier turns per-frame hand landmarks into an open-palm / closed-fist
// label. It only looks at the first hand and keeps the last processed frame
// timestamp so a frame is never classified twice.
type Classifier struct {
	config  GestureConfig
	lastTS  int64
	hasLast bool
}

// NewClassifier creates a Classifier with the given tuning.
func NewClassifier(cfg GestureConfig) *Classifier {
	return &Classifier{config: cfg}
}

// Classify labels the first hand of a frame. Frames whose timestamp does not
// advance past the last processed one are treated as "no new frame" and yield
// a zero Result, as do empty or incomplete hands.
func (c *Classifier) Classify(hands []Hand, timestamp int64) Result {
	if c.hasLast && timestamp <= c.lastTS {
		return Result{}
	}
	c.lastTS = timestamp
	c.hasLast = true

	if len(hands) == 0 || !hands[0].complete() {
		return Result{}
	}
	return Result{Gesture: c.label(hands[0].Landmarks), Present: true}
}

// Reset forgets the last processed timestamp.
func (c *Classifier) Reset() {
	c.lastTS = 0
	c.hasLast = false
}

func (c *Classifier) label(lm []Landmark) Gesture {
	wrist := lm[landmarkWrist]
	curled := 0
	for i, tip := range fingerTips {
		dTip := planarDist(lm[tip], wrist)
		dPip := planarDist(lm[fingerJoints[i]], wrist)
		if dTip < dPip*c.config.CurlSlack {
			curled++
		}
	}
	if curled >= c.config.MinCurled {
		return GestureClosedFist
	}
	return GestureOpenPalm
}

func planarDist(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Stabilizer debounces classifier output. A label is reported only after it
// has been seen on StableFrames consecutive present results. Absent results
// neither extend nor break the run.
type Stabilizer struct {
	need   int
	label  Gesture
	run    int
	stable Gesture
}

// NewStabilizer creates a Stabilizer requiring n agreeing results. n < 1 is
// treated as 1.
func NewStabilizer(n int) *Stabilizer {
	if n < 1 {
		n = 1
	}
	return &Stabilizer{need: n}
}

// Push feeds one classifier result and returns the current stable label.
// changed is true on the tick the stable label switches.
func (s *Stabilizer) Push(r Result) (label Gesture, changed bool) {
	if !r.Present || r.Gesture == GestureNone {
		return s.stable, false
	}
	if r.Gesture == s.label {
		s.run++
	} else {
		s.label = r.Gesture
		s.run = 1
	}
	if s.run >= s.need && s.stable != s.label {
		s.stable = s.label
		return s.stable, true
	}
	return s.stable, false
}

// Stable returns the last stabilized label.
func (s *Stabilizer) Stable() Gesture {
	return s.stable
}
