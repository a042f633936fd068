package morphtree

// Synthetic hand geometry in normalized image space. The wrist sits low in
// the frame and fingers fan upward.
const (
	synthWristX     = 0.5
	synthWristY     = 0.85
	synthJointReach = 0.22
	synthOpenReach  = 0.38
	synthFistReach  = 0.10
)

// SyntheticHand builds a complete 21-landmark hand that the default
// Classifier labels as g. GestureNone yields a hand with no landmarks, which
// classifies as absent.
func SyntheticHand(g Gesture) Hand {
	if g == GestureNone {
		return Hand{}
	}
	lm := make([]Landmark, LandmarkCount)
	wrist := Landmark{X: synthWristX, Y: synthWristY}
	for i := range lm {
		lm[i] = wrist
	}

	tipReach := synthOpenReach
	if g == GestureClosedFist {
		tipReach = synthFistReach
	}
	// Spread the four fingers across a 60 degree fan above the wrist.
	for f, tip := range fingerTips {
		dx := -0.15 + 0.1*float64(f)
		dy := -1.0
		joint := fingerJoints[f]
		// mcp, pip, dip, tip occupy joint-1 .. tip.
		lm[joint-1] = Landmark{X: wrist.X + dx*synthJointReach*0.5, Y: wrist.Y + dy*synthJointReach*0.5}
		lm[joint] = Landmark{X: wrist.X + dx*synthJointReach, Y: wrist.Y + dy*synthJointReach}
		lm[tip-1] = Landmark{X: wrist.X + dx*(synthJointReach+tipReach)/2, Y: wrist.Y + dy*(synthJointReach+tipReach)/2}
		lm[tip] = Landmark{X: wrist.X + dx*tipReach, Y: wrist.Y + dy*tipReach}
	}
	// Thumb chain 1..4 off to the side; the classifier ignores it.
	for i := 1; i <= 4; i++ {
		lm[i] = Landmark{X: wrist.X + 0.05*float64(i), Y: wrist.Y - 0.03*float64(i)}
	}
	return Hand{Landmarks: lm}
}

// InjectHands queues one landmark frame. Each queued frame is classified on
// a later Update (one per Update) with a scene-generated, strictly increasing
// timestamp. Intended for tests and demos without a camera; do not mix with
// SubmitHands timestamps from a real extractor.
func (s *Scene) InjectHands(hands []Hand) {
	s.injectQueue = append(s.injectQueue, HandSample{Hands: hands})
}

// InjectGesture queues frames consecutive frames showing g.
func (s *Scene) InjectGesture(g Gesture, frames int) {
	for i := 0; i < frames; i++ {
		s.InjectHands([]Hand{SyntheticHand(g)})
	}
}

// InjectAbsent queues frames consecutive frames with no hand in view.
func (s *Scene) InjectAbsent(frames int) {
	for i := 0; i < frames; i++ {
		s.InjectHands(nil)
	}
}

// processInjectedHands pops one queued frame and classifies it.
// Returns true if a frame was consumed.
func (s *Scene) processInjectedHands() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	sample := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.injectTS++
	s.SubmitHands(sample.Hands, s.injectTS)
	return true
}
