package morphtree

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup drives one or more float64 fields along the same duration and
// easing. Build one with TweenFloat or TweenVec3 and either call Update each
// frame or hand it to a Timeline. Values are written straight into the
// fields; there is no global animation manager.
type TweenGroup struct {
	parts []fieldTween
	Done  bool
}

// fieldTween binds a gween tween to the field it writes.
type fieldTween struct {
	tw  *gween.Tween
	dst *float64
}

func newTweenGroup(to []float64, dst []*float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	fn = easeOrDefault(fn)
	g := &TweenGroup{parts: make([]fieldTween, len(dst))}
	for i, p := range dst {
		g.parts[i] = fieldTween{tw: gween.New(float32(*p), float32(to[i]), duration, fn), dst: p}
	}
	return g
}

// Update advances the group by dt seconds. Done is set once the last field
// reaches its end value; later calls do nothing.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	running := 0
	for _, p := range g.parts {
		v, finished := p.tw.Update(dt)
		*p.dst = float64(v)
		if !finished {
			running++
		}
	}
	g.Done = running == 0
}

// TweenFloat animates *field to the given value.
func TweenFloat(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{to}, []*float64{field}, duration, fn)
}

// TweenVec3 animates every component of *v toward to.
func TweenVec3(v *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{to.X, to.Y, to.Z}, []*float64{&v.X, &v.Y, &v.Z}, duration, fn)
}

// Timeline owns a set of one-shot TweenGroups. Update advances every active
// group once and drops the ones that finished.
type Timeline struct {
	groups []*TweenGroup
}

// Add schedules g. Nil and already finished groups are ignored.
func (tl *Timeline) Add(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	tl.groups = append(tl.groups, g)
}

// Update advances all groups by dt seconds.
func (tl *Timeline) Update(dt float32) {
	n := 0
	for _, g := range tl.groups {
		g.Update(dt)
		if !g.Done {
			tl.groups[n] = g
			n++
		}
	}
	for i := n; i < len(tl.groups); i++ {
		tl.groups[i] = nil
	}
	tl.groups = tl.groups[:n]
}

// Len returns the number of active groups.
func (tl *Timeline) Len() int {
	return len(tl.groups)
}

// Clear drops every group, leaving fields at their current values.
func (tl *Timeline) Clear() {
	for i := range tl.groups {
		tl.groups[i] = nil
	}
	tl.groups = tl.groups[:0]
}

func easeOrDefault(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.InOutCubic
	}
	return fn
}
