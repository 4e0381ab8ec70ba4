// Package pitch models the static playing-area geometry: the pitch
// rectangle, the two goal boxes behind each end line, and the axis-aligned
// bound pairs the ball physics reflects against.
package pitch

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Bounds is a closed interval on one axis.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p geom.XY) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Layout holds the raw geometry dimensions, normally populated from
// configuration. The level is the full world rectangle; the pitch is
// centered inside it and the goals extend past the pitch's short ends
// along the Y axis.
type Layout struct {
	LevelW     float64 `mapstructure:"levelW"`
	LevelH     float64 `mapstructure:"levelH"`
	HalfPitchW float64 `mapstructure:"halfPitchW"`
	HalfPitchH float64 `mapstructure:"halfPitchH"`
	GoalWidth  float64 `mapstructure:"goalWidth"`
	GoalDepth  float64 `mapstructure:"goalDepth"`
}

// Validate checks the layout for dimensions no playable field could have.
func (l Layout) Validate() error {
	switch {
	case l.LevelW <= 0 || l.LevelH <= 0:
		return fmt.Errorf("level dimensions must be positive, got %gx%g", l.LevelW, l.LevelH)
	case l.HalfPitchW <= 0 || l.HalfPitchH <= 0:
		return fmt.Errorf("pitch half-dimensions must be positive, got %gx%g", l.HalfPitchW, l.HalfPitchH)
	case 2*l.HalfPitchW > l.LevelW || 2*l.HalfPitchH > l.LevelH:
		return fmt.Errorf("pitch %gx%g does not fit inside level %gx%g",
			2*l.HalfPitchW, 2*l.HalfPitchH, l.LevelW, l.LevelH)
	case l.GoalWidth <= 0 || l.GoalWidth > 2*l.HalfPitchW:
		return fmt.Errorf("goal width %g must be positive and narrower than the pitch", l.GoalWidth)
	case l.GoalDepth <= 0:
		return fmt.Errorf("goal depth %g must be positive", l.GoalDepth)
	}
	return nil
}

// Field is the derived geometry the simulation works with. Build one with
// NewField; the zero value is not usable.
type Field struct {
	Center geom.XY

	PitchX Bounds
	PitchY Bounds
	GoalX  Bounds
	GoalY  Bounds

	pitchRect  Rect
	goalRects  [2]Rect
	halfPitchH float64
	halfGoalW  float64
}

// NewField derives the playing-area geometry from a validated layout.
func NewField(l Layout) (Field, error) {
	if err := l.Validate(); err != nil {
		return Field{}, err
	}

	cx, cy := l.LevelW/2, l.LevelH/2
	halfGoalW := l.GoalWidth / 2

	f := Field{
		Center:     geom.XY{X: cx, Y: cy},
		PitchX:     Bounds{Min: cx - l.HalfPitchW, Max: cx + l.HalfPitchW},
		PitchY:     Bounds{Min: cy - l.HalfPitchH, Max: cy + l.HalfPitchH},
		GoalX:      Bounds{Min: cx - halfGoalW, Max: cx + halfGoalW},
		GoalY:      Bounds{Min: cy - l.HalfPitchH - l.GoalDepth, Max: cy + l.HalfPitchH + l.GoalDepth},
		halfPitchH: l.HalfPitchH,
		halfGoalW:  halfGoalW,
	}
	f.pitchRect = Rect{
		MinX: f.PitchX.Min, MinY: f.PitchY.Min,
		MaxX: f.PitchX.Max, MaxY: f.PitchY.Max,
	}
	// Goal 0 sits above the pitch (low Y), goal 1 below it.
	f.goalRects[0] = Rect{
		MinX: f.GoalX.Min, MinY: f.GoalY.Min,
		MaxX: f.GoalX.Max, MaxY: f.GoalY.Min + l.GoalDepth,
	}
	f.goalRects[1] = Rect{
		MinX: f.GoalX.Min, MinY: f.GoalY.Max - l.GoalDepth,
		MaxX: f.GoalX.Max, MaxY: f.GoalY.Max,
	}
	return f, nil
}

// BoundsX selects the X-axis bound pair for a ball at height y. A ball that
// is vertically past the end line is inside a goal mouth and can only move
// between the goal posts; otherwise it can reach the pitch sides.
func (f Field) BoundsX(y float64) Bounds {
	if abs(y-f.Center.Y) > f.halfPitchH {
		return f.GoalX
	}
	return f.PitchX
}

// BoundsY selects the Y-axis bound pair for a ball at x. A ball horizontally
// between the posts can travel to the back of the net; otherwise it stops at
// the end line.
func (f Field) BoundsY(x float64) Bounds {
	if abs(x-f.Center.X) < f.halfGoalW {
		return f.GoalY
	}
	return f.PitchY
}

// InPlay reports whether p is inside the legal playing area: the pitch
// rectangle or either goal box. Only consulted while the ball is being
// dribbled.
func (f Field) InPlay(p geom.XY) bool {
	return f.pitchRect.Contains(p) || f.goalRects[0].Contains(p) || f.goalRects[1].Contains(p)
}

// GoalCenter returns the center of the goal mouth defended by the given
// end (0 = low Y, 1 = high Y).
func (f Field) GoalCenter(end int) geom.XY {
	if end == 0 {
		return geom.XY{X: f.Center.X, Y: f.PitchY.Min}
	}
	return geom.XY{X: f.Center.X, Y: f.PitchY.Max}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
