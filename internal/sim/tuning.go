package sim

import "fmt"

// Tuning holds the fixed numeric constants governing ball physics and the
// pass heuristics. Values come from configuration and are validated once at
// startup; the simulation never range-checks them mid-tick.
type Tuning struct {
	// Drag is the per-tick multiplicative velocity decay applied to the
	// free ball on both axes.
	Drag float64 `mapstructure:"drag"`
	// KickStrength is the initial velocity of a deliberate pass or shot.
	KickStrength float64 `mapstructure:"kickStrength"`
	// LooseBallKick is the impulse given to the ball when its carrier is
	// forced off the pitch and loses possession.
	LooseBallKick float64 `mapstructure:"looseBallKick"`
	// DribbleDistX/Y are the carry offsets ahead of the owner. They differ
	// so the carried ball traces an ellipse rather than a circle, matching
	// the not-quite-top-down perspective. DribbleDistX doubles as the
	// possession contact distance.
	DribbleDistX float64 `mapstructure:"dribbleDistX"`
	DribbleDistY float64 `mapstructure:"dribbleDistY"`
	// PassRange caps how far away a pass target may be, in world units.
	PassRange float64 `mapstructure:"passRange"`
	// ConeThreshold is the cosine-similarity floor for both the
	// facing-toward-target check and the interceptor check (0.8 ≈ a 37°
	// half-angle cone).
	ConeThreshold float64 `mapstructure:"coneThreshold"`
	// DispossessHoldoff is the frame count stamped on a player who loses
	// the ball, blocking instant reacquisition.
	DispossessHoldoff int `mapstructure:"dispossessHoldoff"`
	// KickHoldoff is the shorter stamp applied after a voluntary kick.
	KickHoldoff int `mapstructure:"kickHoldoff"`
	// PlayerSpeed is how far a computer-controlled player moves per tick.
	PlayerSpeed float64 `mapstructure:"playerSpeed"`
}

// DefaultTuning returns the standard match constants.
func DefaultTuning() Tuning {
	return Tuning{
		Drag:              0.98,
		KickStrength:      11.5,
		LooseBallKick:     3,
		DribbleDistX:      18,
		DribbleDistY:      16,
		PassRange:         300,
		ConeThreshold:     0.8,
		DispossessHoldoff: 60,
		KickHoldoff:       10,
		PlayerSpeed:       2,
	}
}

// Validate rejects constants outside their meaningful ranges. A failure
// here is a configuration error and must abort startup.
func (t Tuning) Validate() error {
	switch {
	case t.Drag <= 0 || t.Drag >= 1:
		return fmt.Errorf("drag must be in (0, 1), got %g", t.Drag)
	case t.KickStrength <= 0:
		return fmt.Errorf("kick strength must be positive, got %g", t.KickStrength)
	case t.LooseBallKick <= 0:
		return fmt.Errorf("loose-ball kick must be positive, got %g", t.LooseBallKick)
	case t.DribbleDistX <= 0 || t.DribbleDistY <= 0:
		return fmt.Errorf("dribble distances must be positive, got %g/%g", t.DribbleDistX, t.DribbleDistY)
	case t.PassRange <= 0:
		return fmt.Errorf("pass range must be positive, got %g", t.PassRange)
	case t.ConeThreshold <= 0 || t.ConeThreshold >= 1:
		return fmt.Errorf("cone threshold must be in (0, 1), got %g", t.ConeThreshold)
	case t.DispossessHoldoff <= 0:
		return fmt.Errorf("dispossess hold-off must be positive, got %d", t.DispossessHoldoff)
	case t.KickHoldoff <= 0:
		return fmt.Errorf("kick hold-off must be positive, got %d", t.KickHoldoff)
	case t.PlayerSpeed <= 0:
		return fmt.Errorf("player speed must be positive, got %g", t.PlayerSpeed)
	}
	return nil
}

// Difficulty selects how long the ball's own hold-off timer runs after a
// possession change, limiting how quickly computer-controlled players can
// pass the ball on.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// HoldoffFrames returns the ball hold-off applied on acquisition.
func (d Difficulty) HoldoffFrames() int {
	switch d {
	case Easy:
		return 120
	case Medium:
		return 90
	case Hard:
		return 60
	}
	panic(fmt.Sprintf("sim: unknown difficulty %d", int(d)))
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a config string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}
