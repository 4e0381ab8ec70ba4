package sim

import (
	"github.com/pitchside/engine/internal/vec"
)

// Targetable reports whether target is a tactically sound pass candidate
// for the given source player: on the same team, within pass range, roughly
// in front of the source, and — for computer-controlled sources — not
// behind an opposing player who could cut the ball out.
func (m *Match) Targetable(target Target, source PlayerID) bool {
	src := m.playerAt(source)
	return targetable(target, src, m.Players, m.Teams[src.Team].Human, m.tun)
}

func targetable(target Target, source *Player, players []Player, sourceHuman bool, tun Tuning) bool {
	v0, d0 := vec.SafeNormalize(target.TargetPos().Sub(source.Pos))

	// Computer sources refuse passes that look interceptable: any opposing
	// player closer than the target and within the same narrow cone kills
	// the pass. Human sources are trusted to judge interceptions
	// themselves.
	if !sourceHuman {
		for i := range players {
			p := &players[i]
			v1, d1 := vec.SafeNormalize(p.Pos.Sub(source.Pos))
			if p.Team != target.TargetTeam() && d1 > 0 && d1 < d0 && v0.Dot(v1) > tun.ConeThreshold {
				return false
			}
		}
	}

	// d0 > 0 also rejects a target coincident with the source, for which
	// v0 is the zero vector and no direction exists.
	return target.TargetTeam() == source.Team &&
		d0 > 0 && d0 < tun.PassRange &&
		v0.Dot(vec.AngleToVec(source.Dir)) > tun.ConeThreshold
}
