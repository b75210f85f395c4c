// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"github.com/chewxy/math32"
)

// receiverInterceptScale is the share of the distance a receiver could run while the
// pass travels that is used to widen the set of candidate targets.
const receiverInterceptScale = 0.3

// CanShoot samples random targets in the opponent goal mouth and returns the first one
// the ball reaches from `from` with power without any opponent being able to cut it off.
// If none is found, target is the last sample.
func (t *Team) CanShoot(from world.Vec2f, power float32) (target world.Vec2f, ok bool) {
	m := t.match
	goal := t.opponentGoal
	margin := m.Ball.Radius
	low := goal.Position.Y - goal.Height*0.5 + margin
	high := goal.Position.Y + goal.Height*0.5 - margin

	target = goal.Position
	for i := 0; i < m.params.ShotAttempts; i++ {
		target = world.Vec2f{X: goal.Position.X, Y: between(m.rand, low, high)}

		if m.Ball.TimeToCoverDistance(from.Distance(target), power) < 0 {
			continue
		}
		if t.IsPassSafeFromAllOpponents(from, target, nil, power) {
			return target, true
		}
	}
	return target, false
}

// IsPassSafeFromOpponent is true if opponent cannot reach the line of a pass from `from`
// to `to` before the ball passes it. receiver may be nil.
func (t *Team) IsPassSafeFromOpponent(from, to world.Vec2f, receiver, opponent *Player, power float32) bool {
	axis := to.Sub(from).Norm()
	local := opponent.Position.ToLocal(from, axis)

	// Behind the passer.
	if local.X < 0 {
		return true
	}

	// Farther away than the target.
	if from.DistanceSquared(to) < opponent.Position.DistanceSquared(from) {
		if receiver == nil {
			return true
		}
		if to.DistanceSquared(opponent.Position) > to.DistanceSquared(receiver.Position) {
			return true
		}
	}

	time := t.match.Ball.TimeToCoverDistance(local.X, power)
	if time < 0 {
		// The ball rests before passing the opponent.
		return false
	}
	return math32.Abs(local.Y) >= opponent.Speed*time
}

func (t *Team) IsPassSafeFromAllOpponents(from, to world.Vec2f, receiver *Player, power float32) bool {
	for _, opponent := range t.opponents.Players {
		if !t.IsPassSafeFromOpponent(from, to, receiver, opponent, power) {
			return false
		}
	}
	return true
}

// GetBestPassToReceiver considers the receiver position and the two points where
// tangents from the ball touch the circle the receiver could reach while the pass
// travels. It returns the safe candidate inside the pitch nearest the opponent goal line.
func (t *Team) GetBestPassToReceiver(passer, receiver *Player, power float32) (target world.Vec2f, ok bool) {
	m := t.match
	ball := m.Ball

	time := ball.TimeToCoverDistance(ball.Position.Distance(receiver.Position), power)
	if time < 0 {
		return
	}

	interceptRange := time * receiver.Speed * receiverInterceptScale
	candidates := make([]world.Vec2f, 0, 3)
	if a, b, tangent := ball.Position.TangentPoints(receiver.Position, interceptRange); tangent {
		candidates = append(candidates, a, b)
	}
	candidates = append(candidates, receiver.Position)

	goalX := t.opponentGoal.Position.X
	best := float32(math32.MaxFloat32)
	for _, candidate := range candidates {
		distance := math32.Abs(candidate.X - goalX)
		if distance >= best || !m.Pitch.Contains(candidate) {
			continue
		}
		if t.IsPassSafeFromAllOpponents(ball.Position, candidate, receiver, power) {
			best = distance
			target = candidate
			ok = true
		}
	}
	return
}

// FindPass returns the field player farther than minDistance from passer whose best
// pass target is nearest the opponent goal line.
func (t *Team) FindPass(passer *Player, power, minDistance float32) (receiver *Player, target world.Vec2f, ok bool) {
	goalX := t.opponentGoal.Position.X
	best := float32(math32.MaxFloat32)

	for _, p := range t.Players {
		if p == passer || p.Role == Goalkeeper {
			continue
		}
		if passer.Position.DistanceSquared(p.Position) <= minDistance*minDistance {
			continue
		}

		candidate, found := t.GetBestPassToReceiver(passer, p, power)
		if !found {
			continue
		}
		if distance := math32.Abs(candidate.X - goalX); distance < best {
			best = distance
			receiver = p
			target = candidate
			ok = true
		}
	}
	return
}

// SupportSpot is the last calculated best supporting position.
func (t *Team) SupportSpot() world.Vec2f {
	return t.supportSpots.Best()
}

func (t *Team) SupportSpots() *SupportSpots {
	return t.supportSpots
}

// CalculateSupportingPlayer returns the attacker other than the controlling player
// nearest the best support spot, or nil.
func (t *Team) CalculateSupportingPlayer() *Player {
	spot := t.SupportSpot()

	var best *Player
	var closest float32
	for _, p := range t.Players {
		if p.Role != Attacker || p == t.controlling {
			continue
		}
		if d := p.Position.DistanceSquared(spot); best == nil || d < closest {
			best = p
			closest = d
		}
	}
	return best
}

// RequestPass asks the controlling player for the ball on behalf of requester, unless
// the pass would be intercepted.
func (t *Team) RequestPass(requester *Player) {
	controlling := t.controlling
	if controlling == nil || controlling == requester {
		return
	}
	if !t.IsPassSafeFromAllOpponents(controlling.Position, requester.Position, requester, t.match.params.MaxPassPower) {
		return
	}
	requester.send(controlling, PassToMe, requester.Position)
}

// RequestSupport makes sure the best placed attacker supports requester, sending a
// replaced supporter home.
func (t *Team) RequestSupport(requester *Player) {
	best := t.CalculateSupportingPlayer()
	if best == nil || best == t.supporting {
		return
	}

	if t.supporting != nil {
		requester.send(t.supporting, GoHome, t.supporting.Home)
	}
	t.supporting = best
	requester.send(best, SupportAttacker, t.SupportSpot())
}
