// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

type KeeperState uint8

const (
	KeeperTendGoal KeeperState = iota
	KeeperReturnToHome
	KeeperInterceptBall
	KeeperPutBallBackInPlay
	keeperStateCount
)

func (s KeeperState) String() string {
	return keeperStates[s].name
}

var keeperStates [keeperStateCount]state

func init() {
	keeperStates = [keeperStateCount]state{
		KeeperTendGoal: {
			name:    "TendGoal",
			enter:   tendGoalEnter,
			execute: tendGoalExecute,
			exit:    tendGoalExit,
			message: keeperMessage,
		},
		KeeperReturnToHome: {
			name:    "ReturnToHome",
			enter:   keeperReturnToHomeEnter,
			execute: keeperReturnToHomeExecute,
			exit:    keeperReturnToHomeExit,
			message: keeperMessage,
		},
		KeeperInterceptBall: {
			name:    "InterceptBall",
			enter:   interceptBallEnter,
			execute: interceptBallExecute,
			exit:    interceptBallExit,
			message: keeperMessage,
		},
		KeeperPutBallBackInPlay: {
			name:    "PutBallBackInPlay",
			enter:   putBallBackInPlayEnter,
			execute: putBallBackInPlayExecute,
			message: keeperMessage,
		},
	}
}

func (p *Player) setKeeperState(next KeeperState) {
	p.transition(func() {
		p.keeperState = next
	})
}

// canCatch is false right after the keeper kicked, so it does not catch its own pass.
func (p *Player) canCatch() bool {
	return p.readyToKick && p.BallWithinKeeperRange()
}

// catch traps the ball and starts putting it back in play.
func (p *Player) catch() {
	p.ball().Trap()
	p.match().KeeperHasBall = true
	p.setKeeperState(KeeperPutBallBackInPlay)
}

func tendGoalEnter(p *Player) {
	p.stop()
	p.Interpose = true
	p.Target = p.interposeTarget()
}

func tendGoalExecute(p *Player) {
	if p.canCatch() {
		p.catch()
		return
	}

	team := p.team
	if p.BallWithinInterceptRange() && !team.opponents.InControl() {
		p.setKeeperState(KeeperInterceptBall)
		return
	}

	if p.IsTooFarFromGoalMouth() && team.InControl() {
		p.setKeeperState(KeeperReturnToHome)
	}
}

func tendGoalExit(p *Player) {
	p.Interpose = false
}

func keeperReturnToHomeEnter(p *Player) {
	p.seekTo(p.Home)
}

func keeperReturnToHomeExecute(p *Player) {
	if p.IsAtHome() || p.team.opponents.InControl() {
		p.setKeeperState(KeeperTendGoal)
	}
}

func keeperReturnToHomeExit(p *Player) {
	p.Seek = false
}

func interceptBallEnter(p *Player) {
	p.trackBall = false
	p.Pursuit = true
}

func interceptBallExecute(p *Player) {
	if p.IsTooFarFromGoalMouth() && !p.IsClosestPlayerOnPitchToBall() {
		p.setKeeperState(KeeperReturnToHome)
		return
	}

	if p.canCatch() {
		p.catch()
	}
}

func interceptBallExit(p *Player) {
	p.Pursuit = false
}

func putBallBackInPlayEnter(p *Player) {
	m := p.match()
	team := p.team

	team.SetControllingPlayer(p)
	team.sendFieldPlayersHome()
	team.opponents.sendFieldPlayersHome()

	p.track()
	p.holdUntil = m.scheduler.Now() + m.params.KeeperHoldTime
}

func putBallBackInPlayExecute(p *Player) {
	m := p.match()
	if m.scheduler.Now() < p.holdUntil {
		return
	}

	params := p.params()
	receiver, target, ok := p.team.FindPass(p, params.MaxPassPower, params.KeeperMinPassDistance)
	if !ok {
		p.track()
		return
	}

	p.kick(target.Sub(m.Ball.Position), params.MaxPassPower)
	m.KeeperHasBall = false
	p.send(receiver, ReceiveBall, target)
	p.setKeeperState(KeeperTendGoal)
}

func keeperMessage(p *Player, message Message) bool {
	switch message.Kind {
	case GoHome:
		p.Target = p.Home
		p.setKeeperState(KeeperReturnToHome)
	case ReceiveBall:
		p.setKeeperState(KeeperInterceptBall)
	default:
		return false
	}
	return true
}
