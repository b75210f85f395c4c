// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
)

type FieldState uint8

const (
	FieldWait FieldState = iota
	FieldChaseBall
	FieldKickBall
	FieldDribble
	FieldReceiveBall
	FieldReturnToHome
	FieldSupportAttacker
	fieldStateCount
)

func (s FieldState) String() string {
	return fieldStates[s].name
}

// Initialized in init to break the reference cycle between the table and the
// functions that change state.
var fieldStates [fieldStateCount]state

func init() {
	fieldStates = [fieldStateCount]state{
		FieldWait: {
			name:    "Wait",
			enter:   waitEnter,
			execute: waitExecute,
			message: fieldMessage,
		},
		FieldChaseBall: {
			name:    "ChaseBall",
			enter:   chaseBallEnter,
			execute: chaseBallExecute,
			exit:    chaseBallExit,
			message: fieldMessage,
		},
		FieldKickBall: {
			name:    "KickBall",
			enter:   kickBallEnter,
			execute: kickBallExecute,
			message: fieldMessage,
		},
		FieldDribble: {
			name:    "Dribble",
			enter:   dribbleEnter,
			execute: dribbleExecute,
			message: fieldMessage,
		},
		FieldReceiveBall: {
			name:    "ReceiveBall",
			enter:   receiveBallEnter,
			execute: receiveBallExecute,
			exit:    receiveBallExit,
			message: fieldMessage,
		},
		FieldReturnToHome: {
			name:    "ReturnToHome",
			enter:   returnToHomeEnter,
			execute: returnToHomeExecute,
			exit:    returnToHomeExit,
			message: fieldMessage,
		},
		FieldSupportAttacker: {
			name:    "SupportAttacker",
			enter:   supportAttackerEnter,
			execute: supportAttackerExecute,
			exit:    supportAttackerExit,
			message: fieldMessage,
		},
	}
}

func (p *Player) setFieldState(next FieldState) {
	p.transition(func() {
		p.fieldState = next
	})
}

// canChase is shared by Wait and ReturnToHome.
func (p *Player) canChase() bool {
	m := p.match()
	return m.GameOn && p.IsClosestTeamMemberToBall() && p.team.receiving == nil && !m.KeeperHasBall
}

func waitEnter(p *Player) {
	if p.IsAtTarget() {
		p.track()
	} else {
		p.seekTo(p.Home)
	}
}

func waitExecute(p *Player) {
	if p.IsAtTarget() {
		p.track()
	} else {
		p.seekTo(p.Target)
	}

	team := p.team
	if team.InControl() && !p.IsControllingPlayer() && p.IsAheadOfAttacker() {
		team.RequestPass(p)
		return
	}

	if p.canChase() {
		p.setFieldState(FieldChaseBall)
	}
}

func chaseBallEnter(p *Player) {
	p.trackBall = false
	p.Pursuit = true
}

func chaseBallExecute(p *Player) {
	if p.BallWithinKickingRange() {
		p.setFieldState(FieldKickBall)
		return
	}
	if p.IsClosestTeamMemberToBall() {
		return
	}
	p.setFieldState(FieldReturnToHome)
}

func chaseBallExit(p *Player) {
	p.Pursuit = false
}

func kickBallEnter(p *Player) {
	p.team.SetControllingPlayer(p)
	p.stop()
	if !p.readyToKick {
		p.setFieldState(FieldChaseBall)
	}
}

func kickBallExecute(p *Player) {
	m := p.match()
	team := p.team
	params := p.params()
	ball := m.Ball

	toBall := ball.Position.Sub(p.Position).Norm()
	dot := p.Heading.Dot(toBall)

	if team.receiving != nil || m.KeeperHasBall || dot < 0 {
		p.setFieldState(FieldChaseBall)
		return
	}

	shotPower := params.MaxShotPower * dot
	target, ok := team.CanShoot(ball.Position, shotPower)
	if ok || prob(m.rand, params.PotShotChance) {
		p.kick(target.Sub(ball.Position), shotPower)
		p.setFieldState(FieldWait)
		team.RequestSupport(p)
		return
	}

	passPower := params.MaxPassPower * dot
	receiver, target, ok := team.FindPass(p, passPower, params.MinPassDistance)
	if ok && p.IsThreatened() {
		p.kick(target.Sub(ball.Position), passPower)
		p.send(receiver, ReceiveBall, target)
		p.setFieldState(FieldWait)
		team.RequestSupport(p)
		return
	}

	team.RequestSupport(p)
	p.setFieldState(FieldDribble)
}

func dribbleEnter(p *Player) {
	p.team.SetControllingPlayer(p)
}

func dribbleExecute(p *Player) {
	params := p.params()
	facing := p.team.opponentGoal.Facing

	if facing.Dot(p.Heading) > 0 {
		// Facing the own goal, turn a little toward the opponent goal.
		angle := world.Pi / 5
		if p.Heading.Cross(facing.Rot180()) < 0 {
			angle = -angle
		}
		p.Heading = p.Heading.Rotate(angle)
		p.kick(p.Heading, params.DribbleTurnPower)
	} else {
		p.kick(facing.Rot180(), params.DribblePower)
	}

	p.setFieldState(FieldChaseBall)
}

func receiveBallEnter(p *Player) {
	team := p.team
	params := p.params()

	team.receiving = p
	team.SetControllingPlayer(p)

	p.trackBall = false
	if (p.IsInHotPosition() || prob(p.match().rand, params.ArriveChance)) &&
		!team.opponents.IsOpponentWithinRadius(p.Position, params.PassThreatRadius) {
		p.Seek = true
	} else {
		p.Pursuit = true
	}
}

func receiveBallExecute(p *Player) {
	if p.BallWithinReceivingRange() || !p.team.InControl() {
		p.setFieldState(FieldChaseBall)
		return
	}

	// Pursuit moves Target with the ball, so either mode stops once there.
	if (p.Seek || p.Pursuit) && p.IsAtTarget() {
		p.track()
	}
}

func receiveBallExit(p *Player) {
	p.Seek = false
	p.Pursuit = false
	p.trackBall = false
	if p.team.receiving == p {
		p.team.receiving = nil
	}
}

func supportAttackerEnter(p *Player) {
	p.seekTo(p.team.SupportSpot())
}

func supportAttackerExecute(p *Player) {
	team := p.team
	params := p.params()

	if !team.InControl() {
		p.setFieldState(FieldReturnToHome)
		return
	}

	if spot := team.SupportSpot(); spot != p.Target {
		p.seekTo(spot)
	}

	if _, ok := team.CanShoot(p.Position, params.MaxShotPower); ok {
		team.RequestPass(p)
	}

	if p.IsAtTarget() {
		p.track()
		if !p.IsThreatened() {
			team.RequestPass(p)
		}
	}
}

func supportAttackerExit(p *Player) {
	p.Seek = false
	if p.team.supporting == p {
		p.team.supporting = nil
	}
}

func returnToHomeEnter(p *Player) {
	p.seekTo(p.Home)
}

func returnToHomeExecute(p *Player) {
	m := p.match()

	if m.GameOn {
		if p.canChase() {
			p.setFieldState(FieldChaseBall)
			return
		}
		if p.IsAtHome() {
			p.Target = p.Position
			p.setFieldState(FieldWait)
		}
	} else if p.IsAtTarget() {
		p.setFieldState(FieldWait)
	}
}

func returnToHomeExit(p *Player) {
	p.Seek = false
}

func fieldMessage(p *Player, message Message) bool {
	switch message.Kind {
	case ReceiveBall:
		p.Target = message.Target
		p.setFieldState(FieldReceiveBall)
	case SupportAttacker:
		if p.fieldState == FieldSupportAttacker {
			return true
		}
		// A pass is on its way, the receiver stays on it.
		if p.fieldState == FieldReceiveBall {
			if p.team.supporting == p {
				p.team.supporting = nil
			}
			return true
		}
		p.Target = p.team.SupportSpot()
		p.setFieldState(FieldSupportAttacker)
	case GoHome:
		p.Target = p.Home
		p.setFieldState(FieldReturnToHome)
	case Wait:
		p.setFieldState(FieldWait)
	case PassToMe:
		return passToMe(p, message.Sender)
	default:
		return false
	}
	return true
}

// passToMe is handled by the controlling player.
func passToMe(p *Player, requester *Player) bool {
	team := p.team
	if requester == nil || team.receiving != nil || !p.BallWithinKickingRange() {
		return false
	}

	ball := p.ball()
	p.kick(requester.Position.Sub(ball.Position), p.params().MaxPassPower)
	p.send(requester, ReceiveBall, requester.Position)
	p.setFieldState(FieldWait)
	team.RequestSupport(p)
	return true
}
