// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"fmt"
	"github.com/SoftbearStudios/soccer/server/world"
)

type TeamState uint8

const (
	PrepareForKickOff TeamState = iota
	Defending
	Attacking
	teamStateCount
)

func (s TeamState) String() string {
	return teamStates[s].name
}

type teamState struct {
	name    string
	enter   func(t *Team)
	execute func(t *Team)
	exit    func(t *Team)
}

var teamStates [teamStateCount]teamState

func init() {
	teamStates = [teamStateCount]teamState{
		PrepareForKickOff: {
			name:    "PrepareForKickOff",
			enter:   prepareForKickOffEnter,
			execute: prepareForKickOffExecute,
			exit:    prepareForKickOffExit,
		},
		Defending: {
			name:    "Defending",
			enter:   defendingEnter,
			execute: defendingExecute,
		},
		Attacking: {
			name:    "Attacking",
			enter:   attackingEnter,
			execute: attackingExecute,
			exit:    attackingExit,
		},
	}
}

// Team owns its players. The player references are nil or point into Players.
type Team struct {
	Left    bool
	Name    string
	Players []*Player

	goal         *world.Goal
	opponentGoal *world.Goal
	opponents    *Team
	match        *Match
	state        TeamState

	controlling *Player
	receiving   *Player
	supporting  *Player
	closest     *Player

	supportSpots *SupportSpots
	supportTimer TimerID
}

func newTeam(m *Match, left bool, name string, goal, opponentGoal *world.Goal) *Team {
	t := &Team{
		Left:         left,
		Name:         name,
		goal:         goal,
		opponentGoal: opponentGoal,
		match:        m,
	}

	params := &m.params
	for i, slot := range params.Formation {
		if !left {
			slot.Defending.X = params.mirrorX(slot.Defending.X)
			slot.Attacking.X = params.mirrorX(slot.Attacking.X)
		}

		speed := params.PlayerSpeed
		if slot.Role == Goalkeeper {
			speed = params.KeeperSpeed
		}

		p := &Player{
			Index:       i,
			Name:        randomPlayerName(m.rand),
			Role:        slot.Role,
			Position:    slot.Defending,
			Heading:     opponentGoal.Facing.Rot180(),
			Speed:       speed,
			Radius:      params.PlayerRadius,
			Home:        slot.Defending,
			Target:      slot.Defending,
			slot:        slot,
			team:        t,
			fieldState:  FieldReturnToHome,
			keeperState: KeeperReturnToHome,
			readyToKick: true,
		}
		p.label = fmt.Sprintf("%s #%d %s", t.Side(), i, p.Name)
		t.Players = append(t.Players, p)
	}

	t.supportSpots = newSupportSpots(t)
	return t
}

// Side is "left" or "right", after the goal the team defends.
func (t *Team) Side() string {
	if t.Left {
		return "left"
	}
	return "right"
}

// SetOpponents links two teams after both exist.
func (t *Team) SetOpponents(opponents *Team) {
	t.opponents = opponents
	opponents.opponents = t
}

func (t *Team) Opponents() *Team {
	return t.opponents
}

func (t *Team) Goal() *world.Goal {
	return t.goal
}

func (t *Team) OpponentGoal() *world.Goal {
	return t.opponentGoal
}

func (t *Team) State() TeamState {
	return t.state
}

// Score is the number of goals conceded by the opponents.
func (t *Team) Score() int {
	return t.opponentGoal.Scored
}

func (t *Team) Keeper() *Player {
	for _, p := range t.Players {
		if p.Role == Goalkeeper {
			return p
		}
	}
	return nil
}

func (t *Team) ControllingPlayer() *Player { return t.controlling }
func (t *Team) ReceivingPlayer() *Player   { return t.receiving }
func (t *Team) SupportingPlayer() *Player  { return t.supporting }
func (t *Team) ClosestPlayer() *Player     { return t.closest }

func (t *Team) InControl() bool {
	return t.controlling != nil
}

// SetControllingPlayer gives this team control, taking it from the opponents.
func (t *Team) SetControllingPlayer(p *Player) {
	t.controlling = p
	if p != nil && t.opponents != nil {
		t.opponents.controlling = nil
	}
}

func (t *Team) clearReferences() {
	t.controlling = nil
	t.receiving = nil
	t.supporting = nil
	t.closest = nil
}

// calculateClosestPlayerToBall considers field players only, the goalkeeper guards
// the goal instead of chasing.
func (t *Team) calculateClosestPlayerToBall() {
	t.closest = nil
	var closest float32
	for _, p := range t.Players {
		if p.Role == Goalkeeper {
			continue
		}
		if d := p.distanceSquaredToBall(); t.closest == nil || d < closest {
			t.closest = p
			closest = d
		}
	}
}

// IsOpponentWithinRadius is true if any player of t is within radius of point.
func (t *Team) IsOpponentWithinRadius(point world.Vec2f, radius float32) bool {
	for _, p := range t.Players {
		if p.Position.DistanceSquared(point) < radius*radius {
			return true
		}
	}
	return false
}

func (t *Team) AllPlayersAtHome() bool {
	for _, p := range t.Players {
		if !p.IsAtHome() {
			return false
		}
	}
	return true
}

func (t *Team) setState(next TeamState) {
	from := &teamStates[t.state]
	if from.exit != nil {
		from.exit(t)
	}
	t.state = next
	to := &teamStates[next]
	t.match.observer.Transition(t.Side(), from.name, to.name)
	if to.enter != nil {
		to.enter(t)
	}
}

func (t *Team) update() {
	t.calculateClosestPlayerToBall()
	if s := &teamStates[t.state]; s.execute != nil {
		s.execute(t)
	}
}

func (t *Team) sendFieldPlayersHome() {
	for _, p := range t.Players {
		if p.Role != Goalkeeper {
			t.sendTo(p, GoHome, p.Home)
		}
	}
}

func (t *Team) sendAllPlayersHome() {
	for _, p := range t.Players {
		t.sendTo(p, GoHome, p.Home)
	}
}

// sendTo publishes a message on behalf of the team.
func (t *Team) sendTo(receiver *Player, kind MessageKind, target world.Vec2f) {
	t.match.postbox.Publish(Message{Kind: kind, Receiver: receiver, Target: target})
}

// setHomes switches every player to the defending or attacking position of its slot,
// and retargets players that are merely waiting for the change.
func (t *Team) setHomes(attacking bool) {
	for _, p := range t.Players {
		if attacking {
			p.Home = p.slot.Attacking
		} else {
			p.Home = p.slot.Defending
		}

		if p.Role == Goalkeeper {
			continue
		}
		if p.fieldState == FieldWait || p.fieldState == FieldReturnToHome {
			p.Target = p.Home
		}
	}
}

func prepareForKickOffEnter(t *Team) {
	t.clearReferences()
	t.setHomes(false)
	t.sendAllPlayersHome()
}

func prepareForKickOffExecute(t *Team) {
	if t.AllPlayersAtHome() && t.opponents.AllPlayersAtHome() {
		t.setState(Defending)
	}
}

func prepareForKickOffExit(t *Team) {
	t.match.GameOn = true
}

func defendingEnter(t *Team) {
	t.setHomes(false)
}

func defendingExecute(t *Team) {
	if t.InControl() {
		t.setState(Attacking)
	}
}

func attackingEnter(t *Team) {
	t.setHomes(true)
	t.match.scheduler.Cancel(t.supportTimer)
	t.supportTimer = t.match.scheduler.Every(t.match.params.SupportInterval, func() {
		if t.InControl() {
			t.supportSpots.Calculate()
		}
	})
}

func attackingExecute(t *Team) {
	if !t.InControl() {
		t.setState(Defending)
	}
}

func attackingExit(t *Team) {
	t.match.scheduler.Cancel(t.supportTimer)
	t.supportTimer = 0
	t.supporting = nil
}
