// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"fmt"
	"github.com/SoftbearStudios/soccer/server/world"
	"sort"
	"time"
)

const (
	Left  = 0
	Right = 1
)

// Match owns the ball, both goals and both teams, and advances them one tick at a time.
// It is not safe for concurrent use.
type Match struct {
	params Params
	Pitch  world.Pitch
	Ball   *world.Ball
	Goals  [2]*world.Goal
	Teams  [2]*Team

	GameOn        bool
	KeeperHasBall bool

	physics   Physics
	rand      Rand
	observer  Observer
	postbox   *Postbox
	scheduler *Scheduler

	lastKicker *Player
	ticks      world.Ticks
	names      [2]string
}

type Option func(m *Match)

func WithRand(r Rand) Option {
	return func(m *Match) { m.rand = r }
}

func WithObserver(observer Observer) Option {
	return func(m *Match) { m.observer = observer }
}

// WithPhysics replaces Kinematics, for example with an external engine.
func WithPhysics(physics Physics) Option {
	return func(m *Match) { m.physics = physics }
}

// WithTeamNames names the teams, empty names are random.
func WithTeamNames(left, right string) Option {
	return func(m *Match) {
		m.names = [2]string{left, right}
	}
}

// NewMatch validates params and returns a match ready for kickoff.
func NewMatch(params Params, options ...Option) (*Match, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	m := &Match{
		params:    params,
		Pitch:     params.pitch(),
		observer:  nopObserver{},
		postbox:   NewPostbox(),
		scheduler: NewScheduler(),
	}
	m.Ball = &world.Ball{
		Position:  m.Pitch.Center(),
		Drag:      params.BallDrag,
		Bounce:    params.BallBounce,
		Radius:    params.BallRadius,
		StopSpeed: params.BallStopSpeed,
	}
	m.Goals[Left], m.Goals[Right] = m.Pitch.Goals(params.GoalHeight, params.GoalDepth)

	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = NewRand(0)
	}
	if m.physics == nil {
		m.physics = NewKinematics(m.Pitch, m.Goals)
	}

	m.Teams[Left] = newTeam(m, true, m.names[Left], m.Goals[Left], m.Goals[Right])
	m.Teams[Right] = newTeam(m, false, m.names[Right], m.Goals[Right], m.Goals[Left])
	m.Teams[Left].SetOpponents(m.Teams[Right])

	for _, team := range m.Teams {
		if team.Name == "" {
			team.Name = RandomTeamName(m.rand, team.opponents.Name)
		}
	}

	for kind := MessageKind(0); kind < messageKindCount; kind++ {
		m.postbox.Subscribe(kind, func(message Message) {
			if message.Receiver != nil {
				message.Receiver.handle(message)
			}
		})
	}

	m.Kickoff()
	return m, nil
}

func (m *Match) Params() Params {
	return m.params
}

func (m *Match) Postbox() *Postbox {
	return m.postbox
}

func (m *Match) Scheduler() *Scheduler {
	return m.scheduler
}

func (m *Match) Ticks() world.Ticks {
	return m.ticks
}

// Score is the number of goals of the left and right team.
func (m *Match) Score() (left, right int) {
	return m.Teams[Left].Score(), m.Teams[Right].Score()
}

// Players returns the players of both teams, left team first.
func (m *Match) Players() []*Player {
	players := make([]*Player, 0, len(m.Teams[Left].Players)+len(m.Teams[Right].Players))
	for _, team := range m.Teams {
		players = append(players, team.Players...)
	}
	return players
}

// Kickoff places the ball in the center and sends everyone home. Play resumes once
// all players are home.
func (m *Match) Kickoff() {
	m.Ball.Place(m.Pitch.Center())
	m.lastKicker = nil
	m.KeeperHasBall = false
	m.postbox.Clear()

	for _, team := range m.Teams {
		team.setState(PrepareForKickOff)
	}
	// Leaving the previous state may have set it.
	m.GameOn = false
}

// Reset starts a new match with the same teams and players.
func (m *Match) Reset() {
	for _, goal := range m.Goals {
		goal.Scored = 0
	}
	for _, p := range m.Players() {
		p.Goals = 0
		p.Position = p.slot.Defending
	}
	m.Kickoff()
}

// Update advances the match by dt. Within a tick the physics step and goal check come
// first, then both teams update before any player does, then messages are delivered
// and timers advance.
func (m *Match) Update(dt time.Duration) {
	seconds := float32(dt.Seconds())
	players := m.Players()

	m.physics.Step(m.Ball, players, seconds)
	m.ticks++

	if m.checkGoal() {
		m.scheduler.Advance(dt)
		return
	}

	for _, team := range m.Teams {
		team.update()
	}
	for _, p := range players {
		p.update(seconds)
	}

	m.postbox.Deliver()
	m.scheduler.Advance(dt)
}

func (m *Match) checkGoal() bool {
	for i, goal := range m.Goals {
		if !goal.Scores(m.Ball) {
			continue
		}

		goal.Scored++
		// The team defending the other goal scored.
		scoring := m.Teams[1-i]
		event := GoalEvent{
			Left: scoring.Left,
			Team: scoring.Name,
		}
		if kicker := m.lastKicker; kicker != nil {
			event.Scorer = kicker.Name
			if kicker.team == scoring {
				kicker.Goals++
			} else {
				event.OwnGoal = true
			}
		}
		event.Score[Left], event.Score[Right] = m.Score()
		m.observer.Goal(event)

		m.Kickoff()
		return true
	}
	return false
}

// Scorer is one line of the top scorer table.
type Scorer struct {
	Name  string `json:"name"`
	Team  string `json:"team"`
	Goals int    `json:"goals"`
}

// Scorers returns every player that scored, most goals first.
func (m *Match) Scorers() []Scorer {
	var scorers []Scorer
	for _, p := range m.Players() {
		if p.Goals > 0 {
			scorers = append(scorers, Scorer{Name: p.Name, Team: p.team.Name, Goals: p.Goals})
		}
	}
	sort.SliceStable(scorers, func(i, j int) bool {
		return scorers[i].Goals > scorers[j].Goals
	})
	return scorers
}
