// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"github.com/SoftbearStudios/soccer/server/soccer"
	"github.com/SoftbearStudios/soccer/server/world"
	"github.com/charmbracelet/log"
	"os"
	"sync/atomic"
	"time"
)

const (
	debugPeriod       = time.Second * 5
	leaderboardPeriod = time.Second
	updatePeriod      = world.TickPeriod

	// maxCatchUpTicks bounds how many ticks one update runs after the hub fell behind.
	maxCatchUpTicks = 10

	leaderboardSize = 10
)

type (
	// Relay mirrors the match to other processes. Implementations must not block
	// for long, PublishStatus runs on its own goroutine.
	Relay interface {
		PublishStatus(ctx context.Context, status []byte) error
		PublishGoal(goal []byte) error
		Close() error
	}

	HubOptions struct {
		// Cloud is required, use Offline{} for none.
		Cloud Cloud
		// Relay is optional.
		Relay  Relay
		Params soccer.Params
		// Seed of the match, 0 for a random one.
		Seed int64
		// Team names, empty for random ones.
		Left, Right string
		Auth        string
		Logger      *log.Logger
	}
)

// Hub owns the match and the set of active clients, and broadcasts messages to the clients.
type Hub struct {
	// Match state, only touched by the hub goroutine
	match   *soccer.Match
	clients ClientList // implemented as double-linked list
	// goals are buffered until next update.
	goals []soccer.GoalEvent

	// Flags
	auth   string
	logger *log.Logger

	// Cloud (and things that are served atomically by HTTP)
	cloud      Cloud
	relay      Relay
	statusJSON atomic.Value

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	cloudTicker       *time.Ticker
	updateTicker      *time.Ticker
	updateTime        time.Time
	leaderboardTicker *time.Ticker
	debugTicker       *time.Ticker
}

func NewHub(options HubOptions) (*Hub, error) {
	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}
	c := options.Cloud
	if c == nil {
		c = Offline{}
	}

	h := &Hub{
		cloud:             c,
		relay:             options.Relay,
		auth:              options.Auth,
		logger:            logger,
		inbound:           make(chan SignedInbound, 64),
		register:          make(chan Client, 16),
		unregister:        make(chan Client, 16),
		cloudTicker:       time.NewTicker(c.UpdatePeriod()),
		updateTicker:      time.NewTicker(updatePeriod),
		updateTime:        time.Now(),
		leaderboardTicker: time.NewTicker(leaderboardPeriod),
		debugTicker:       time.NewTicker(debugPeriod),
	}

	var names [2]string
	for i, name := range [2]string{options.Left, options.Right} {
		if name == "" {
			continue
		}
		var ok bool
		if names[i], ok = SanitizeTeamName(name); !ok {
			return nil, fmt.Errorf("invalid team name %q", name)
		}
	}
	if names[0] != "" && names[0] == names[1] {
		return nil, fmt.Errorf("both teams named %q", names[0])
	}

	match, err := soccer.NewMatch(options.Params,
		soccer.WithRand(soccer.NewRand(options.Seed)),
		soccer.WithTeamNames(names[0], names[1]),
		soccer.WithObserver(soccer.Observers{NewLogObserver(logger), hubObserver{h}}),
	)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	h.match = match

	logger.Info("match created", "left", match.Teams[0].Name, "right", match.Teams[1].Name, "cloud", c)
	return h, nil
}

// Register adds a client from any goroutine.
func (h *Hub) Register(client Client) {
	h.register <- client
}

func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		h.logger.Error("hub exited")
		os.Exit(1)
	}()

	h.Cloud()

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
			h.cloud.IncrementSpectatorStatistic()

			// Don't wait a second for the first leaderboard.
			client.Send(h.leaderboard())
		case client := <-h.unregister:
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				if h == in.Client.Data().Hub {
					in.Process(h, in.Client)
				}

				if n--; n < 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.updateTicker.C:
			now := time.Now()
			timeDelta := now.Sub(h.updateTime) + updatePeriod/10 // Kludge factor
			h.updateTime = now

			ticks := int(timeDelta / updatePeriod)
			if ticks > maxCatchUpTicks {
				h.logger.Warn("hub fell behind", "ticks", ticks)
				ticks = maxCatchUpTicks
			}
			h.Update(ticks)
		case <-h.leaderboardTicker.C:
			h.Leaderboard()
			h.Status()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.cloudTicker.C:
			h.Cloud()
		}
	}
}

// broadcast sends out to every client.
func (h *Hub) broadcast(out outbound) {
	for client := h.clients.First; client != nil; client = client.Data().Next {
		client.Send(out)
	}
}

// hubObserver buffers goals for the next update.
type hubObserver struct {
	h *Hub
}

func (o hubObserver) Transition(string, string, string) {}

func (o hubObserver) Goal(event soccer.GoalEvent) {
	o.h.goals = append(o.h.goals, event)
	o.h.cloud.IncrementGoalStatistic()
}
