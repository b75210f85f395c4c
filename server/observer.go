// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/soccer/server/soccer"
	"github.com/charmbracelet/log"
)

// LogObserver logs transitions at debug level and goals at info level.
type LogObserver struct {
	logger *log.Logger
}

func NewLogObserver(logger *log.Logger) LogObserver {
	return LogObserver{logger: logger}
}

func (o LogObserver) Transition(component, from, to string) {
	o.logger.Debug("transition", "component", component, "from", from, "to", to)
}

func (o LogObserver) Goal(event soccer.GoalEvent) {
	o.logger.Info("goal",
		"team", event.Team,
		"scorer", event.Scorer,
		"ownGoal", event.OwnGoal,
		"score", event.Score,
	)
}
