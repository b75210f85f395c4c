// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"net"
)

// Score is the goals of one scorer in one standing, such as "goals/week".
type Score struct {
	Type  string `dynamo:"type"`
	Name  string `dynamo:"name"`
	Goals int    `dynamo:"goals"`
	TTL   int64  `dynamo:"ttl,omitempty"`
}

type Server struct {
	Region     string `dynamo:"region"`
	Slot       int    `dynamo:"slot"`
	IP         net.IP `dynamo:"ip"`
	Spectators int    `dynamo:"spectators"`
	TTL        int64  `dynamo:"ttl,omitempty"`
}

// Statistic is added to the counters of one region and day.
type Statistic struct {
	Region     string `dynamo:"region"`
	Day        int64  `dynamo:"day"` // days since unix epoch
	Spectators int    `dynamo:"spectators"`
	Goals      int    `dynamo:"goals"`
}
