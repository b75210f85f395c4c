// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"time"
)

const (
	TickPeriod     = time.Second / 60
	TicksPerSecond = Ticks(time.Second / TickPeriod)
)

// Ticks is a time measured in updates.
type Ticks uint32

func ToTicks(seconds float32) Ticks {
	return Ticks(seconds * float32(float64(time.Second)/float64(TickPeriod)))
}

func (ticks Ticks) Float() float32 {
	return float32(ticks) * float32(float64(TickPeriod)/float64(time.Second))
}

func (ticks Ticks) Duration() time.Duration {
	return time.Duration(ticks) * TickPeriod
}
