// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"math/rand"
	"time"
)

// Rand is the only source of randomness of a Match. *rand.Rand implements it.
type Rand interface {
	// Float32 returns a number in [0, 1).
	Float32() float32
}

func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// prob returns true with probability p.
func prob(r Rand, p float32) bool {
	return r.Float32() < p
}

// between returns a number in [low, high).
func between(r Rand, low, high float32) float32 {
	return low + r.Float32()*(high-low)
}
