// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/chewxy/math32"
)

func abs(a float32) float32 {
	return math32.Abs(a)
}

// mirrorX reflects x across the vertical center line of the pitch.
func (params *Params) mirrorX(x float32) float32 {
	return 2*params.PitchLeft + params.PitchWidth - x
}
