// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"github.com/chewxy/math32"
)

type SupportSpot struct {
	Position world.Vec2f `json:"position"`
	Score    float32     `json:"score"`
}

// SupportSpots is a fixed grid of positions in the half a team attacks.
type SupportSpots struct {
	team     *Team
	spots    []SupportSpot
	best     int
	computed bool
}

func newSupportSpots(t *Team) *SupportSpots {
	params := &t.match.params
	bounds := t.match.Pitch.Bounds

	// Inset the grid from the touch lines and goal lines.
	width := bounds.Width * 0.9
	height := bounds.Height * 0.8
	columns := params.SupportSpotColumns
	rows := params.SupportSpotRows
	sliceX := width / float32(columns)
	sliceY := height / float32(rows)

	left := bounds.Left() + (bounds.Width-width)*0.5 + sliceX
	right := bounds.Right() - (bounds.Width-width)*0.5 - sliceX
	top := bounds.Top() + (bounds.Height-height)*0.5 + sliceY*0.5

	s := &SupportSpots{team: t, best: -1}
	for x := 0; x < columns/2; x++ {
		for y := 0; y < rows; y++ {
			var spotX float32
			if t.Left {
				spotX = right - float32(x)*sliceX
			} else {
				spotX = left + float32(x)*sliceX
			}
			s.spots = append(s.spots, SupportSpot{Position: world.Vec2f{X: spotX, Y: top + float32(y)*sliceY}})
		}
	}
	return s
}

// Spots is every spot with its last score, in scan order.
func (s *SupportSpots) Spots() []SupportSpot {
	return s.spots
}

// Calculate rescores every spot relative to the controlling player, or the ball if no
// player controls it, and returns the best spot. Ties keep the first spot scanned.
func (s *SupportSpots) Calculate() world.Vec2f {
	t := s.team
	m := t.match
	params := &m.params

	from := m.Ball.Position
	if t.controlling != nil {
		from = t.controlling.Position
	}

	s.best = -1
	var bestScore float32
	for i := range s.spots {
		spot := &s.spots[i]
		spot.Score = 1

		if t.IsPassSafeFromAllOpponents(from, spot.Position, nil, params.MaxPassPower) {
			spot.Score += params.PassSafeStrength
		}

		if _, ok := t.CanShoot(spot.Position, params.MaxShotPower); ok {
			spot.Score += params.CanShootStrength
		}

		optimal := params.OptimalDistance
		distance := from.Distance(spot.Position)
		if bonus := (optimal - math32.Abs(optimal-distance)) / optimal; bonus > 0 {
			spot.Score += bonus * params.DistanceStrength
		}

		if s.best == -1 || spot.Score > bestScore {
			s.best = i
			bestScore = spot.Score
		}
	}

	s.computed = true
	return s.spots[s.best].Position
}

// Best is the last calculated best spot, calculated once if it never was.
func (s *SupportSpots) Best() world.Vec2f {
	if !s.computed {
		return s.Calculate()
	}
	return s.spots[s.best].Position
}

// BestIndex is -1 until the first calculation.
func (s *SupportSpots) BestIndex() int {
	return s.best
}
