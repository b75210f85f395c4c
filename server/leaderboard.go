// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"container/heap"
	"github.com/SoftbearStudios/soccer/server/soccer"
	"sort"
	"time"
)

// Leaderboard sends Leaderboard message to each Client.
func (h *Hub) Leaderboard() {
	defer h.timeFunction("leaderboard", time.Now())
	h.broadcast(h.leaderboard())
}

func (h *Hub) leaderboard() Leaderboard {
	return Leaderboard{Leaderboard: TopScorers(h.match.Scorers(), leaderboardSize)}
}

// scorerSet orders scorers by most goals, then by name.
type scorerSet []soccer.Scorer

func (set scorerSet) Len() int { return len(set) }

func (set scorerSet) Less(i, j int) bool {
	return scorerLess(&set[i], &set[j])
}

func (set scorerSet) Swap(i, j int) { set[i], set[j] = set[j], set[i] }

func (set *scorerSet) Push(x interface{}) {
	*set = append(*set, x.(soccer.Scorer))
}

func (set *scorerSet) Pop() interface{} {
	old := *set
	n := len(old)
	s := old[n-1]
	*set = old[:n-1]
	return s
}

func scorerLess(a, b *soccer.Scorer) bool {
	if a.Goals != b.Goals {
		return a.Goals > b.Goals
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Team < b.Team
}

// TopScorers returns the top count scorers. It reorders scorers.
func TopScorers(scorers []soccer.Scorer, count int) []soccer.Scorer {
	if count <= 20 {
		return topScorersInsert(scorers, count)
	} else {
		return topScorersHeap(scorers, count)
	}
}

// topScorersHeap Uses heap to get top count scorers.
// It has a time complexity of O(n + m * log(n)).
func topScorersHeap(scorers []soccer.Scorer, count int) []soccer.Scorer {
	set := scorerSet(scorers)
	heap.Init(&set)

	top := make([]soccer.Scorer, 0, count)
	for set.Len() > 0 && len(top) < cap(top) {
		top = append(top, heap.Pop(&set).(soccer.Scorer))
	}

	return top
}

// topScorersInsert Uses insertion to get top count scorers.
// It has a time complexity of O(n * m).
func topScorersInsert(scorers []soccer.Scorer, count int) []soccer.Scorer {
	n := len(scorers)
	if count > n {
		count = n
	}

	// Insert into subset
	subset := scorerSet(scorers[:count])
	sort.Sort(subset)

	if count > 0 && count < n {
		end := len(subset) - 1

		for i := range scorers[count:] {
			s := scorers[count+i]
			j := end
			if !scorerLess(&s, &subset[j]) {
				continue
			}
			subset[j] = s

			for ; j > 0 && subset.Less(j, j-1); j-- {
				subset.Swap(j, j-1)
			}
		}
	}

	top := make([]soccer.Scorer, len(subset))
	copy(top, subset)
	return top
}
