// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

// GoalEvent describes a goal once the score was updated.
type GoalEvent struct {
	Left    bool   `json:"left"` // the scoring team defends the left goal
	Team    string `json:"team"`
	Scorer  string `json:"scorer,omitempty"`
	OwnGoal bool   `json:"ownGoal,omitempty"`
	Score   [2]int `json:"score"`
}

// Observer is told about state machine transitions and goals. It must not mutate the
// Match it observes.
type Observer interface {
	// Transition is called for players, teams and the match after the old state exited
	// and before the new state entered.
	Transition(component, from, to string)
	Goal(event GoalEvent)
}

type nopObserver struct{}

func (nopObserver) Transition(string, string, string) {}
func (nopObserver) Goal(GoalEvent)                    {}

// Observers fans out to each non-nil Observer in order.
type Observers []Observer

func (observers Observers) Transition(component, from, to string) {
	for _, o := range observers {
		if o != nil {
			o.Transition(component, from, to)
		}
	}
}

func (observers Observers) Goal(event GoalEvent) {
	for _, o := range observers {
		if o != nil {
			o.Goal(event)
		}
	}
}
