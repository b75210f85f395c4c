// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	_ "embed"
	"strings"
)

//go:embed names.txt
var playerNamesRaw string

//go:embed team-names.txt
var teamNamesRaw string

var (
	playerNames = splitNames(playerNamesRaw)
	teamNames   = splitNames(teamNamesRaw)
)

func splitNames(raw string) (names []string) {
	for _, name := range strings.Split(raw, "\n") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return
}

func pick(r Rand, names []string) string {
	i := int(r.Float32() * float32(len(names)))
	if i >= len(names) {
		i = len(names) - 1
	}
	return names[i]
}

func randomPlayerName(r Rand) string {
	return pick(r, playerNames)
}

// RandomTeamName avoids other, so two random teams differ.
func RandomTeamName(r Rand, other string) (name string) {
	for i := 0; i < 8; i++ {
		if name = pick(r, teamNames); name != other {
			return
		}
	}
	return name + " II"
}
