// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/finnbear/moderation"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	TeamNameLengthMin = 2
	TeamNameLengthMax = 20
)

// Make sure to register in init function
type (
	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// Kickoff restarts the match from 0:0. It requires the admin auth code.
	Kickoff struct {
		Auth string `json:"auth"`
	}

	// RenameTeam renames the team defending the left or right goal.
	RenameTeam struct {
		Left bool   `json:"left"`
		Name string `json:"name"`
		Auth string `json:"auth"` // Auth unlocks reserved names
	}
)

func init() {
	registerInbound(
		Kickoff{},
		RenameTeam{},
	)
}

var reservedNames = [...]string{
	"admin",
	"administrator",
	"console",
	"dev",
	"developer",
	"mod",
	"moderator",
	"owner",
	"referee",
	"root",
	"server",
	"staff",
	"system",
}

func (h *Hub) authed(auth string) bool {
	return h.auth != "" && auth == h.auth
}

func (data Kickoff) Process(h *Hub, _ Client) {
	if !h.authed(data.Auth) {
		h.logger.Warn("unauthorized kickoff")
		return
	}
	h.match.Reset()
	h.logger.Info("match reset")
}

func (data RenameTeam) Process(h *Hub, _ Client) {
	name, ok := SanitizeTeamName(data.Name)
	if !ok {
		return
	}

	if !h.authed(data.Auth) && IsReservedName(name) {
		h.logger.Warn("blocked reserved name", "name", name)
		return
	}

	team := h.match.Teams[1]
	if data.Left {
		team = h.match.Teams[0]
	}
	if name == team.Opponents().Name {
		return
	}

	h.logger.Info("team renamed", "side", team.Side(), "from", team.Name, "to", name)
	team.Name = name
}

func (data InvalidInbound) Process(_ *Hub, _ Client) {}

// IsReservedName is true for names only the admin may use.
func IsReservedName(name string) bool {
	lower := strings.ToLower(name)
	for _, reservedName := range reservedNames {
		if lower == reservedName {
			return true
		}
	}
	return false
}

// SanitizeTeamName returns a printable, censored team name, or false if nothing
// acceptable is left.
func SanitizeTeamName(name string) (string, bool) {
	return sanitize(name, true, TeamNameLengthMin, TeamNameLengthMax)
}

func trimUtf8(in string, low, high int) (str string, ok bool) {
	if !utf8.ValidString(in) {
		return "", false
	}

	// Remove spaces
	str = strings.TrimSpace(in)
	str = strings.TrimFunc(str, func(r rune) bool {
		// NOTE: The following characters are not detected by
		// unicode.IsSpace() but show up as blank

		// https://www.compart.com/en/unicode/U+2800
		// https://www.compart.com/en/unicode/U+200B
		return r == 0x2800 || r == 0x200B
	})

	// Too long but can resize down
	if len(str) > high {
		var builder strings.Builder
		for _, r := range str {
			if builder.Len()+utf8.RuneLen(r) > high {
				break
			}
			builder.WriteRune(r)
		}
		str = strings.TrimSpace(builder.String())
	}

	// Too short
	if len(str) < low {
		return "", false
	}
	ok = true
	return
}

func sanitize(text string, name bool, low, high int) (string, bool) {
	if name {
		// Remove these characters
		// Brackets are used in formatting
		// * is used for censoring
		const removals = "()[]{}*"
		for i := 0; i < len(removals); i++ {
			text = strings.ReplaceAll(text, removals[i:i+1], "")
		}
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, text)

	text, ok := trimUtf8(text, low, high)
	if !ok {
		return "", false
	}

	if name {
		// Censor name
		result := moderation.Scan(text)

		if result.Is(moderation.Inappropriate) {
			if result.Is(moderation.Inappropriate & moderation.Moderate) {
				return "", false
			}
			text, _ = moderation.Censor(text, moderation.Inappropriate)
		}
	}

	return text, true
}
