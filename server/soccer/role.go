// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"fmt"
	"gopkg.in/yaml.v3"
)

type Role uint8

const (
	Goalkeeper Role = iota
	Defender
	Attacker
)

var roleNames = [...]string{
	Goalkeeper: "goalkeeper",
	Defender:   "defender",
	Attacker:   "attacker",
}

func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (role Role) String() string {
	if int(role) < len(roleNames) {
		return roleNames[role]
	}
	return fmt.Sprintf("role(%d)", role)
}

func (role Role) MarshalText() ([]byte, error) {
	return []byte(role.String()), nil
}

func (role *Role) UnmarshalText(text []byte) (err error) {
	*role, err = ParseRole(string(text))
	return
}

func (role Role) MarshalYAML() (interface{}, error) {
	return role.String(), nil
}

func (role *Role) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return role.UnmarshalText([]byte(s))
}
