// Package model contains domain models passed between layers.
package model

import "strings"

// TeamSize is the number of members in a candidate team.
const TeamSize = 3

// NormalizeKey is the lookup form of task and employee names: trimmed and
// lower-cased. Every name comparison in the system goes through it.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SkillMatch is one row of the skill match table.
type SkillMatch struct {
	Task     string
	Employee string
	Score    float64
}

// SynergyPair is one row of the synergy table. The pair is unordered.
type SynergyPair struct {
	A     string
	B     string
	Score float64
}

// Team is an unordered group of exactly TeamSize distinct employees.
type Team struct {
	Members [TeamSize]string
}

// NewTeam builds a team from three member names.
func NewTeam(a, b, c string) Team {
	return Team{Members: [TeamSize]string{a, b, c}}
}

// Pairs returns the three unordered member pairs.
func (t Team) Pairs() [3][2]string {
	m := t.Members
	return [3][2]string{{m[0], m[1]}, {m[0], m[2]}, {m[1], m[2]}}
}

// String joins member names the way the dashboard lists them.
func (t Team) String() string {
	return strings.Join(t.Members[:], ", ")
}
