// Package domain contains core concepts of the sit-and-go coordinator.
// This file defines participants and the identifiers they are addressed by.
// No runtime, network, or UI logic should be added here.
package domain

import "github.com/samber/lo"

type Identity string

type ChannelID string

// Participant is whoever triggered an interaction on the chat surface.
type Participant struct {
	ID      Identity
	Name    string
	Roles   []string
	Channel ChannelID
}

func (p Participant) HasRole(role string) bool {
	return lo.Contains(p.Roles, role)
}
