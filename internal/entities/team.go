// Package entities contains core business entities.
package entities

// Team aggregates members under a unique team name.
type Team struct {
	Name    string
	Members []User
}
