// Package entities contains core business entities.
package entities

// User is a domain representation of a team member.
// IsActive gates new reviewer assignments only; flipping it never
// touches assignments that already exist.
type User struct {
	ID       string
	Username string
	TeamName string
	IsActive bool
}
