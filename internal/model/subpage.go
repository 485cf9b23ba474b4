package model

import "time"

// SubPageID uniquely identifies a sub-page (a dated session within a group)
type SubPageID string

// SubPage is a single session belonging to a group. Date is optional;
// PresentPlayerIDs is an ordered set of the players marked present.
type SubPage struct {
	ID               SubPageID
	GroupID          GroupID
	Name             string
	Date             *time.Time
	PresentPlayerIDs []PlayerID
	CreatedAt        time.Time
}

// HasPlayer reports whether the player is marked present
func (sp *SubPage) HasPlayer(id PlayerID) bool {
	for _, pid := range sp.PresentPlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}
