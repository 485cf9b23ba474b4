package model

// GroupMembership is one row of the group-player many-to-many relation.
// The pair (GroupID, PlayerID) is unique in the remote store.
type GroupMembership struct {
	GroupID  GroupID
	PlayerID PlayerID
}

// Attendance is one row of the sub-page-player many-to-many relation.
// The pair (SubPageID, PlayerID) is unique in the remote store.
type Attendance struct {
	SubPageID SubPageID
	PlayerID  PlayerID
}
