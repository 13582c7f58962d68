package entity

import "time"

// Relation is the directed edge "owner follows friend".
type Relation struct {
	Base
	OwnerID  string
	FriendID string
}

func NewRelation(ownerID, friendID string, now time.Time) *Relation {
	return &Relation{Base: newBase(StatusActive, now), OwnerID: ownerID, FriendID: friendID}
}
