package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation status values. Nothing else is ever stored in Event.Status.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Reply struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	Replies   []Reply            `bson:"replies" json:"replies"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"` // relative path under /uploads
	Status      string             `bson:"status" json:"status"`

	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatorEmail string             `bson:"creatorEmail" json:"creatorEmail"`
	CreatorName  string             `bson:"creatorName" json:"creatorName"`

	Likes        int                  `bson:"likes" json:"likes"`
	LikedBy      []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	Comments     []Comment            `bson:"comments" json:"comments"`
	Followers    []primitive.ObjectID `bson:"followers" json:"followers"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CanTransition reports whether a moderation status change is legal.
// Pending events can be approved or rejected; approved and rejected events
// can only go back to pending. There is no approved<->rejected path.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved, StatusRejected:
		return to == StatusPending
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (e *Event) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range e.Comments {
		if e.Comments[i].ID == commentID {
			return &e.Comments[i]
		}
	}
	return nil
}

// HasLiked reports whether the user already appears in the likedBy set.
func (e *Event) HasLiked(userID primitive.ObjectID) bool {
	for _, id := range e.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
