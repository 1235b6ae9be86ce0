package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Identity  `bson:",inline"`
	Location  string `bson:"location" json:"location"`
	IsBlocked bool   `bson:"isBlocked" json:"isBlocked"`
	// Ordered list of joined event ids; an event appears at most once.
	JoinedEvents []primitive.ObjectID `bson:"joinedEvents" json:"joinedEvents"`
}
