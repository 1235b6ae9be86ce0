package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role tags stored on identity documents and embedded in tokens.
const (
	RoleVolunteer = "volunteer"
	RoleNGO       = "ngo"
	RoleAdmin     = "admin"
)

// Identity is the part shared by every account type. User, NGO and Admin
// embed it inline so the auth path handles all three the same way.
type Identity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Admin struct {
	Identity `bson:",inline"`
}
