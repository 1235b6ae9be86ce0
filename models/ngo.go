package models

// NGO account status values.
const (
	NGOActive  = "active"
	NGOBlocked = "blocked"
)

type NGO struct {
	Identity     `bson:",inline"`
	Organization string `bson:"organization" json:"organization"`
	Status       string `bson:"status" json:"status"` // active, blocked
}
