package models

import (
	"time"
)

// Plan tiers. Only the free tier is volume-capped.
const (
	PlanFree     = "free"
	PlanCore     = "core"
	PlanMemoir   = "memoir"
	PlanLifetime = "lifetime"
)

// User holds the subscription profile keyed by the auth subject.
// Collection: users
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Plan      string    `bson:"plan" json:"plan"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
