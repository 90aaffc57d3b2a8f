package models

import "time"

// Doctor is static reference data, seeded out-of-band and read-only here.
type Doctor struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Specialty string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
