package models

import "time"

type Patient struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	Name              string     `bson:"name" json:"name"`
	Phone             string     `bson:"phone" json:"phone"`
	Email             string     `bson:"email,omitempty" json:"email,omitempty"`
	DNI               string     `bson:"dni" json:"dni"`
	BirthDate         *time.Time `bson:"birthDate,omitempty" json:"birth_date,omitempty"`
	DNIExpeditionDate *time.Time `bson:"dniExpeditionDate,omitempty" json:"dni_expedition_date,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"created_at"`
}
