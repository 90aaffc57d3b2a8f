package models

// Service is static reference data; DurationMinutes drives the slot
// consumption math in the scheduling engine.
type Service struct {
	ID              string  `bson:"_id,omitempty" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
	Description     string  `bson:"description,omitempty" json:"description,omitempty"`
}
