package models

import "time"

type TimeSlot struct {
	Time      string `bson:"time" json:"time"`
	Available bool   `bson:"available" json:"available"`
}

// Availability holds one doctor's ordered slot sequence for one calendar
// day. It is the source of truth for bookable times; booking flips the
// consumed slots to unavailable, records are never deleted.
type Availability struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	DoctorID  string     `bson:"doctorId" json:"doctor_id"`
	Date      time.Time  `bson:"date" json:"date"`
	TimeSlots []TimeSlot `bson:"timeSlots" json:"time_slots"`
	CreatedAt time.Time  `bson:"createdAt" json:"created_at"`
}

func (a *Availability) AvailableSlotCount() int {
	count := 0
	for _, slot := range a.TimeSlots {
		if slot.Available {
			count++
		}
	}
	return count
}

func (a *Availability) SlotIndex(hhmm string) int {
	for i, slot := range a.TimeSlots {
		if slot.Time == hhmm {
			return i
		}
	}
	return -1
}
