package constvars

const (
	MongoCollectionPatients       = "patients"
	MongoCollectionDoctors        = "doctors"
	MongoCollectionServices       = "services"
	MongoCollectionAvailabilities = "availabilities"
	MongoCollectionAppointments   = "appointments"
)
