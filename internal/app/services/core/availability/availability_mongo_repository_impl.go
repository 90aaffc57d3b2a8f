package availability

import (
	"context"
	"time"

	"dentalbot-service/internal/app/contracts"
	"dentalbot-service/internal/app/models"
	"dentalbot-service/internal/pkg/constvars"
	"dentalbot-service/internal/pkg/exceptions"
	"dentalbot-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string) contracts.AvailabilityRepository {
	return &AvailabilityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAvailabilities),
	}
}

func (r *AvailabilityMongoRepository) FindByDoctorAndRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Availability, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date": bson.M{
			"$gte": utils.StartOfDay(from),
			"$lte": utils.EndOfDay(to),
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var result []models.Availability
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}

func (r *AvailabilityMongoRepository) FindByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) (*models.Availability, error) {
	var availability models.Availability
	filter := bson.M{
		"doctorId": doctorID,
		"date": bson.M{
			"$gte": utils.StartOfDay(day),
			"$lt":  utils.EndOfDay(day),
		},
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&availability)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &availability, nil
}

func (r *AvailabilityMongoRepository) ReplaceTimeSlots(ctx context.Context, availabilityID string, slots []models.TimeSlot) error {
	objectID, err := primitive.ObjectIDFromHex(availabilityID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	filter := bson.M{"_id": objectID}
	update := bson.M{"$set": bson.M{"timeSlots": slots}}

	_, err = r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
