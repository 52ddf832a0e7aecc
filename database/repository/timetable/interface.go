// File: database/repository/timetable/interface.go
package timetableRepo

import (
	"context"

	"rosterly/database"
	"rosterly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimetableRepository persists one timetable document per (syncKey, month).
// A generation run replaces the document wholesale; direct edits patch a
// single slot in place.
type TimetableRepository interface {
	Get(ctx context.Context, syncKey, month string) (*models.Timetable, error)
	Upsert(ctx context.Context, tt models.Timetable) error
	UpdateSlot(ctx context.Context, syncKey, month string, day, slot int, agentIDs []string) error
}

type mongoTimetableRepo struct {
	coll *mongo.Collection
}

// NewMongoTimetableRepo constructs a new MongoDB TimetableRepository.
func NewMongoTimetableRepo() TimetableRepository {
	db := database.MongoClient.Database("rosterly")
	return &mongoTimetableRepo{
		coll: db.Collection("timetables"),
	}
}
