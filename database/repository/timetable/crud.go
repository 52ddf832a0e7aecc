// File: database/repository/timetable/crud.go
package timetableRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rosterly/models"
)

func (r *mongoTimetableRepo) Get(ctx context.Context, syncKey, month string) (*models.Timetable, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": syncKey, "month": month}
	var tt models.Timetable
	if err := r.coll.FindOne(ctx, filter).Decode(&tt); err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *mongoTimetableRepo) Upsert(ctx context.Context, tt models.Timetable) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": tt.SyncKey, "month": tt.Month}
	_, err := r.coll.ReplaceOne(ctx, filter, tt, options.Replace().SetUpsert(true))
	return err
}

// UpdateSlot patches a single slot's agent IDs without touching other days.
func (r *mongoTimetableRepo) UpdateSlot(ctx context.Context, syncKey, month string, day, slot int, agentIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if agentIDs == nil {
		agentIDs = []string{}
	}
	field := fmt.Sprintf("days.%d.slot%d", day-1, slot)
	filter := bson.M{"syncKey": syncKey, "month": month}
	update := bson.M{"$set": bson.M{field: agentIDs}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
