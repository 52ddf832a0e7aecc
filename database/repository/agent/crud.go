// File: database/repository/agent/crud.go
package agentRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rosterly/models"
)

func (r *mongoAgentRepo) GetBySyncKey(ctx context.Context, syncKey string) ([]models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": syncKey}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agents []models.Agent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *mongoAgentRepo) GetByID(ctx context.Context, syncKey, agentID string) (*models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": syncKey, "id": agentID}
	var agent models.Agent
	if err := r.coll.FindOne(ctx, filter).Decode(&agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *mongoAgentRepo) Create(ctx context.Context, agent models.Agent) (*models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	if agent.Unavailable == nil {
		agent.Unavailable = map[int][]int{}
	}
	if _, err := r.coll.InsertOne(ctx, agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *mongoAgentRepo) CreateMany(ctx context.Context, agents []models.Agent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(agents))
	for i, a := range agents {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		docs[i] = a
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// ReplaceUnavailability overwrites the full unavailability map for one agent.
// Last write wins; concurrent editors of the same record are not merged.
func (r *mongoAgentRepo) ReplaceUnavailability(ctx context.Context, syncKey, agentID string, unavailable map[int][]int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": syncKey, "id": agentID}
	update := bson.M{"$set": bson.M{"unavailable": unavailable}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAgentRepo) DeleteByID(ctx context.Context, syncKey, agentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"syncKey": syncKey, "id": agentID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
