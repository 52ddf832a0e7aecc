// File: database/repository/agent/interface.go
package agentRepo

import (
	"context"

	"rosterly/database"
	"rosterly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AgentRepository persists the agent directory, scoped by sync key.
// Writes are last-write-wins per agent record; each agent's unavailability
// map is independently owned, so no multi-record transactions are needed.
type AgentRepository interface {
	GetBySyncKey(ctx context.Context, syncKey string) ([]models.Agent, error)
	GetByID(ctx context.Context, syncKey, agentID string) (*models.Agent, error)
	Create(ctx context.Context, agent models.Agent) (*models.Agent, error)
	CreateMany(ctx context.Context, agents []models.Agent) error
	ReplaceUnavailability(ctx context.Context, syncKey, agentID string, unavailable map[int][]int) error
	DeleteByID(ctx context.Context, syncKey, agentID string) error
}

type mongoAgentRepo struct {
	coll *mongo.Collection
}

// NewMongoAgentRepo constructs a new MongoDB AgentRepository.
func NewMongoAgentRepo() AgentRepository {
	db := database.MongoClient.Database("rosterly")
	return &mongoAgentRepo{
		coll: db.Collection("agents"),
	}
}
