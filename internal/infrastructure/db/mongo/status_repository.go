package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

const statusCollection = "tool_status"

// MongoStatusRepository keeps exactly one current status document per tool,
// keyed by the tool name.
type MongoStatusRepository struct {
	coll *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *MongoStatusRepository {
	return &MongoStatusRepository{coll: db.Collection(statusCollection)}
}

type mongoToolStatus struct {
	Tool       string `bson:"_id"`
	Health     string `bson:"health"`
	Message    string `bson:"message,omitempty"`
	ReportedBy string `bson:"reported_by,omitempty"`
	CheckedAt  int64  `bson:"checked_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (r *MongoStatusRepository) Upsert(ctx context.Context, status domain.ToolStatus) error {
	doc := mongoToolStatus{
		Tool:       string(status.Tool),
		Health:     string(status.Health),
		Message:    status.Message,
		ReportedBy: status.ReportedBy,
		CheckedAt:  status.CheckedAt.Unix(),
		UpdatedAt:  status.UpdatedAt.Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.Tool},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

func (r *MongoStatusRepository) FindByTool(ctx context.Context, tool domain.Tool) (*domain.ToolStatus, error) {
	var ms mongoToolStatus
	if err := r.coll.FindOne(ctx, bson.M{"_id": string(tool)}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrStatusNotFound
		}
		return nil, fmt.Errorf("find status: %w", err)
	}
	st := toDomainStatus(ms)
	return &st, nil
}

func (r *MongoStatusRepository) FindAll(ctx context.Context) ([]domain.ToolStatus, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.ToolStatus
	for cursor.Next(ctx) {
		var ms mongoToolStatus
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode status: %w", err)
		}
		out = append(out, toDomainStatus(ms))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate statuses: %w", err)
	}
	return out, nil
}

func toDomainStatus(ms mongoToolStatus) domain.ToolStatus {
	return domain.ToolStatus{
		Tool:       domain.Tool(ms.Tool),
		Health:     domain.Health(ms.Health),
		Message:    ms.Message,
		ReportedBy: ms.ReportedBy,
		CheckedAt:  unixToTime(ms.CheckedAt),
		UpdatedAt:  unixToTime(ms.UpdatedAt),
	}
}
