package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homerent/rental-api/internal/core/domain"
)

const (
	collectionReviews    = "reviews"
	collectionAgentStats = "agent_stats"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *rv
	doc.ID = ""
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid.Hex()
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rv domain.Review
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rv); err != nil {
		return nil, notFound(err, domain.ErrReviewNotFound, "find review")
	}
	return &rv, nil
}

// ListByAgent returns an agent's reviews, newest first.
func (r *ReviewRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"agent_id": agentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	out := make([]*domain.Review, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return out, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	oid, ok := objectID(rv.ID)
	if !ok {
		return domain.ErrReviewNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *rv
	doc.ID = ""
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace review: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrReviewNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "agent_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// AgentStatsRepository keeps one stats document per agent, keyed by agent_id.
type AgentStatsRepository struct {
	col *mongo.Collection
}

func NewAgentStatsRepository(db *mongo.Database) *AgentStatsRepository {
	return &AgentStatsRepository{col: db.Collection(collectionAgentStats)}
}

func (r *AgentStatsRepository) FindByAgent(ctx context.Context, agentID string) (*domain.AgentStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.AgentStats
	if err := r.col.FindOne(ctx, bson.M{"agent_id": agentID}).Decode(&s); err != nil {
		return nil, notFound(err, domain.ErrAgentStatsNotFound, "find agent stats")
	}
	return &s, nil
}

func (r *AgentStatsRepository) Upsert(ctx context.Context, s *domain.AgentStats) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"agent_id":              s.AgentID,
		"total_rentals":         s.TotalRentals,
		"average_response_time": s.AverageResponseTime,
		"client_satisfaction":   s.ClientSatisfaction,
		"repeat_clients":        s.RepeatClients,
		"updated_at":            s.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"agent_id": s.AgentID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert agent stats: %w", err)
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *AgentStatsRepository) DeleteByAgent(ctx context.Context, agentID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"agent_id": agentID})
	if err != nil {
		return fmt.Errorf("delete agent stats: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAgentStatsNotFound
	}
	return nil
}

func (r *AgentStatsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "agent_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
