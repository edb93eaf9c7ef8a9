package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

const collectionMovingRequests = "moving_requests"

type MovingRequestRepository struct {
	col *mongo.Collection
}

func NewMovingRequestRepository(db *mongo.Database) *MovingRequestRepository {
	return &MovingRequestRepository{col: db.Collection(collectionMovingRequests)}
}

func (r *MovingRequestRepository) Create(ctx context.Context, m *domain.MovingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *m
	doc.ID = ""
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert moving request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid.Hex()
	}
	return nil
}

func (r *MovingRequestRepository) FindByID(ctx context.Context, id string) (*domain.MovingRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMovingRequestNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.MovingRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		return nil, notFound(err, domain.ErrMovingRequestNotFound, "find moving request")
	}
	return &m, nil
}

// List returns moving requests matching f, newest first.
func (r *MovingRequestRepository) List(ctx context.Context, f ports.MovingRequestFilter) ([]*domain.MovingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.RenterID != "" {
		filter["renter_id"] = f.RenterID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := pageOptions(f.Skip, f.Limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list moving requests: %w", err)
	}
	out := make([]*domain.MovingRequest, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode moving requests: %w", err)
	}
	return out, nil
}

func (r *MovingRequestRepository) Update(ctx context.Context, m *domain.MovingRequest) error {
	oid, ok := objectID(m.ID)
	if !ok {
		return domain.ErrMovingRequestNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *m
	doc.ID = ""
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace moving request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovingRequestNotFound
	}
	return nil
}

func (r *MovingRequestRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMovingRequestNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete moving request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovingRequestNotFound
	}
	return nil
}

func (r *MovingRequestRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.EstimatedDocumentCount(ctx)
}

func (r *MovingRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "renter_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
