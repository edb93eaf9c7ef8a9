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
	"github.com/homerent/rental-api/internal/core/ports"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

// Create inserts l and sets its ID.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *l
	doc.ID = ""
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Listing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		return nil, notFound(err, domain.ErrListingNotFound, "find listing")
	}
	return &l, nil
}

// Update writes every field of l except views_count, which only
// IncrementViews changes. l is refreshed from the stored document.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	oid, ok := objectID(l.ID)
	if !ok {
		return domain.ErrListingNotFound
	}
	update, err := setFields(l, "views_count", "created_at")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stored domain.Listing
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&stored)
	if err != nil {
		return notFound(err, domain.ErrListingNotFound, "update listing")
	}
	*l = stored
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrListingNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Search returns listings matching f, newest first.
func (r *ListingRepository) Search(ctx context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := pageOptions(f.Offset, f.Limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, listingFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	out := make([]*domain.Listing, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return out, nil
}

func listingFilter(f ports.ListingFilter) bson.M {
	filter := bson.M{}
	if f.AgentID != "" {
		filter["agent_id"] = f.AgentID
	}
	if f.City != "" {
		filter["location.city"] = containsFold(f.City)
	}
	if f.State != "" {
		filter["location.state"] = containsFold(f.State)
	}
	if f.PropertyType != "" {
		filter["property_type"] = f.PropertyType
	}
	if f.PetPolicy != "" {
		filter["pet_policy"] = f.PetPolicy
	}
	if f.Parking != "" {
		filter["parking"] = f.Parking
	}
	if f.AvailableOnly {
		filter["is_available"] = true
	}
	if rng := between(f.MinPrice, f.MaxPrice); rng != nil {
		filter["rent_price"] = rng
	}
	if rng := between(f.MinBedrooms, f.MaxBedrooms); rng != nil {
		filter["bedrooms"] = rng
	}
	if rng := between(f.MinBathrooms, f.MaxBathrooms); rng != nil {
		filter["bathrooms"] = rng
	}
	return filter
}

func between[T int | float64](lo, hi *T) bson.M {
	if lo == nil && hi == nil {
		return nil
	}
	rng := bson.M{}
	if lo != nil {
		rng["$gte"] = *lo
	}
	if hi != nil {
		rng["$lte"] = *hi
	}
	return rng
}

func (r *ListingRepository) IncrementViews(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrListingNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"views_count": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Totals aggregates counts and the rent of unavailable listings.
func (r *ListingRepository) Totals(ctx context.Context, agentID string) (ports.ListingTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if agentID != "" {
		match["agent_id"] = agentID
	}
	rented := bson.M{"$eq": bson.A{"$is_available", false}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"available": bson.M{"$sum": bson.M{"$cond": bson.A{"$is_available", 1, 0}}},
			"rented":    bson.M{"$sum": bson.M{"$cond": bson.A{rented, 1, 0}}},
			"revenue":   bson.M{"$sum": bson.M{"$cond": bson.A{rented, "$rent_price", 0}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.ListingTotals{}, fmt.Errorf("listing totals: %w", err)
	}
	var rows []struct {
		Total     int64   `bson:"total"`
		Available int64   `bson:"available"`
		Rented    int64   `bson:"rented"`
		Revenue   float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return ports.ListingTotals{}, fmt.Errorf("decode listing totals: %w", err)
	}
	if len(rows) == 0 {
		return ports.ListingTotals{}, nil
	}
	return ports.ListingTotals{
		Total:     rows[0].Total,
		Available: rows[0].Available,
		Rented:    rows[0].Rented,
		Revenue:   rows[0].Revenue,
	}, nil
}

func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "agent_id", Value: 1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
		{Keys: bson.D{{Key: "is_available", Value: 1}, {Key: "rent_price", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
