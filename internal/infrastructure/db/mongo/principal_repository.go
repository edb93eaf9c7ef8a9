package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

const (
	collectionRenters = "renters"
	collectionAgents  = "agents"
)

// PrincipalRepository stores renters and agents in separate collections so
// usernames and emails are unique per kind only.
type PrincipalRepository struct {
	renters *mongo.Collection
	agents  *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{
		renters: db.Collection(collectionRenters),
		agents:  db.Collection(collectionAgents),
	}
}

type accountDoc struct {
	Username       string    `bson:"username"`
	Email          string    `bson:"email"`
	PasswordHash   string    `bson:"password_hash"`
	FullName       string    `bson:"full_name"`
	Phone          string    `bson:"phone,omitempty"`
	Bio            string    `bson:"bio,omitempty"`
	ProfilePicture string    `bson:"profile_picture,omitempty"`
	Active         bool      `bson:"is_active"`
	Verified       bool      `bson:"is_verified"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

type renterDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Account accountDoc         `bson:",inline"`
	Admin   bool               `bson:"is_admin"`
}

type agentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Account         accountDoc         `bson:",inline"`
	LicenseNumber   string             `bson:"license_number"`
	Title           string             `bson:"title,omitempty"`
	Company         string             `bson:"company,omitempty"`
	Specialties     []string           `bson:"specialties"`
	ServiceAreas    []string           `bson:"service_areas"`
	Languages       []string           `bson:"languages"`
	Certifications  []string           `bson:"certifications"`
	Achievements    []string           `bson:"achievements"`
	Avatar          string             `bson:"avatar,omitempty"`
	Rating          float64            `bson:"rating"`
	TotalReviews    int                `bson:"total_reviews"`
	YearsExperience int                `bson:"years_experience"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		Username:       a.Username,
		Email:          a.Email,
		PasswordHash:   a.PasswordHash,
		FullName:       a.FullName,
		Phone:          a.Phone,
		Bio:            a.Bio,
		ProfilePicture: a.ProfilePicture,
		Active:         a.Active,
		Verified:       a.Verified,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (d accountDoc) account(id primitive.ObjectID) domain.Account {
	return domain.Account{
		ID:             id.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		FullName:       d.FullName,
		Phone:          d.Phone,
		Bio:            d.Bio,
		ProfilePicture: d.ProfilePicture,
		Active:         d.Active,
		Verified:       d.Verified,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (d *renterDoc) renter() *domain.Renter {
	return &domain.Renter{Account: d.Account.account(d.ID), Admin: d.Admin}
}

func (d *agentDoc) agent() *domain.Agent {
	return &domain.Agent{
		Account:         d.Account.account(d.ID),
		LicenseNumber:   d.LicenseNumber,
		Title:           d.Title,
		Company:         d.Company,
		Specialties:     d.Specialties,
		ServiceAreas:    d.ServiceAreas,
		Languages:       d.Languages,
		Certifications:  d.Certifications,
		Achievements:    d.Achievements,
		Avatar:          d.Avatar,
		Rating:          d.Rating,
		TotalReviews:    d.TotalReviews,
		YearsExperience: d.YearsExperience,
	}
}

func toAgentDoc(a *domain.Agent) agentDoc {
	return agentDoc{
		Account:         toAccountDoc(&a.Account),
		LicenseNumber:   a.LicenseNumber,
		Title:           a.Title,
		Company:         a.Company,
		Specialties:     a.Specialties,
		ServiceAreas:    a.ServiceAreas,
		Languages:       a.Languages,
		Certifications:  a.Certifications,
		Achievements:    a.Achievements,
		Avatar:          a.Avatar,
		Rating:          a.Rating,
		TotalReviews:    a.TotalReviews,
		YearsExperience: a.YearsExperience,
	}
}

func (r *PrincipalRepository) FindByUsername(ctx context.Context, kind domain.Kind, username string) (domain.Principal, error) {
	return r.findOne(ctx, kind, bson.M{"username": username})
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, kind domain.Kind, email string) (domain.Principal, error) {
	return r.findOne(ctx, kind, bson.M{"email": email})
}

func (r *PrincipalRepository) findOne(ctx context.Context, kind domain.Kind, filter bson.M) (domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	switch kind {
	case domain.KindRenter:
		var d renterDoc
		if err := r.renters.FindOne(ctx, filter).Decode(&d); err != nil {
			return nil, notFound(err, domain.ErrPrincipalNotFound, "find renter")
		}
		return d.renter(), nil
	case domain.KindAgent:
		var d agentDoc
		if err := r.agents.FindOne(ctx, filter).Decode(&d); err != nil {
			return nil, notFound(err, domain.ErrPrincipalNotFound, "find agent")
		}
		return d.agent(), nil
	default:
		return nil, domain.ErrPrincipalNotFound
	}
}

// Save inserts principals without an ID and overwrites the others. The
// rating fields of an agent belong to UpdateAgentRating and are kept as
// stored; the returned principal is the stored document.
func (r *PrincipalRepository) Save(ctx context.Context, p domain.Principal) (domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, doc := r.document(p)
	acc := p.Credentials()

	if acc.ID == "" {
		res, err := coll.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrPrincipalExists
			}
			return nil, fmt.Errorf("insert %s: %w", p.Kind(), err)
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("insert %s: unexpected id type %T", p.Kind(), res.InsertedID)
		}
		acc.ID = oid.Hex()
		return p, nil
	}

	oid, err := primitive.ObjectIDFromHex(acc.ID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}
	update, err := setFields(doc, agentCounterFields...)
	if err != nil {
		return nil, err
	}

	res := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	saved, err := decodePrincipal(res, p.Kind())
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPrincipalExists
		}
		return nil, notFound(err, domain.ErrPrincipalNotFound, "update "+string(p.Kind()))
	}
	return saved, nil
}

// agentCounterFields are written only by UpdateAgentRating.
var agentCounterFields = []string{"rating", "total_reviews"}

func decodePrincipal(res *mongo.SingleResult, kind domain.Kind) (domain.Principal, error) {
	if kind == domain.KindAgent {
		var d agentDoc
		if err := res.Decode(&d); err != nil {
			return nil, err
		}
		return d.agent(), nil
	}
	var d renterDoc
	if err := res.Decode(&d); err != nil {
		return nil, err
	}
	return d.renter(), nil
}

func (r *PrincipalRepository) document(p domain.Principal) (*mongo.Collection, any) {
	type target struct {
		coll *mongo.Collection
		doc  any
	}
	t := domain.MatchPrincipal(p,
		func(v *domain.Renter) target {
			return target{r.renters, renterDoc{Account: toAccountDoc(&v.Account), Admin: v.Admin}}
		},
		func(v *domain.Agent) target {
			return target{r.agents, toAgentDoc(v)}
		},
	)
	return t.coll, t.doc
}

func (r *PrincipalRepository) FindRenterByID(ctx context.Context, id string) (*domain.Renter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d renterDoc
	if err := r.renters.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, notFound(err, domain.ErrPrincipalNotFound, "find renter")
	}
	return d.renter(), nil
}

func (r *PrincipalRepository) FindAgentByID(ctx context.Context, id string) (*domain.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d agentDoc
	if err := r.agents.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, notFound(err, domain.ErrPrincipalNotFound, "find agent")
	}
	return d.agent(), nil
}

// ListAgents returns active agents by service area and specialty, both
// matched case-insensitively against the array elements.
func (r *PrincipalRepository) ListAgents(ctx context.Context, f ports.AgentFilter) ([]*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := agentFilter(f)
	cur, err := r.agents.Find(ctx, filter, pageOptions(f.Skip, f.Limit).SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	var docs []agentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	out := make([]*domain.Agent, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].agent())
	}
	return out, nil
}

func agentFilter(f ports.AgentFilter) bson.M {
	filter := bson.M{"is_active": true}
	if f.City != "" {
		filter["service_areas"] = exactFold(f.City)
	}
	if f.Specialty != "" {
		filter["specialties"] = exactFold(f.Specialty)
	}
	return filter
}

func (r *PrincipalRepository) ListRenters(ctx context.Context, skip, limit int) ([]*domain.Renter, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.renters.Find(ctx, bson.M{}, pageOptions(skip, limit).SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list renters: %w", err)
	}
	var docs []renterDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode renters: %w", err)
	}
	out := make([]*domain.Renter, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].renter())
	}
	return out, nil
}

func (r *PrincipalRepository) Count(ctx context.Context, kind domain.Kind, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	coll := r.renters
	if kind == domain.KindAgent {
		coll = r.agents
	}
	return coll.CountDocuments(ctx, filter)
}

func (r *PrincipalRepository) UpdateAgentRating(ctx context.Context, agentID string, rating float64, totalReviews int) error {
	oid, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return domain.ErrPrincipalNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.agents.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"rating":        rating,
		"total_reviews": totalReviews,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update agent rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

// AverageAgentRating averages the rating of agents that have at least one review.
func (r *PrincipalRepository) AverageAgentRating(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"total_reviews": bson.M{"$gt": 0}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$rating"}}}},
	}
	cur, err := r.agents.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode average rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}

// EnsureIndexes creates the unique indexes both collections rely on.
func (r *PrincipalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	if _, err := r.renters.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("renter indexes: %w", err)
	}
	_, err := r.agents.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "license_number", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "service_areas", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("agent indexes: %w", err)
	}
	return nil
}

func notFound(err, sentinel error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}
