package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

// ── principals ────────────────────────────────────────────────────────────────

type stubPrincipalRepo struct {
	mu      sync.Mutex
	renters map[string]*domain.Renter
	agents  map[string]*domain.Agent
	seq     int

	// lookupErr, when set, is returned by every lookup.
	lookupErr error
}

func newStubPrincipalRepo() *stubPrincipalRepo {
	return &stubPrincipalRepo{
		renters: make(map[string]*domain.Renter),
		agents:  make(map[string]*domain.Agent),
	}
}

func clonePrincipal(p domain.Principal) domain.Principal {
	return domain.MatchPrincipal(p,
		func(r *domain.Renter) domain.Principal { c := *r; return &c },
		func(a *domain.Agent) domain.Principal { c := *a; return &c },
	)
}

func (r *stubPrincipalRepo) FindByUsername(_ context.Context, kind domain.Kind, username string) (domain.Principal, error) {
	return r.find(kind, func(a *domain.Account) bool { return a.Username == username })
}

func (r *stubPrincipalRepo) FindByEmail(_ context.Context, kind domain.Kind, email string) (domain.Principal, error) {
	return r.find(kind, func(a *domain.Account) bool { return a.Email == email })
}

func (r *stubPrincipalRepo) find(kind domain.Kind, match func(*domain.Account) bool) (domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	switch kind {
	case domain.KindRenter:
		for _, v := range r.renters {
			if match(&v.Account) {
				return clonePrincipal(v), nil
			}
		}
	case domain.KindAgent:
		for _, v := range r.agents {
			if match(&v.Account) {
				return clonePrincipal(v), nil
			}
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) Save(_ context.Context, p domain.Principal) (domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := clonePrincipal(p)
	acc := c.Credentials()
	for _, other := range r.accounts(c.Kind()) {
		if other.ID == acc.ID {
			continue
		}
		if other.Username == acc.Username || other.Email == acc.Email {
			return nil, domain.ErrPrincipalExists
		}
	}
	if a, ok := c.(*domain.Agent); ok {
		for _, other := range r.agents {
			if other.ID != a.ID && other.LicenseNumber == a.LicenseNumber {
				return nil, domain.ErrPrincipalExists
			}
		}
	}
	if acc.ID == "" {
		r.seq++
		acc.ID = fmt.Sprintf("%s-%d", c.Kind(), r.seq)
	} else if a, ok := c.(*domain.Agent); ok {
		stored, exists := r.agents[a.ID]
		if !exists {
			return nil, domain.ErrPrincipalNotFound
		}
		a.Rating, a.TotalReviews = stored.Rating, stored.TotalReviews
	} else if _, exists := r.renters[acc.ID]; !exists {
		return nil, domain.ErrPrincipalNotFound
	}
	domain.MatchPrincipal(c,
		func(v *domain.Renter) struct{} { r.renters[v.ID] = v; return struct{}{} },
		func(v *domain.Agent) struct{} { r.agents[v.ID] = v; return struct{}{} },
	)
	return clonePrincipal(c), nil
}

func (r *stubPrincipalRepo) accounts(kind domain.Kind) []*domain.Account {
	var out []*domain.Account
	if kind == domain.KindRenter {
		for _, v := range r.renters {
			out = append(out, &v.Account)
		}
		return out
	}
	for _, v := range r.agents {
		out = append(out, &v.Account)
	}
	return out
}

func (r *stubPrincipalRepo) FindRenterByID(_ context.Context, id string) (*domain.Renter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.renters[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubPrincipalRepo) FindAgentByID(_ context.Context, id string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.agents[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubPrincipalRepo) ListAgents(_ context.Context, f ports.AgentFilter) ([]*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Agent
	for _, v := range r.agents {
		if !v.Active {
			continue
		}
		if f.City != "" && !containsFold(v.ServiceAreas, f.City) {
			continue
		}
		if f.Specialty != "" && !containsFold(v.Specialties, f.Specialty) {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, f.Skip, f.Limit), nil
}

func (r *stubPrincipalRepo) ListRenters(_ context.Context, skip, limit int) ([]*domain.Renter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Renter
	for _, v := range r.renters {
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, skip, limit), nil
}

func (r *stubPrincipalRepo) Count(_ context.Context, kind domain.Kind, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.accounts(kind) {
		if !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *stubPrincipalRepo) UpdateAgentRating(_ context.Context, agentID string, rating float64, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agents[agentID]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	a.Rating = rating
	a.TotalReviews = total
	return nil
}

func (r *stubPrincipalRepo) AverageAgentRating(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	var n int
	for _, a := range r.agents {
		if a.TotalReviews > 0 {
			sum += a.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// ── fixtures ──────────────────────────────────────────────────────────────────

func mustDigest(password string) string {
	d, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(d)
}

// seedMarketplace stores the two fixture principals used across tests: the
// renter johnsmith and the agent sarahjohnson.
func seedMarketplace(repo *stubPrincipalRepo) (*domain.Renter, *domain.Agent) {
	now := time.Now().UTC()
	john, err := repo.Save(context.Background(), &domain.Renter{Account: domain.Account{
		Username:     "johnsmith",
		Email:        "john.smith@email.com",
		PasswordHash: mustDigest("password123"),
		FullName:     "John Smith",
		Active:       true,
		CreatedAt:    now,
	}})
	if err != nil {
		panic(err)
	}
	sarah, err := repo.Save(context.Background(), &domain.Agent{
		Account: domain.Account{
			Username:     "sarahjohnson",
			Email:        "sarah.johnson@realty.com",
			PasswordHash: mustDigest("agent123"),
			FullName:     "Sarah Johnson",
			Active:       true,
			CreatedAt:    now,
		},
		LicenseNumber: "RE123456",
		Company:       "Premier Realty",
		ServiceAreas:  []string{"Austin", "Round Rock"},
		Specialties:   []string{"Luxury Homes"},
	})
	if err != nil {
		panic(err)
	}
	return john.(*domain.Renter), sarah.(*domain.Agent)
}

// ── listings ──────────────────────────────────────────────────────────────────

type stubListingRepo struct {
	mu       sync.Mutex
	listings map[string]*domain.Listing
	seq      int
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = fmt.Sprintf("listing-%d", r.seq)
	c := *l
	r.listings[l.ID] = &c
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	c := *l
	return &c, nil
}

func (r *stubListingRepo) Update(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.listings[l.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.ViewsCount, l.CreatedAt = stored.ViewsCount, stored.CreatedAt
	c := *l
	r.listings[l.ID] = &c
	return nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *stubListingRepo) Search(_ context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Listing
	for _, l := range r.listings {
		if f.AgentID != "" && l.AgentID != f.AgentID {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(l.Location.City), strings.ToLower(f.City)) {
			continue
		}
		if f.MinPrice != nil && l.RentPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && l.RentPrice > *f.MaxPrice {
			continue
		}
		if f.MinBedrooms != nil && l.Bedrooms < *f.MinBedrooms {
			continue
		}
		if f.AvailableOnly && !l.Available {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, f.Offset, f.Limit), nil
}

func (r *stubListingRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.ViewsCount++
	return nil
}

func (r *stubListingRepo) Totals(_ context.Context, agentID string) (ports.ListingTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var t ports.ListingTotals
	for _, l := range r.listings {
		if agentID != "" && l.AgentID != agentID {
			continue
		}
		t.Total++
		if l.Available {
			t.Available++
		} else {
			t.Rented++
			t.Revenue += l.RentPrice
		}
	}
	return t, nil
}

type stubDeduper struct {
	seen map[string]bool
	err  error
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{seen: make(map[string]bool)}
}

func (d *stubDeduper) FirstView(_ context.Context, listingID, viewerKey string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	key := listingID + "|" + viewerKey
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

// ── reviews & stats ───────────────────────────────────────────────────────────

type stubReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*domain.Review
	seq     int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rv.ID = fmt.Sprintf("review-%d", r.seq)
	c := *rv
	r.reviews[rv.ID] = &c
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	c := *rv
	return &c, nil
}

func (r *stubReviewRepo) ListByAgent(_ context.Context, agentID string) ([]*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Review
	for _, rv := range r.reviews {
		if rv.AgentID == agentID {
			c := *rv
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[rv.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	c := *rv
	r.reviews[rv.ID] = &c
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

type stubStatsRepo struct {
	stats map[string]*domain.AgentStats
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{stats: make(map[string]*domain.AgentStats)}
}

func (r *stubStatsRepo) FindByAgent(_ context.Context, agentID string) (*domain.AgentStats, error) {
	s, ok := r.stats[agentID]
	if !ok {
		return nil, domain.ErrAgentStatsNotFound
	}
	c := *s
	return &c, nil
}

func (r *stubStatsRepo) Upsert(_ context.Context, s *domain.AgentStats) error {
	if s.ID == "" {
		s.ID = "stats-" + s.AgentID
	}
	c := *s
	r.stats[s.AgentID] = &c
	return nil
}

func (r *stubStatsRepo) DeleteByAgent(_ context.Context, agentID string) error {
	if _, ok := r.stats[agentID]; !ok {
		return domain.ErrAgentStatsNotFound
	}
	delete(r.stats, agentID)
	return nil
}

// syncDispatcher applies rating events inline so tests observe the result
// without goroutines.
type syncDispatcher struct {
	refresher ports.RatingService
	events    []ports.AgentRatingEvent
}

func (d *syncDispatcher) Enqueue(ctx context.Context, e ports.AgentRatingEvent) error {
	d.events = append(d.events, e)
	if d.refresher == nil {
		return nil
	}
	return d.refresher.Refresh(ctx, e)
}

// ── moving requests ───────────────────────────────────────────────────────────

type stubMovingRepo struct {
	requests map[string]*domain.MovingRequest
	seq      int
}

func newStubMovingRepo() *stubMovingRepo {
	return &stubMovingRepo{requests: make(map[string]*domain.MovingRequest)}
}

func (r *stubMovingRepo) Create(_ context.Context, m *domain.MovingRequest) error {
	r.seq++
	m.ID = fmt.Sprintf("move-%d", r.seq)
	c := *m
	r.requests[m.ID] = &c
	return nil
}

func (r *stubMovingRepo) FindByID(_ context.Context, id string) (*domain.MovingRequest, error) {
	m, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrMovingRequestNotFound
	}
	c := *m
	return &c, nil
}

func (r *stubMovingRepo) List(_ context.Context, f ports.MovingRequestFilter) ([]*domain.MovingRequest, error) {
	var out []*domain.MovingRequest
	for _, m := range r.requests {
		if f.RenterID != "" && m.RenterID != f.RenterID {
			continue
		}
		if f.Status != "" && string(m.Status) != f.Status {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, f.Skip, f.Limit), nil
}

func (r *stubMovingRepo) Update(_ context.Context, m *domain.MovingRequest) error {
	if _, ok := r.requests[m.ID]; !ok {
		return domain.ErrMovingRequestNotFound
	}
	c := *m
	r.requests[m.ID] = &c
	return nil
}

func (r *stubMovingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return domain.ErrMovingRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *stubMovingRepo) Count(context.Context) (int64, error) {
	return int64(len(r.requests)), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

var errStoreDown = errors.New("store unavailable")

func ptr[T any](v T) *T { return &v }
