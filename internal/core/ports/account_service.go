package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// RegisterRenterInput carries the sign-up data for a renter.
type RegisterRenterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Bio      string
}

// RegisterAgentInput carries the sign-up data for an agent.
type RegisterAgentInput struct {
	Username        string
	Email           string
	Password        string
	FullName        string
	Title           string
	Phone           string
	LicenseNumber   string
	Company         string
	Bio             string
	YearsExperience int
	Specialties     []string
	ServiceAreas    []string
	Languages       []string
	Certifications  []string
	Achievements    []string
	ProfilePicture  string
	Avatar          string
}

// ProfileUpdate is a partial update of the fields shared by both kinds.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	Username       *string
	Email          *string
	FullName       *string
	Phone          *string
	Bio            *string
	ProfilePicture *string
}

// AgentProfileUpdate adds the agent-only fields to ProfileUpdate.
type AgentProfileUpdate struct {
	ProfileUpdate
	Company         *string
	YearsExperience *int
	Specialties     []string
	ServiceAreas    []string
}

// AccountService manages sign-up, profiles and activation.
type AccountService interface {
	RegisterRenter(ctx context.Context, in RegisterRenterInput) (*domain.Renter, error)
	RegisterAgent(ctx context.Context, in RegisterAgentInput) (*domain.Agent, error)
	UpdateRenterProfile(ctx context.Context, renter *domain.Renter, in ProfileUpdate) (*domain.Renter, error)
	UpdateAgentProfile(ctx context.Context, agent *domain.Agent, in AgentProfileUpdate) (*domain.Agent, error)
	SetActive(ctx context.Context, kind domain.Kind, id string, active bool) (domain.Principal, error)
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	ListAgents(ctx context.Context, filter AgentFilter) ([]*domain.Agent, error)
}
