package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

const minPasswordLength = 6

type AccountService struct {
	repo   ports.PrincipalRepository
	hasher PasswordHasher
	logger zerolog.Logger
}

func NewAccountService(repo ports.PrincipalRepository, hasher PasswordHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, logger: logger}
}

// RegisterRenter creates an active, non-admin renter.
func (s *AccountService) RegisterRenter(ctx context.Context, in ports.RegisterRenterInput) (*domain.Renter, error) {
	account, err := s.newAccount(in.Username, in.Email, in.Password, in.FullName)
	if err != nil {
		return nil, err
	}
	account.Phone = in.Phone
	account.Bio = in.Bio

	saved, err := s.repo.Save(ctx, &domain.Renter{Account: account})
	if err != nil {
		return nil, fmt.Errorf("register renter: %w", err)
	}
	s.logger.Info().Str("renter_id", saved.Credentials().ID).Str("username", account.Username).Msg("renter registered")
	return saved.(*domain.Renter), nil
}

// RegisterAgent creates an active agent. The license number is mandatory.
func (s *AccountService) RegisterAgent(ctx context.Context, in ports.RegisterAgentInput) (*domain.Agent, error) {
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return nil, fmt.Errorf("%w: license number is required", domain.ErrInvalidInput)
	}
	if in.YearsExperience < 0 {
		return nil, fmt.Errorf("%w: years of experience cannot be negative", domain.ErrInvalidInput)
	}
	account, err := s.newAccount(in.Username, in.Email, in.Password, in.FullName)
	if err != nil {
		return nil, err
	}
	account.Phone = in.Phone
	account.Bio = in.Bio
	account.ProfilePicture = in.ProfilePicture

	agent := &domain.Agent{
		Account:         account,
		LicenseNumber:   strings.TrimSpace(in.LicenseNumber),
		Title:           in.Title,
		Company:         in.Company,
		Specialties:     nonNil(in.Specialties),
		ServiceAreas:    nonNil(in.ServiceAreas),
		Languages:       nonNil(in.Languages),
		Certifications:  nonNil(in.Certifications),
		Achievements:    nonNil(in.Achievements),
		Avatar:          in.Avatar,
		YearsExperience: in.YearsExperience,
	}

	saved, err := s.repo.Save(ctx, agent)
	if err != nil {
		return nil, fmt.Errorf("register agent: %w", err)
	}
	s.logger.Info().Str("agent_id", saved.Credentials().ID).Str("username", account.Username).Msg("agent registered")
	return saved.(*domain.Agent), nil
}

func (s *AccountService) UpdateRenterProfile(ctx context.Context, renter *domain.Renter, in ports.ProfileUpdate) (*domain.Renter, error) {
	updated := *renter
	if err := applyProfile(&updated.Account, in); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("update renter: %w", err)
	}
	return saved.(*domain.Renter), nil
}

func (s *AccountService) UpdateAgentProfile(ctx context.Context, agent *domain.Agent, in ports.AgentProfileUpdate) (*domain.Agent, error) {
	updated := *agent
	if err := applyProfile(&updated.Account, in.ProfileUpdate); err != nil {
		return nil, err
	}
	if in.Company != nil {
		updated.Company = *in.Company
	}
	if in.YearsExperience != nil {
		if *in.YearsExperience < 0 {
			return nil, fmt.Errorf("%w: years of experience cannot be negative", domain.ErrInvalidInput)
		}
		updated.YearsExperience = *in.YearsExperience
	}
	if in.Specialties != nil {
		updated.Specialties = in.Specialties
	}
	if in.ServiceAreas != nil {
		updated.ServiceAreas = in.ServiceAreas
	}
	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	return saved.(*domain.Agent), nil
}

// SetActive toggles the activation flag. Tokens already issued stay valid
// cryptographically but the guard rejects them from the next request on.
func (s *AccountService) SetActive(ctx context.Context, kind domain.Kind, id string, active bool) (domain.Principal, error) {
	var p domain.Principal
	switch kind {
	case domain.KindRenter:
		r, err := s.repo.FindRenterByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p = r
	case domain.KindAgent:
		a, err := s.repo.FindAgentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p = a
	default:
		return nil, fmt.Errorf("%w: unknown principal kind %q", domain.ErrInvalidInput, kind)
	}

	acc := p.Credentials()
	if acc.Active == active {
		return p, nil
	}
	acc.Active = active
	acc.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}
	s.logger.Info().
		Str("kind", string(kind)).
		Str("principal_id", id).
		Bool("active", active).
		Msg("principal activation changed")
	return saved, nil
}

func (s *AccountService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.repo.FindAgentByID(ctx, id)
}

func (s *AccountService) ListAgents(ctx context.Context, filter ports.AgentFilter) ([]*domain.Agent, error) {
	filter.Skip, filter.Limit = page(filter.Skip, filter.Limit)
	return s.repo.ListAgents(ctx, filter)
}

func (s *AccountService) newAccount(username, email, password, fullName string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || fullName == "" {
		return domain.Account{}, fmt.Errorf("%w: username and full name are required", domain.ErrInvalidInput)
	}
	email, err := bareEmail(email)
	if err != nil {
		return domain.Account{}, err
	}
	if len(password) < minPasswordLength {
		return domain.Account{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	return domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		FullName:     fullName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func applyProfile(acc *domain.Account, in ports.ProfileUpdate) error {
	if in.Username != nil {
		u := strings.TrimSpace(*in.Username)
		if u == "" {
			return fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
		}
		acc.Username = u
	}
	if in.Email != nil {
		email, err := bareEmail(*in.Email)
		if err != nil {
			return err
		}
		acc.Email = email
	}
	if in.FullName != nil {
		acc.FullName = *in.FullName
	}
	if in.Phone != nil {
		acc.Phone = *in.Phone
	}
	if in.Bio != nil {
		acc.Bio = *in.Bio
	}
	if in.ProfilePicture != nil {
		acc.ProfilePicture = *in.ProfilePicture
	}
	acc.UpdatedAt = time.Now().UTC()
	return nil
}

// bareEmail trims s and accepts only a plain address, so display-name forms
// such as "Sarah <s@x.com>" are rejected rather than stored.
func bareEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	return s, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
