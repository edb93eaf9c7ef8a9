package domain

import "time"

// Kind identifies which principal variant a credential belongs to.
type Kind string

const (
	KindRenter Kind = "renter"
	KindAgent  Kind = "agent"
)

// Valid reports whether k names one of the known principal variants.
func (k Kind) Valid() bool {
	return k == KindRenter || k == KindAgent
}

// Capability is a privilege flag held by a principal, orthogonal to its kind.
type Capability string

const (
	CapabilityAdmin Capability = "admin"
)

// Account holds the credential and profile fields shared by every principal kind.
type Account struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Active         bool      `json:"is_active"`
	Verified       bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Renter is a principal looking for a home. Admin is the only extra privilege
// in the system and lives on this variant.
type Renter struct {
	Account
	Admin bool `json:"is_admin"`
}

// Agent is a licensed listing agent.
type Agent struct {
	Account
	LicenseNumber   string   `json:"license_number"`
	Title           string   `json:"title,omitempty"`
	Company         string   `json:"company,omitempty"`
	Specialties     []string `json:"specialties"`
	ServiceAreas    []string `json:"service_areas"`
	Languages       []string `json:"languages"`
	Certifications  []string `json:"certifications"`
	Achievements    []string `json:"achievements"`
	Avatar          string   `json:"avatar,omitempty"`
	Rating          float64  `json:"rating"`
	TotalReviews    int      `json:"total_reviews"`
	YearsExperience int      `json:"years_experience"`
}

// Principal is the closed set {*Renter, *Agent}. The unexported method keeps
// other packages from adding variants; use MatchPrincipal for kind-specific
// behaviour.
type Principal interface {
	Kind() Kind
	Credentials() *Account
	Has(c Capability) bool
	principal()
}

func (r *Renter) Kind() Kind            { return KindRenter }
func (r *Renter) Credentials() *Account { return &r.Account }
func (r *Renter) principal()            {}

// Has reports whether the renter holds capability c.
func (r *Renter) Has(c Capability) bool {
	return c == CapabilityAdmin && r.Admin
}

func (a *Agent) Kind() Kind            { return KindAgent }
func (a *Agent) Credentials() *Account { return &a.Account }
func (a *Agent) principal()            {}

// Has always reports false: agents carry no capabilities today.
func (a *Agent) Has(Capability) bool { return false }

// MatchPrincipal dispatches p to the branch for its variant. Both branches are
// mandatory, so a new variant breaks every call site at compile time instead
// of falling through silently.
func MatchPrincipal[T any](p Principal, onRenter func(*Renter) T, onAgent func(*Agent) T) T {
	switch v := p.(type) {
	case *Renter:
		return onRenter(v)
	case *Agent:
		return onAgent(v)
	default:
		panic("domain: unknown principal variant")
	}
}
