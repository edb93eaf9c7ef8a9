package handler

// ErrorResponse is the error envelope of every 4xx/5xx response. The central
// HTTP error handler renders it.
type ErrorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Accounts ---

type registerRenterRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type registerAgentRequest struct {
	Username        string   `json:"username"         validate:"required,min=3,max=50"`
	Email           string   `json:"email"            validate:"required,email"`
	Password        string   `json:"password"         validate:"required,min=6"`
	FullName        string   `json:"full_name"        validate:"required"`
	Title           string   `json:"title"`
	Phone           string   `json:"phone"`
	LicenseNumber   string   `json:"license_number"   validate:"required"`
	Company         string   `json:"company"`
	Bio             string   `json:"bio"`
	YearsExperience int      `json:"years_experience" validate:"gte=0"`
	Specialties     []string `json:"specialties"`
	ServiceAreas    []string `json:"service_areas"`
	Languages       []string `json:"languages"`
	Certifications  []string `json:"certifications"`
	Achievements    []string `json:"achievements"`
	ProfilePicture  string   `json:"profile_picture"`
	Avatar          string   `json:"avatar"`
}

type profileUpdateRequest struct {
	Username       *string `json:"username"        validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

type agentProfileUpdateRequest struct {
	profileUpdateRequest
	Company         *string  `json:"company"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,gte=0"`
	Specialties     []string `json:"specialties"`
	ServiceAreas    []string `json:"service_areas"`
}

type activationRequest struct {
	Active *bool `json:"is_active" validate:"required"`
}

// --- Reviews ---

type reviewRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
	Rating  int    `json:"rating"   validate:"required,min=1,max=5"`
	Date    string `json:"date"`
	Comment string `json:"comment"  validate:"required"`
}

type agentStatsRequest struct {
	TotalRentals        int    `json:"total_rentals"         validate:"gte=0"`
	AverageResponseTime string `json:"average_response_time"`
	ClientSatisfaction  string `json:"client_satisfaction"`
	RepeatClients       string `json:"repeat_clients"`
}
