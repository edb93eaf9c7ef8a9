package domain

import "time"

// MovingStatus represents the lifecycle state of a furniture moving request.
type MovingStatus string

const (
	MovingPending    MovingStatus = "pending"
	MovingQuoted     MovingStatus = "quoted"
	MovingAccepted   MovingStatus = "accepted"
	MovingScheduled  MovingStatus = "scheduled"
	MovingInProgress MovingStatus = "in_progress"
	MovingCompleted  MovingStatus = "completed"
	MovingCancelled  MovingStatus = "cancelled"
)

var movingTransitions = map[MovingStatus][]MovingStatus{
	MovingPending:    {MovingQuoted, MovingCancelled},
	MovingQuoted:     {MovingAccepted, MovingCancelled},
	MovingAccepted:   {MovingScheduled, MovingCancelled},
	MovingScheduled:  {MovingInProgress, MovingCancelled},
	MovingInProgress: {MovingCompleted},
}

// CanTransitionTo reports whether a moving request may move from s to next.
func (s MovingStatus) CanTransitionTo(next MovingStatus) bool {
	for _, allowed := range movingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s MovingStatus) Valid() bool {
	switch s {
	case MovingPending, MovingQuoted, MovingAccepted, MovingScheduled,
		MovingInProgress, MovingCompleted, MovingCancelled:
		return true
	}
	return false
}

// PostalAddress is one end of a move.
type PostalAddress struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
}

// MovingRequest is a renter's request for a furniture moving service.
type MovingRequest struct {
	ID       string        `json:"id" bson:"_id,omitempty"`
	RenterID string        `json:"user_id" bson:"renter_id"`
	Pickup   PostalAddress `json:"pickup" bson:"pickup"`
	Delivery PostalAddress `json:"delivery" bson:"delivery"`

	PreferredDate       *time.Time `json:"preferred_date,omitempty" bson:"preferred_date,omitempty"`
	FlexibleDates       string     `json:"flexible_dates,omitempty" bson:"flexible_dates,omitempty"`
	FurnitureList       []string   `json:"furniture_list" bson:"furniture_list"`
	SpecialInstructions string     `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
	EstimatedHours      *float64   `json:"estimated_hours,omitempty" bson:"estimated_hours,omitempty"`

	EstimatedCost *float64 `json:"estimated_cost,omitempty" bson:"estimated_cost,omitempty"`
	FinalCost     *float64 `json:"final_cost,omitempty" bson:"final_cost,omitempty"`

	Status          MovingStatus `json:"status" bson:"status"`
	AssignedCompany string       `json:"assigned_company,omitempty" bson:"assigned_company,omitempty"`
	TrackingNumber  string       `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`

	ContactPhone string `json:"contact_phone" bson:"contact_phone"`
	ContactEmail string `json:"contact_email" bson:"contact_email"`

	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty" bson:"scheduled_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
}
