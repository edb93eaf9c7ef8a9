package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a renter's rating of an agent.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	AgentID   string    `json:"agent_id" bson:"agent_id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Author    string    `json:"author" bson:"author"`
	Rating    int       `json:"rating" bson:"rating"`
	Date      string    `json:"date" bson:"date"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AgentStats holds the self-reported performance figures shown on an agent profile.
type AgentStats struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	AgentID             string    `json:"agent_id" bson:"agent_id"`
	TotalRentals        int       `json:"total_rentals" bson:"total_rentals"`
	AverageResponseTime string    `json:"average_response_time,omitempty" bson:"average_response_time,omitempty"`
	ClientSatisfaction  string    `json:"client_satisfaction,omitempty" bson:"client_satisfaction,omitempty"`
	RepeatClients       string    `json:"repeat_clients,omitempty" bson:"repeat_clients,omitempty"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}
