package domain

import "time"

// Location is the postal address and optional coordinates of a listing.
type Location struct {
	Address   string   `json:"address" bson:"address"`
	City      string   `json:"city" bson:"city"`
	State     string   `json:"state" bson:"state"`
	ZipCode   string   `json:"zip_code" bson:"zip_code"`
	Country   string   `json:"country" bson:"country"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// Listing is a house or apartment offered for rent by an agent.
type Listing struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Location    Location `json:"location" bson:"location"`

	PropertyType string   `json:"property_type" bson:"property_type"`
	Bedrooms     int      `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms" bson:"bathrooms"`
	SquareFeet   *int     `json:"square_feet,omitempty" bson:"square_feet,omitempty"`
	LotSize      *float64 `json:"lot_size,omitempty" bson:"lot_size,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty" bson:"year_built,omitempty"`

	RentPrice       float64    `json:"rent_price" bson:"rent_price"`
	SecurityDeposit *float64   `json:"security_deposit,omitempty" bson:"security_deposit,omitempty"`
	LeaseTerm       string     `json:"lease_term,omitempty" bson:"lease_term,omitempty"`
	AvailableDate   *time.Time `json:"available_date,omitempty" bson:"available_date,omitempty"`
	Available       bool       `json:"is_available" bson:"is_available"`

	Amenities []string `json:"amenities" bson:"amenities"`
	Features  []string `json:"features" bson:"features"`
	PetPolicy string   `json:"pet_policy,omitempty" bson:"pet_policy,omitempty"`
	Parking   string   `json:"parking,omitempty" bson:"parking,omitempty"`

	Images         []string `json:"images" bson:"images"`
	VirtualTourURL string   `json:"virtual_tour_url,omitempty" bson:"virtual_tour_url,omitempty"`
	FloorPlanURL   string   `json:"floor_plan_url,omitempty" bson:"floor_plan_url,omitempty"`

	AgentID    string    `json:"agent_id" bson:"agent_id"`
	ViewsCount int64     `json:"views_count" bson:"views_count"`
	Featured   bool      `json:"is_featured" bson:"is_featured"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
