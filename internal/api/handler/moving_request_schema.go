package handler

import (
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

// movingRequestRequest uses the flat pickup_*/delivery_* layout clients
// already send. Create requires both addresses. On update any pickup_* or
// delivery_* field replaces that whole address, so street and city must come
// with it.
type movingRequestRequest struct {
	PickupAddress       string     `json:"pickup_address"`
	PickupCity          string     `json:"pickup_city"`
	PickupState         string     `json:"pickup_state"`
	PickupZip           string     `json:"pickup_zip"`
	DeliveryAddress     string     `json:"delivery_address"`
	DeliveryCity        string     `json:"delivery_city"`
	DeliveryState       string     `json:"delivery_state"`
	DeliveryZip         string     `json:"delivery_zip"`
	PreferredDate       *time.Time `json:"preferred_date"`
	FlexibleDates       *string    `json:"flexible_dates"`
	FurnitureList       []string   `json:"furniture_list"`
	SpecialInstructions *string    `json:"special_instructions"`
	ContactPhone        *string    `json:"contact_phone"`
	ContactEmail        *string    `json:"contact_email" validate:"omitempty,email"`
}

func (r movingRequestRequest) toInput() ports.MovingRequestInput {
	return ports.MovingRequestInput{
		Pickup:              addressInput(r.PickupAddress, r.PickupCity, r.PickupState, r.PickupZip),
		Delivery:            addressInput(r.DeliveryAddress, r.DeliveryCity, r.DeliveryState, r.DeliveryZip),
		PreferredDate:       r.PreferredDate,
		FlexibleDates:       r.FlexibleDates,
		FurnitureList:       r.FurnitureList,
		SpecialInstructions: r.SpecialInstructions,
		ContactPhone:        r.ContactPhone,
		ContactEmail:        r.ContactEmail,
	}
}

func addressInput(address, city, state, zip string) *ports.AddressInput {
	if address == "" && city == "" && state == "" && zip == "" {
		return nil
	}
	return &ports.AddressInput{Address: address, City: city, State: state, Zip: zip}
}

type movingStatusRequest struct {
	Status          domain.MovingStatus `json:"status"           validate:"required,oneof=pending quoted accepted scheduled in_progress completed cancelled"`
	EstimatedHours  *float64            `json:"estimated_hours"  validate:"omitempty,gte=0"`
	EstimatedCost   *float64            `json:"estimated_cost"   validate:"omitempty,gte=0"`
	FinalCost       *float64            `json:"final_cost"       validate:"omitempty,gte=0"`
	AssignedCompany *string             `json:"assigned_company"`
	TrackingNumber  *string             `json:"tracking_number"`
	ScheduledDate   *time.Time          `json:"scheduled_date"`
}

func (r movingStatusRequest) toInput() ports.MovingStatusUpdate {
	return ports.MovingStatusUpdate{
		Status:          r.Status,
		EstimatedHours:  r.EstimatedHours,
		EstimatedCost:   r.EstimatedCost,
		FinalCost:       r.FinalCost,
		AssignedCompany: r.AssignedCompany,
		TrackingNumber:  r.TrackingNumber,
		ScheduledDate:   r.ScheduledDate,
	}
}
