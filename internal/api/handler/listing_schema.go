package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/ports"
)

// listingRequest is shared by create and update. The service enforces the
// fields required on create; here only shape and ranges are checked.
type listingRequest struct {
	Title           *string    `json:"title"            validate:"omitempty,min=1"`
	Description     *string    `json:"description"`
	Address         *string    `json:"address"`
	City            *string    `json:"city"`
	State           *string    `json:"state"`
	ZipCode         *string    `json:"zip_code"`
	Country         *string    `json:"country"`
	Latitude        *float64   `json:"latitude"         validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64   `json:"longitude"        validate:"omitempty,gte=-180,lte=180"`
	PropertyType    *string    `json:"property_type"`
	Bedrooms        *int       `json:"bedrooms"         validate:"omitempty,gte=0"`
	Bathrooms       *float64   `json:"bathrooms"        validate:"omitempty,gte=0"`
	SquareFeet      *int       `json:"square_feet"      validate:"omitempty,gt=0"`
	LotSize         *float64   `json:"lot_size"         validate:"omitempty,gt=0"`
	YearBuilt       *int       `json:"year_built"       validate:"omitempty,gt=0"`
	RentPrice       *float64   `json:"rent_price"       validate:"omitempty,gt=0"`
	SecurityDeposit *float64   `json:"security_deposit" validate:"omitempty,gte=0"`
	LeaseTerm       *string    `json:"lease_term"`
	AvailableDate   *time.Time `json:"available_date"`
	Amenities       []string   `json:"amenities"`
	Features        []string   `json:"features"`
	PetPolicy       *string    `json:"pet_policy"`
	Parking         *string    `json:"parking"`
	Images          []string   `json:"images"`
	VirtualTourURL  *string    `json:"virtual_tour_url" validate:"omitempty,url"`
	FloorPlanURL    *string    `json:"floor_plan_url"   validate:"omitempty,url"`
	Available       *bool      `json:"is_available"`
	Featured        *bool      `json:"is_featured"`
}

func (r listingRequest) toInput() ports.ListingInput {
	return ports.ListingInput{
		Title:           r.Title,
		Description:     r.Description,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		ZipCode:         r.ZipCode,
		Country:         r.Country,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		PropertyType:    r.PropertyType,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		SquareFeet:      r.SquareFeet,
		LotSize:         r.LotSize,
		YearBuilt:       r.YearBuilt,
		RentPrice:       r.RentPrice,
		SecurityDeposit: r.SecurityDeposit,
		LeaseTerm:       r.LeaseTerm,
		AvailableDate:   r.AvailableDate,
		Amenities:       r.Amenities,
		Features:        r.Features,
		PetPolicy:       r.PetPolicy,
		Parking:         r.Parking,
		Images:          r.Images,
		VirtualTourURL:  r.VirtualTourURL,
		FloorPlanURL:    r.FloorPlanURL,
		Available:       r.Available,
		Featured:        r.Featured,
	}
}

// searchFilter reads the GET /houses/search query string. available_only
// defaults to true; absent range bounds stay nil.
func searchFilter(c echo.Context) (ports.ListingFilter, error) {
	f := ports.ListingFilter{AvailableOnly: true, Limit: defaultLimit}
	b := echo.QueryParamsBinder(c).
		String("city", &f.City).
		String("state", &f.State).
		String("property_type", &f.PropertyType).
		String("pet_policy", &f.PetPolicy).
		String("parking", &f.Parking).
		Bool("available_only", &f.AvailableOnly).
		Int("offset", &f.Offset).
		Int("limit", &f.Limit)

	f.MinPrice = optional(c, b, "min_price", (*echo.ValueBinder).Float64)
	f.MaxPrice = optional(c, b, "max_price", (*echo.ValueBinder).Float64)
	f.MinBedrooms = optional(c, b, "min_bedrooms", (*echo.ValueBinder).Int)
	f.MaxBedrooms = optional(c, b, "max_bedrooms", (*echo.ValueBinder).Int)
	f.MinBathrooms = optional(c, b, "min_bathrooms", (*echo.ValueBinder).Float64)
	f.MaxBathrooms = optional(c, b, "max_bathrooms", (*echo.ValueBinder).Float64)

	if err := b.BindError(); err != nil {
		return ports.ListingFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid search parameters")
	}
	return f, nil
}

// optional binds a query parameter into a fresh value, or returns nil when the
// parameter is absent.
func optional[T any](c echo.Context, b *echo.ValueBinder, name string, bind func(*echo.ValueBinder, string, *T) *echo.ValueBinder) *T {
	if c.QueryParam(name) == "" {
		return nil
	}
	v := new(T)
	bind(b, name, v)
	return v
}
