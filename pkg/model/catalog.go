package model

import "time"

// Venue is a bookable hall or lawn. Name is the identity sessions reference;
// conflict checking matches it by exact string equality.
type Venue struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=10000"`
	VenueType   string    `json:"venueType,omitempty" bson:"venue_type,omitempty" validate:"omitempty,oneof=hall lawn poolside rooftop"`
	PricePerDay float64   `json:"pricePerDay,omitempty" bson:"price_per_day,omitempty" validate:"omitempty,min=0"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

type RoomType struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	TotalRooms    int       `json:"totalRooms" bson:"total_rooms" validate:"required,min=1,max=1000"`
	PricePerNight float64   `json:"pricePerNight,omitempty" bson:"price_per_night,omitempty" validate:"omitempty,min=0"`
	MaxOccupancy  int       `json:"maxOccupancy,omitempty" bson:"max_occupancy,omitempty" validate:"omitempty,min=1,max=20"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

type MenuPackage struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	PricePerPlate float64   `json:"pricePerPlate" bson:"price_per_plate" validate:"required,min=0"`
	MenuType      string    `json:"menuType,omitempty" bson:"menu_type,omitempty" validate:"omitempty,oneof=veg nonveg mixed"`
	Items         []string  `json:"items,omitempty" bson:"items,omitempty" validate:"omitempty,max=100,dive,required"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}
