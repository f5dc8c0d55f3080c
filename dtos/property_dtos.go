package dtos

import "github.com/shopspring/decimal"

// PropertyRequest is the body of POST /properties and the "property"
// field of POST /properties/with-media.
type PropertyRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Slug          string          `json:"slug" binding:"omitempty,slug,max=220"`
	Description   string          `json:"description"`
	PropertyType  string          `json:"property_type" binding:"required,oneof=apartment villa house plot commercial"`
	ListingType   string          `json:"listing_type" binding:"required,oneof=sale rent"`
	Status        string          `json:"status" binding:"omitempty,oneof=draft available sold rented"`
	Price         decimal.Decimal `json:"price"`
	AreaSqft      int             `json:"area_sqft" binding:"gte=0"`
	Bedrooms      int             `json:"bedrooms" binding:"gte=0,lte=50"`
	Bathrooms     int             `json:"bathrooms" binding:"gte=0,lte=50"`
	Address       string          `json:"address"`
	City          string          `json:"city" binding:"required,max=120"`
	State         string          `json:"state" binding:"max=120"`
	PostalCode    string          `json:"postal_code" binding:"max=20"`
	Latitude      *float64        `json:"latitude" binding:"omitempty,latitude"`
	Longitude     *float64        `json:"longitude" binding:"omitempty,longitude"`
	Amenities     []string        `json:"amenities" binding:"max=50,dive,max=80"`
	Featured      bool            `json:"featured"`
	AvailableFrom *string         `json:"available_from" binding:"omitempty,datetime=2006-01-02"`
	ProjectID     *int64          `json:"project_id"`
	AgentID       *int64          `json:"agent_id"`
}

type UpdatePropertyRequest struct {
	Title         *string          `json:"title" binding:"omitempty,max=200"`
	Slug          *string          `json:"slug" binding:"omitempty,slug,max=220"`
	Description   *string          `json:"description"`
	PropertyType  *string          `json:"property_type" binding:"omitempty,oneof=apartment villa house plot commercial"`
	ListingType   *string          `json:"listing_type" binding:"omitempty,oneof=sale rent"`
	Status        *string          `json:"status" binding:"omitempty,oneof=draft available sold rented"`
	Price         *decimal.Decimal `json:"price"`
	AreaSqft      *int             `json:"area_sqft" binding:"omitempty,gte=0"`
	Bedrooms      *int             `json:"bedrooms" binding:"omitempty,gte=0,lte=50"`
	Bathrooms     *int             `json:"bathrooms" binding:"omitempty,gte=0,lte=50"`
	Address       *string          `json:"address"`
	City          *string          `json:"city" binding:"omitempty,max=120"`
	State         *string          `json:"state" binding:"omitempty,max=120"`
	PostalCode    *string          `json:"postal_code" binding:"omitempty,max=20"`
	Latitude      *float64         `json:"latitude" binding:"omitempty,latitude"`
	Longitude     *float64         `json:"longitude" binding:"omitempty,longitude"`
	Amenities     []string         `json:"amenities" binding:"omitempty,max=50,dive,max=80"`
	Featured      *bool            `json:"featured"`
	AvailableFrom *string          `json:"available_from" binding:"omitempty,datetime=2006-01-02"`
	ProjectID     *int64           `json:"project_id"`
	AgentID       *int64           `json:"agent_id"`
}
