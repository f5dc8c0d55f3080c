package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	ListingSale = "sale"
	ListingRent = "rent"

	StatusDraft     = "draft"
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusRented    = "rented"
)

// Property is a single listing. Price is kept as a decimal and
// serialized as a string, like every bigint id.
type Property struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Title         string          `gorm:"type:varchar(200);not null" json:"title"`
	Slug          string          `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Description   string          `gorm:"type:text" json:"description"`
	PropertyType  string          `gorm:"type:varchar(32);not null;index" json:"property_type"`
	ListingType   string          `gorm:"type:varchar(16);not null;index" json:"listing_type"`
	Status        string          `gorm:"type:varchar(16);not null;default:available;index" json:"status"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	AreaSqft      int             `json:"area_sqft"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Address       string          `gorm:"type:text" json:"address"`
	City          string          `gorm:"type:varchar(120);not null;index" json:"city"`
	State         string          `gorm:"type:varchar(120)" json:"state"`
	PostalCode    string          `gorm:"type:varchar(20)" json:"postal_code"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	Amenities     datatypes.JSON  `json:"amenities"`
	Featured      bool            `gorm:"index" json:"featured"`
	AvailableFrom *datatypes.Date `json:"available_from"`
	ProjectID     *int64          `gorm:"index" json:"project_id,string"`
	AgentID       *int64          `gorm:"index" json:"agent_id,string"`
	Agent         *User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Media         []PropertyMedia `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CoverURL returns the cover image, falling back to the first gallery image.
func (p *Property) CoverURL() string {
	fallback := ""
	for _, m := range p.Media {
		if m.Category == MediaCover {
			return m.URL
		}
		if fallback == "" && m.Category == MediaGallery {
			fallback = m.URL
		}
	}
	return fallback
}
