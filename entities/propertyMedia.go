package entities

import "time"

const (
	MediaCover     = "cover"
	MediaGallery   = "gallery"
	MediaFloorPlan = "floor_plan"
	MediaVideo     = "video"
	MediaBrochure  = "brochure"
)

// PropertyMedia is one object stored in the media bucket.
type PropertyMedia struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	PropertyID   int64     `gorm:"index;not null" json:"property_id,string"`
	Category     string    `gorm:"type:varchar(16);not null;index" json:"category"`
	ObjectKey    string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"object_key"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	ContentType  string    `gorm:"type:varchar(128)" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes,string"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	OriginalName string    `gorm:"type:varchar(255)" json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PropertyMedia) TableName() string {
	return "property_media"
}
