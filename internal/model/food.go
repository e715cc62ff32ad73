package model

import "github.com/bwmarrin/snowflake"

// Food is a donation listing offered by its author.
// Identifiers serialize as quoted decimal strings.
type Food struct {
	ID                  snowflake.ID `json:"uid" db:"id"`
	AuthorID            snowflake.ID `json:"authorId" db:"author_id"`
	Title               string       `json:"title" db:"title"`
	Description         string       `json:"description" db:"description"`
	IncludesVegetarian  bool         `json:"includesVegetarian" db:"includes_vegetarian"`
	NeedTableware       bool         `json:"needTableware" db:"need_tableware"`
	Tags                []int64      `json:"tags" db:"tags"`
	Latitude            float64      `json:"latitude" db:"latitude"`
	Longitude           float64      `json:"longitude" db:"longitude"`
	LocationDescription string       `json:"locationDescription" db:"location_description"`
	ValidityPeriod      float64      `json:"validityPeriod" db:"validity_period"`
	ImageCount          int          `json:"imageCount" db:"image_count"`
	CreatedAt           int64        `json:"createdAt" db:"created_at"`
}

// FoodCreate carries the caller supplied fields of a new listing.
type FoodCreate struct {
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	IncludesVegetarian  bool    `json:"includesVegetarian"`
	NeedTableware       bool    `json:"needTableware"`
	Tags                []int64 `json:"tags"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	LocationDescription string  `json:"locationDescription"`
	// ValidityPeriod is in hours.
	ValidityPeriod float64 `json:"validityPeriod"`
	// CreatedAt is a Unix timestamp in seconds; zero means now.
	CreatedAt int64 `json:"createdAt"`
}

// FoodImage links a stored object to a gallery position of a food.
type FoodImage struct {
	FoodID      snowflake.ID
	Index       int
	StorageKey  string
	ContentType string
}
