package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingID         = errors.New("property record has no id")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrSourceUnavailable = errors.New("property source unavailable")
)

type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
)

// Image - one gallery picture.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type Location struct {
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	Geohash      string `json:"geohash,omitempty"`
}

// PropertyRecord - canonical record every view works with. Built fresh on
// every fetch and never mutated by the pipeline.
type PropertyRecord struct {
	ID              string
	Title           string
	Price           float64 // whole currency units, 0 means price on request
	Location        Location
	PropertyType    string
	TransactionType TransactionType

	Bedrooms     int
	Bathrooms    int
	ParkingSpots int
	Area         float64

	Images    []Image
	MainImage *Image

	Featured    bool
	Slug        string
	Description string
	PublishedAt time.Time
}

// HasPrice reports whether the record carries a real price.
func (p PropertyRecord) HasPrice() bool {
	return p.Price > 0
}
