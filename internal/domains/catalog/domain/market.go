package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrEmptyMarketName  = errors.New("market name is required")
	ErrInvalidLocation  = errors.New("coordinates are out of range")
	ErrInvalidMarketETA = errors.New("estimated delivery time must not be negative")
	ErrUnknownMarket    = errors.New("product references an unknown market")
)

const earthRadiusKm = 6371.0

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinates fall inside WGS84 bounds.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// DistanceKm returns the haversine distance to other, rounded to two decimals.
func (l Location) DistanceKm(other Location) float64 {
	dLat := toRadians(other.Lat - l.Lat)
	dLng := toRadians(other.Lng - l.Lng)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(l.Lat))*math.Cos(toRadians(other.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Market is a partner store selling rescued products.
type Market struct {
	ID                       string
	Name                     string
	Address                  string
	Location                 Location
	ReferenceDistanceKm      float64
	Rating                   float64
	IsOpen                   bool
	OpeningHours             string
	DeliveryAvailable        bool
	PickupAvailable          bool
	EstimatedDeliveryMinutes int
	Phone                    string
	Image                    string
}

// Validate enforces the market invariants.
func (m *Market) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	if m.ID == "" || m.Name == "" {
		return ErrEmptyMarketName
	}
	if !m.Location.Valid() {
		return ErrInvalidLocation
	}
	if m.EstimatedDeliveryMinutes < 0 {
		return ErrInvalidMarketETA
	}
	return nil
}

// DistanceFrom returns the distance to origin, or the reference distance when origin is unknown.
func (m *Market) DistanceFrom(origin *Location) float64 {
	if origin == nil {
		return m.ReferenceDistanceKm
	}
	return origin.DistanceKm(m.Location)
}
