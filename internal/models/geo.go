package models

import "github.com/shenikar/emergency_dispatch_system/pkg/geo"

// GeoPoint - географическая точка (долгота, широта)
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// DistanceKm возвращает расстояние до другой точки в километрах
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	return geo.DistanceKm(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}
