package geo

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidCoordinates is returned when a coordinate string is malformed.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// CoordinateFromString parses a string in the format "lon,lat" into a
// Coordinate. Extra components (e.g. an elevation) are ignored.
func CoordinateFromString(coords string) (Coordinate, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return Coordinate{}, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinates
	}
	return Coordinate{Lon: lon, Lat: lat}, nil
}
