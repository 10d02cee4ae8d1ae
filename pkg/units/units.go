// Package units converts buoy readings from the metric units NDBC reports
// in to the standard units sessions are logged in.
package units

import "math"

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CardinalDirection converts a direction in degrees to the nearest of the
// eight compass cardinals, one per 45 degree slice starting at north.
func CardinalDirection(degrees int) string {
	d := degrees % 360
	if d < 0 {
		d += 360
	}
	return cardinals[(d/45)%8]
}

// MetersToFeet converts meters to feet, rounded to one decimal.
func MetersToFeet(m float64) float64 {
	return round1(m * 3.28084)
}

// FeetToMeters converts feet to meters, rounded to one decimal.
func FeetToMeters(ft float64) float64 {
	return round1(ft / 3.28084)
}

// MetersPerSecToMPH converts m/s to miles per hour, rounded to one decimal.
func MetersPerSecToMPH(ms float64) float64 {
	return round1(ms * 2.236936)
}

// CelsiusToFahrenheit converts degrees C to degrees F, rounded to one decimal.
func CelsiusToFahrenheit(c float64) float64 {
	return round1(c*9.0/5.0 + 32.0)
}

// FahrenheitToCelsius converts degrees F to degrees C, rounded to one decimal.
func FahrenheitToCelsius(f float64) float64 {
	return round1((f - 32.0) * 5.0 / 9.0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
