// Package fare computes per-passenger bus fares and booking totals.
//
// Everything here is pure: no I/O, no shared state. Callers pass a base fare
// and the passenger list and get a fresh BookingFareSummary back.
package fare

import (
	"math"

	"busbooking/internal/domain/models"
)

const (
	freeAgeLimit   = 5  // under this age travels free
	childAgeLimit  = 12 // under this age pays childRate
	seniorAgeStart = 60 // from this age pays seniorRate

	childRate  = 0.5
	seniorRate = 0.75

	// GroupThreshold is the passenger count that must be exceeded before the
	// group discount applies.
	GroupThreshold = 4
	GroupDiscount  = 0.10
)

// AgeBand names the tier a passenger falls into.
type AgeBand string

const (
	BandFree   AgeBand = "free"
	BandChild  AgeBand = "child"
	BandAdult  AgeBand = "adult"
	BandSenior AgeBand = "senior"
)

// Band returns the age band for age. Bands are checked in order, first match
// wins. Ages are not validated here; anything below freeAgeLimit is free.
func Band(age int) AgeBand {
	switch {
	case age < freeAgeLimit:
		return BandFree
	case age < childAgeLimit:
		return BandChild
	case age >= seniorAgeStart:
		return BandSenior
	default:
		return BandAdult
	}
}

// PassengerFare returns the unrounded fare for one passenger.
func PassengerFare(age int, baseFare float64) float64 {
	switch Band(age) {
	case BandFree:
		return 0
	case BandChild:
		return baseFare * childRate
	case BandSenior:
		return baseFare * seniorRate
	default:
		return baseFare
	}
}

// BookingSummary prices every passenger against baseFare and applies the
// group discount. The running total uses unrounded fares; only the values
// placed in the summary are rounded.
func BookingSummary(baseFare float64, passengers []models.Passenger) models.BookingFareSummary {
	results := make([]models.PassengerFareResult, 0, len(passengers))
	total := 0.0
	for _, p := range passengers {
		f := PassengerFare(p.Age, baseFare)
		total += f
		results = append(results, models.PassengerFareResult{
			Name: p.Name,
			Age:  p.Age,
			Fare: Round2(f),
		})
	}

	discount := 0.0
	if len(passengers) > GroupThreshold {
		discount = total * GroupDiscount
		total -= discount
	}
	if total < 0 {
		total = 0
	}

	return models.BookingFareSummary{
		BaseFare:   Round2(baseFare),
		Passengers: results,
		Discount:   Round2(discount),
		TotalFare:  Round2(total),
	}
}

// Round2 rounds v to 2 fractional digits, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
