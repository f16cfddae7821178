package models

// Passenger is a single traveller on a booking request.
type Passenger struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// PassengerFareResult is the fare computed for one passenger, rounded to 2 dp.
type PassengerFareResult struct {
	Name string  `json:"name"`
	Age  int     `json:"age"`
	Fare float64 `json:"fare"`
}

// BookingFareSummary aggregates the per-passenger fares of one booking.
type BookingFareSummary struct {
	BaseFare   float64               `json:"base_fare"`
	Passengers []PassengerFareResult `json:"passenger_details"`
	Discount   float64               `json:"discount"`
	TotalFare  float64               `json:"total_fare"`
}
