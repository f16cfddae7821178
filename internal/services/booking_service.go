package services

import (
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/fare"
	"busbooking/internal/utils"

	"github.com/rs/zerolog/log"
)

// RouteCatalog is the read side of the route dataset.
type RouteCatalog interface {
	Search(from, to, busType string) ([]models.RouteRecord, error)
	Find(from, to, routeNo string) (models.RouteRecord, error)
}

type SearchQuery struct {
	From string
	To   string
	Type string
}

type SearchResult struct {
	Query SearchQuery
	Buses []models.RouteRecord
}

// BookingRequest is a booking after transport decoding. Passengers keep the
// order they were submitted in.
type BookingRequest struct {
	From       string
	To         string
	Date       string
	BusType    string
	RouteNo    string
	Passengers []models.Passenger
}

type BookingResult struct {
	RouteNo         string
	From            string
	To              string
	Date            string
	BusType         string
	TotalPassengers int
	Summary         models.BookingFareSummary
}

type BookingService struct {
	Catalog   RouteCatalog
	RequestID string
}

// SearchBuses lists buses for a route and type. An empty result is a normal
// outcome and is returned without error.
func (s BookingService) SearchBuses(ctx context.Context, q SearchQuery) (SearchResult, error) {
	q.From = utils.NormalizeSpace(q.From)
	q.To = utils.NormalizeSpace(q.To)
	q.Type = utils.NormalizeSpace(q.Type)

	switch {
	case q.From == "":
		return SearchResult{}, domain.ValidationError{Field: "from", Msg: "required"}
	case q.To == "":
		return SearchResult{}, domain.ValidationError{Field: "to", Msg: "required"}
	case q.Type == "":
		return SearchResult{}, domain.ValidationError{Field: "type", Msg: "required"}
	}
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	buses, err := s.Catalog.Search(q.From, q.To, q.Type)
	if err != nil {
		return SearchResult{}, err
	}
	utils.LogEvent(s.RequestID, "search", "search_buses",
		fmt.Sprintf("from=%s to=%s type=%s found=%d", q.From, q.To, q.Type, len(buses)))
	return SearchResult{Query: q, Buses: buses}, nil
}

// SubmitBooking prices a booking against the selected route. Nothing is
// stored; the result exists only for the response.
func (s BookingService) SubmitBooking(ctx context.Context, req BookingRequest) (BookingResult, error) {
	req, err := normalizeBooking(req)
	if err != nil {
		return BookingResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return BookingResult{}, err
	}

	route, err := s.Catalog.Find(req.From, req.To, req.RouteNo)
	if err != nil {
		return BookingResult{}, err
	}

	busType := req.BusType
	if busType == "" {
		busType = route.Type
	}

	res := BookingResult{
		RouteNo:         req.RouteNo,
		From:            req.From,
		To:              req.To,
		Date:            req.Date,
		BusType:         busType,
		TotalPassengers: len(req.Passengers),
		Summary:         fare.BookingSummary(route.Fare, req.Passengers),
	}
	s.logBooking(res)
	return res, nil
}

func normalizeBooking(req BookingRequest) (BookingRequest, error) {
	req.From = utils.NormalizeSpace(req.From)
	req.To = utils.NormalizeSpace(req.To)
	req.RouteNo = utils.NormalizeSpace(req.RouteNo)
	req.BusType = utils.NormalizeSpace(req.BusType)
	req.Date = strings.TrimSpace(req.Date)

	switch {
	case req.From == "":
		return req, domain.ValidationError{Field: "from", Msg: "required"}
	case req.To == "":
		return req, domain.ValidationError{Field: "to", Msg: "required"}
	case req.RouteNo == "":
		return req, domain.ValidationError{Field: "routeNo", Msg: "required"}
	}
	if req.Date != "" {
		if _, err := utils.ParseDate(req.Date); err != nil {
			return req, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
	}

	clean := make([]models.Passenger, 0, len(req.Passengers))
	for i, p := range req.Passengers {
		name := utils.NormalizeSpace(p.Name)
		if name == "" {
			return req, domain.ValidationError{Field: fmt.Sprintf("passengers[%d].name", i), Msg: "required"}
		}
		if p.Age < 0 {
			return req, domain.ValidationError{Field: fmt.Sprintf("passengers[%d].age", i), Msg: "must not be negative"}
		}
		clean = append(clean, models.Passenger{Name: name, Age: p.Age})
	}
	req.Passengers = clean
	return req, nil
}

func (s BookingService) logBooking(res BookingResult) {
	passengers := make([]string, 0, len(res.Summary.Passengers))
	for i, p := range res.Summary.Passengers {
		passengers = append(passengers, fmt.Sprintf("%d. %s (age %d, %s) %s",
			i+1, p.Name, p.Age, fare.Band(p.Age), utils.FormatRupee(p.Fare)))
	}

	ev := log.Info().
		Str("module", "BOOKING").
		Str("request_id", s.RequestID).
		Str("route", res.From+" -> "+res.To).
		Str("route_no", res.RouteNo).
		Str("bus_type", res.BusType).
		Str("date", res.Date).
		Str("base_fare", utils.FormatRupee(res.Summary.BaseFare)).
		Strs("passengers", passengers)
	if res.Summary.Discount > 0 {
		ev = ev.Str("group_discount", "-"+utils.FormatRupee(res.Summary.Discount))
	}
	ev.Str("total_fare", utils.FormatRupee(res.Summary.TotalFare)).Msg("Booking details")
}
