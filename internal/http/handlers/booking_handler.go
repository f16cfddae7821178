package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

type passengerPayload struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

type bookingRequest struct {
	From       Stringish          `json:"from"`
	To         Stringish          `json:"to"`
	Date       string             `json:"date"`
	BusType    Stringish          `json:"busType"`
	RouteNo    Stringish          `json:"routeNo"`
	Passengers []passengerPayload `json:"passengers"`
}

type bookingResponse struct {
	Status          string                       `json:"status"`
	Message         string                       `json:"message"`
	RouteNo         string                       `json:"route_no"`
	From            string                       `json:"from"`
	To              string                       `json:"to"`
	Date            string                       `json:"date"`
	BusType         string                       `json:"bus_type"`
	BaseFare        float64                      `json:"base_fare"`
	TotalPassengers int                          `json:"total_passengers"`
	Passengers      []models.PassengerFareResult `json:"passenger_details"`
	Discount        float64                      `json:"discount"`
	TotalFare       float64                      `json:"total_fare"`
}

func (r bookingRequest) toService() (services.BookingRequest, error) {
	out := services.BookingRequest{
		From:       r.From.String(),
		To:         r.To.String(),
		Date:       r.Date,
		BusType:    r.BusType.String(),
		RouteNo:    r.RouteNo.String(),
		Passengers: make([]models.Passenger, 0, len(r.Passengers)),
	}
	for i, p := range r.Passengers {
		if p.Age == nil {
			return out, domain.ValidationError{Field: fmt.Sprintf("passengers[%d].age", i), Msg: "required"}
		}
		out.Passengers = append(out.Passengers, models.Passenger{Name: p.Name, Age: *p.Age})
	}
	return out, nil
}

func (h Handler) priceBooking(c *gin.Context) (services.BookingResult, bool) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return services.BookingResult{}, false
	}
	in, err := req.toService()
	if err != nil {
		RespondDomainError(c, err)
		return services.BookingResult{}, false
	}
	res, err := h.bookingService(c).SubmitBooking(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return services.BookingResult{}, false
	}
	return res, true
}

// SubmitBooking prices the submitted passengers on the selected route.
func (h Handler) SubmitBooking(c *gin.Context) {
	res, ok := h.priceBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookingResponse{
		Status:          "success",
		Message:         "Booking processed successfully!",
		RouteNo:         res.RouteNo,
		From:            res.From,
		To:              res.To,
		Date:            res.Date,
		BusType:         res.BusType,
		BaseFare:        res.Summary.BaseFare,
		TotalPassengers: res.TotalPassengers,
		Passengers:      res.Summary.Passengers,
		Discount:        res.Summary.Discount,
		TotalFare:       res.Summary.TotalFare,
	})
}

// BookingReceipt prices the booking like SubmitBooking and returns it as a
// PDF receipt (inline).
func (h Handler) BookingReceipt(c *gin.Context) {
	res, ok := h.priceBooking(c)
	if !ok {
		return
	}

	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Render(res)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "render receipt", Err: err})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
