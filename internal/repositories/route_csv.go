package repositories

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/gocarina/gocsv"
)

// RouteCSV reads the flat bus dataset ("Route No.,From,To,Type,Fare").
type RouteCSV struct {
	Path string
}

func (r RouteCSV) Load(ctx context.Context) ([]models.RouteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, domain.InternalError{Msg: "open route dataset", Err: err}
	}
	defer f.Close()

	return ParseRouteCSV(f)
}

// ParseRouteCSV decodes route records from in. Extra columns are ignored.
func ParseRouteCSV(in io.Reader) ([]models.RouteRecord, error) {
	out := []models.RouteRecord{}
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if err := gocsv.UnmarshalCSV(reader, &out); err != nil {
		return nil, domain.InternalError{Msg: "parse route dataset", Err: err}
	}
	return out, nil
}
