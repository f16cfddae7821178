package repositories

import (
	"context"
	"errors"
	"testing"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectRouteTable(mock sqlmock.Sqlmock, table string, withID bool) {
	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	idRows := sqlmock.NewRows([]string{"column_name"})
	if withID {
		idRows.AddRow("id")
	}
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs(table, "id").
		WillReturnRows(idRows)
}

func TestRouteRepositoryLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteTable(mock, "bus_routes", true)
	mock.ExpectQuery(`SELECT COALESCE\(route_no,''\).* FROM bus_routes ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"route_no", "origin", "destination", "bus_type", "fare"}).
			AddRow("101", "Chennai", "Madurai", "Express", 450.0).
			AddRow("102", "Chennai", "Madurai", "Deluxe", 650.5))

	recs, err := RouteRepository{DB: db}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[1].RouteNo != "102" || recs[1].Type != "Deluxe" || recs[1].Fare != 650.5 {
		t.Fatalf("unexpected record: %+v", recs[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteRepositoryLoadWithoutIDColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRouteTable(mock, "routes_v2", false)
	mock.ExpectQuery(`FROM routes_v2$`).
		WillReturnRows(sqlmock.NewRows([]string{"route_no", "origin", "destination", "bus_type", "fare"}))

	recs, err := RouteRepository{DB: db, Table: "routes_v2"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", recs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteRepositoryMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("bus_routes").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	_, err = RouteRepository{DB: db}.Load(context.Background())
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRouteRepositoryQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	expectRouteTable(mock, "bus_routes", true)
	mock.ExpectQuery("FROM bus_routes").WillReturnError(boom)

	_, err = RouteRepository{DB: db}.Load(context.Background())
	if !domain.IsInternal(err) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped internal error, got %v", err)
	}
}

func TestRouteRepositoryRejectsBadTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	_, err = RouteRepository{DB: db, Table: "routes; DROP TABLE x"}.Load(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
