package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RouteRepository reads route records from a MySQL table with columns
// route_no, origin, destination, bus_type, fare.
type RouteRepository struct {
	DB    *sql.DB
	Table string
}

func (r RouteRepository) table() string {
	if strings.TrimSpace(r.Table) == "" {
		return "bus_routes"
	}
	return strings.TrimSpace(r.Table)
}

// Load returns every row in table order (by id when the table has one).
func (r RouteRepository) Load(ctx context.Context) ([]models.RouteRecord, error) {
	if r.DB == nil {
		return nil, domain.InternalError{Msg: "route repository has no database"}
	}
	table := r.table()
	if !tableNamePattern.MatchString(table) {
		return nil, domain.ValidationError{Field: "table", Msg: fmt.Sprintf("invalid table name %q", table)}
	}
	if !intdb.HasTable(ctx, r.DB, table) {
		return nil, domain.InternalError{Msg: fmt.Sprintf("table %s not found", table)}
	}

	query := `SELECT COALESCE(route_no,''), COALESCE(origin,''), COALESCE(destination,''), COALESCE(bus_type,''), COALESCE(fare,0) FROM ` + table
	if intdb.HasColumn(ctx, r.DB, table, "id") {
		query += ` ORDER BY id ASC`
	}

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.InternalError{Msg: "query routes", Err: err}
	}
	defer rows.Close()

	out := []models.RouteRecord{}
	for rows.Next() {
		var rec models.RouteRecord
		if err := rows.Scan(&rec.RouteNo, &rec.From, &rec.To, &rec.Type, &rec.Fare); err != nil {
			return nil, domain.InternalError{Msg: "scan route", Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "read routes", Err: err}
	}
	return out, nil
}
