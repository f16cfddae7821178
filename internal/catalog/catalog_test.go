package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
)

const dataset = `Route No.,From,To,Type,Fare
101,Chennai,Madurai,Express,450
102,Chennai,Madurai,Deluxe,650
103,Chennai,Madurai,Express,420.5
201,Madurai,Chennai,Express,450
101,Chennai,Madurai,Deluxe,999
`

type stubLoader struct {
	records []models.RouteRecord
	err     error
	calls   int
}

func (s *stubLoader) Load(ctx context.Context) ([]models.RouteRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func loadDataset(t *testing.T) []models.RouteRecord {
	t.Helper()
	recs, err := repositories.ParseRouteCSV(strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("parse dataset: %v", err)
	}
	return recs
}

func newLoaded(t *testing.T, ttl time.Duration) (*Catalog, *stubLoader) {
	t.Helper()
	loader := &stubLoader{records: loadDataset(t)}
	c := New(loader, ttl)
	n, err := c.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 records, got %d", n)
	}
	return c, loader
}

func TestSearchMatchesRouteAndType(t *testing.T) {
	c, _ := newLoaded(t, time.Minute)

	got, err := c.Search("Chennai", "Madurai", "Express")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].RouteNo != "101" || got[1].RouteNo != "103" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got[1].Fare != 420.5 {
		t.Fatalf("fare got %v", got[1].Fare)
	}

	none, err := c.Search("Chennai", "Madurai", "Sleeper")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}
}

func TestSearchResultIsACopy(t *testing.T) {
	c, _ := newLoaded(t, time.Minute)

	first, _ := c.Search("Chennai", "Madurai", "Deluxe")
	first[0].Fare = 1

	again, _ := c.Search("Chennai", "Madurai", "Deluxe")
	if again[0].Fare != 650 {
		t.Fatalf("cached result was mutated through caller slice: %+v", again[0])
	}
}

func TestSearchTrimsInput(t *testing.T) {
	c, _ := newLoaded(t, 0)
	got, err := c.Search("  Chennai ", "Madurai", " Deluxe")
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 deluxe routes, got %v (err=%v)", got, err)
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	c, _ := newLoaded(t, time.Minute)

	rec, err := c.Find("Chennai", "Madurai", "101")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Type != "Express" || rec.Fare != 450 {
		t.Fatalf("expected first 101 record, got %+v", rec)
	}

	_, err = c.Find("Madurai", "Chennai", "101")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLookupsBeforeLoadFail(t *testing.T) {
	c := New(&stubLoader{}, time.Minute)
	if _, err := c.Search("a", "b", "c"); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, err := c.Find("a", "b", "1"); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if c.Len() != 0 || !c.LoadedAt().IsZero() {
		t.Fatalf("empty catalog should report no data")
	}
}

func TestReloadReplacesSnapshotAndFlushesCache(t *testing.T) {
	c, loader := newLoaded(t, time.Hour)

	if got, _ := c.Search("Chennai", "Madurai", "Express"); len(got) != 2 {
		t.Fatalf("expected 2 results before reload")
	}

	loader.records = []models.RouteRecord{{RouteNo: "9", From: "Chennai", To: "Madurai", Type: "Express", Fare: 10}}
	if n, err := c.Reload(context.Background()); err != nil || n != 1 {
		t.Fatalf("reload got n=%d err=%v", n, err)
	}

	got, _ := c.Search("Chennai", "Madurai", "Express")
	if len(got) != 1 || got[0].RouteNo != "9" {
		t.Fatalf("stale search result after reload: %+v", got)
	}
}

func TestFailedReloadKeepsPreviousSnapshot(t *testing.T) {
	c, loader := newLoaded(t, time.Minute)
	loaded := c.LoadedAt()

	loader.err = errors.New("disk gone")
	if _, err := c.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error")
	}
	if c.Len() != 5 || !c.LoadedAt().Equal(loaded) {
		t.Fatalf("previous snapshot should stay in place")
	}

	loader.err = nil
	loader.records = []models.RouteRecord{{RouteNo: "1", From: "A", To: "B", Type: "X", Fare: -5}}
	_, err := c.Reload(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative fare, got %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("invalid dataset must not replace the snapshot")
	}
}

func TestReloadRejectsBlankKeys(t *testing.T) {
	loader := &stubLoader{records: []models.RouteRecord{{RouteNo: " ", From: "A", To: "B", Fare: 1}}}
	_, err := New(loader, 0).Reload(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
