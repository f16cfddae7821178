// Package catalog keeps the bus route dataset as an immutable in-memory index.
//
// The dataset is read once through a Loader and only replaced by an explicit
// Reload. Readers always see a complete snapshot; a failed reload leaves the
// previous snapshot in place.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Loader supplies the full set of route records.
type Loader interface {
	Load(ctx context.Context) ([]models.RouteRecord, error)
}

type typeKey struct {
	from, to, busType string
}

type routeKey struct {
	from, to, routeNo string
}

type snapshot struct {
	records  []models.RouteRecord
	byType   map[typeKey][]int
	byRoute  map[routeKey]int
	loadedAt time.Time
	gen      uint64
}

type Catalog struct {
	loader   Loader
	current  atomic.Pointer[snapshot]
	results  *cache.Cache
	reloadMu sync.Mutex
	gen      uint64
}

// New returns an empty catalog. Call Reload before serving lookups.
// A non-positive ttl disables search result caching.
func New(loader Loader, ttl time.Duration) *Catalog {
	c := &Catalog{loader: loader}
	if ttl > 0 {
		c.results = cache.New(ttl, 2*ttl)
	}
	return c
}

// Reload reads the dataset from the loader and swaps it in. It returns the
// number of records now served.
func (c *Catalog) Reload(ctx context.Context) (int, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	records, err := c.loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load routes: %w", err)
	}

	snap, err := buildSnapshot(records)
	if err != nil {
		return 0, err
	}

	c.gen++
	snap.gen = c.gen
	c.current.Store(snap)
	if c.results != nil {
		c.results.Flush()
	}
	log.Info().Int("routes", len(snap.records)).Msg("Route catalog loaded")
	return len(snap.records), nil
}

func buildSnapshot(records []models.RouteRecord) (*snapshot, error) {
	snap := &snapshot{
		records:  make([]models.RouteRecord, 0, len(records)),
		byType:   map[typeKey][]int{},
		byRoute:  map[routeKey]int{},
		loadedAt: time.Now(),
	}

	for i, rec := range records {
		rec.RouteNo = utils.NormalizeSpace(rec.RouteNo)
		rec.From = utils.NormalizeSpace(rec.From)
		rec.To = utils.NormalizeSpace(rec.To)
		rec.Type = utils.NormalizeSpace(rec.Type)

		if rec.RouteNo == "" || rec.From == "" || rec.To == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("record %d", i+1), Msg: "route no., from and to are required"}
		}
		if rec.Fare < 0 {
			return nil, domain.ValidationError{Field: fmt.Sprintf("record %d", i+1), Msg: fmt.Sprintf("negative fare %v", rec.Fare)}
		}

		idx := len(snap.records)
		snap.records = append(snap.records, rec)

		tk := typeKey{rec.From, rec.To, rec.Type}
		snap.byType[tk] = append(snap.byType[tk], idx)

		// first record wins for duplicate route numbers on the same pair
		rk := routeKey{rec.From, rec.To, rec.RouteNo}
		if _, ok := snap.byRoute[rk]; !ok {
			snap.byRoute[rk] = idx
		}
	}
	return snap, nil
}

func (c *Catalog) loaded() (*snapshot, error) {
	snap := c.current.Load()
	if snap == nil {
		return nil, domain.InternalError{Msg: "route catalog not loaded"}
	}
	return snap, nil
}

// Search returns every route from origin to destination of the given type,
// in dataset order. No match is an empty slice, not an error.
func (c *Catalog) Search(from, to, busType string) ([]models.RouteRecord, error) {
	snap, err := c.loaded()
	if err != nil {
		return nil, err
	}

	key := typeKey{utils.NormalizeSpace(from), utils.NormalizeSpace(to), utils.NormalizeSpace(busType)}
	// keyed by generation: entries written against an older snapshot never hit
	cacheKey := fmt.Sprintf("%d\x00%s\x00%s\x00%s", snap.gen, key.from, key.to, key.busType)
	if c.results != nil {
		if v, ok := c.results.Get(cacheKey); ok {
			return clone(v.([]models.RouteRecord)), nil
		}
	}

	idxs := snap.byType[key]
	out := make([]models.RouteRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, snap.records[i])
	}

	if c.results != nil {
		c.results.SetDefault(cacheKey, clone(out))
	}
	return out, nil
}

// Find resolves a single route by origin, destination and route number.
func (c *Catalog) Find(from, to, routeNo string) (models.RouteRecord, error) {
	snap, err := c.loaded()
	if err != nil {
		return models.RouteRecord{}, err
	}
	key := routeKey{utils.NormalizeSpace(from), utils.NormalizeSpace(to), utils.NormalizeSpace(routeNo)}
	i, ok := snap.byRoute[key]
	if !ok {
		return models.RouteRecord{}, domain.NotFoundError{Resource: "bus"}
	}
	return snap.records[i], nil
}

// Len is the number of records in the current snapshot.
func (c *Catalog) Len() int {
	snap := c.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.records)
}

// LoadedAt is the time of the last successful reload, zero before.
func (c *Catalog) LoadedAt() time.Time {
	snap := c.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}

func clone(in []models.RouteRecord) []models.RouteRecord {
	out := make([]models.RouteRecord, len(in))
	copy(out, in)
	return out
}
