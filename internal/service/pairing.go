package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/jask/wineboard/internal/config"
	"github.com/jask/wineboard/internal/database"
	"github.com/jask/wineboard/internal/database/repository"
	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/pairing"
	"github.com/jask/wineboard/internal/stats"
)

// PairingOverview is everything the pairing view draws except the filter result.
type PairingOverview struct {
	Table       *dataset.Table
	Preview     [][]string
	QualityHist []stats.Bin
	TypeBoxes   []stats.GroupBox
	TopCuisines []pairing.CuisineScore
	// WineTypes and Cuisines are the filter options in first-appearance order.
	WineTypes []string
	Cuisines  []string
}

// DefaultFilter selects the first option of each control.
func (o PairingOverview) DefaultFilter() pairing.Filter {
	var f pairing.Filter
	if len(o.WineTypes) > 0 {
		f.WineType = o.WineTypes[0]
	}
	if len(o.Cuisines) > 0 {
		f.Cuisine = o.Cuisines[0]
	}
	return f
}

// PairingService serves the food-pairing dashboard.
type PairingService struct {
	Loader *dataset.Loader
	Path   string
	Opts   Options

	mu    sync.Mutex
	table *dataset.Table
	q     pairing.Querier
	db    *sql.DB

	rngMu sync.Mutex
	rng   *rand.Rand
}

func (s *PairingService) load(ctx context.Context) (*dataset.Table, pairing.Querier, error) {
	t, err := s.Loader.Load(ctx, s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("pairings: %w", err)
	}
	q, err := s.querier(ctx, t)
	if err != nil {
		return nil, nil, fmt.Errorf("pairings: %w", err)
	}
	return t, q, nil
}

// querier returns the query backend for t, rebuilding it when the loader
// hands out a different table (after a reload).
func (s *PairingService) querier(ctx context.Context, t *dataset.Table) (pairing.Querier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == t && s.q != nil {
		return s.q, nil
	}

	var (
		q   pairing.Querier
		db  *sql.DB
		err error
	)
	switch s.Opts.Driver {
	case config.DriverSQLite:
		db, err = database.OpenMemory()
		if err != nil {
			return nil, err
		}
		repo := repository.NewPairingRepo(db)
		if err = repo.Load(ctx, t); err != nil {
			_ = db.Close()
			return nil, err
		}
		q = repo
		log.Printf("pairings: loaded %d rows into sqlite", t.Len())
	default:
		if q, err = pairing.NewMemory(t); err != nil {
			return nil, err
		}
	}

	if s.db != nil {
		_ = s.db.Close()
	}
	s.table, s.q, s.db = t, q, db
	return q, nil
}

func (s *PairingService) Overview(ctx context.Context) (PairingOverview, error) {
	t, q, err := s.load(ctx)
	if err != nil {
		return PairingOverview{}, err
	}
	top, err := q.CuisineMeans(ctx, s.Opts.TopCuisines)
	if err != nil {
		return PairingOverview{}, fmt.Errorf("cuisine means: %w", err)
	}
	wt, _ := t.Column(dataset.ColWineType)
	pq, _ := t.Column(dataset.ColPairingQuality)
	keys := make([]string, t.Len())
	for i := range keys {
		keys[i] = wt.Text(i)
	}

	return PairingOverview{
		Table:       t,
		Preview:     t.Head(s.Opts.PreviewRows),
		QualityHist: stats.Histogram(pq.Nums, s.Opts.PairingBins),
		TypeBoxes:   stats.GroupBoxes(keys, pq.Nums, nil),
		TopCuisines: top,
		WineTypes:   t.Unique(dataset.ColWineType),
		Cuisines:    t.Unique(dataset.ColCuisine),
	}, nil
}

// Filter narrows the table to f and draws a fresh random sample. Calling it
// again with the same filter resamples.
func (s *PairingService) Filter(ctx context.Context, f pairing.Filter) (pairing.Result, error) {
	t, q, err := s.load(ctx)
	if err != nil {
		return pairing.Result{}, err
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	if s.rng == nil {
		seed := s.Opts.SampleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	return pairing.Apply(ctx, q, t, f, s.Opts.SampleSize, s.rng)
}

// Close releases the sqlite store, if any.
func (s *PairingService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db, s.q, s.table = nil, nil, nil
	return err
}
