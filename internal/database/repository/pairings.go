package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/jask/wineboard/internal/database"
	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/pairing"
)

// PairingRepo answers pairing queries from the pairings table.
type PairingRepo struct {
	db *sql.DB
}

func NewPairingRepo(db *sql.DB) *PairingRepo { return &PairingRepo{db: db} }

var _ pairing.Querier = (*PairingRepo)(nil)

// Load replaces the table contents with the rows of t. Row ids are the row
// indices of t so Match results address the loaded table directly.
func (r *PairingRepo) Load(ctx context.Context, t *dataset.Table) error {
	if err := t.Require(dataset.ColWineType, dataset.ColCuisine, dataset.ColPairingQuality); err != nil {
		return err
	}
	wt, _ := t.Column(dataset.ColWineType)
	cu, _ := t.Column(dataset.ColCuisine)
	pq, _ := t.Column(dataset.ColPairingQuality)
	if pq.Kind != dataset.Numeric {
		return fmt.Errorf("%s is not numeric", dataset.ColPairingQuality)
	}

	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pairings`); err != nil {
			return fmt.Errorf("clear pairings: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pairings(row_id, wine_type, cuisine, pairing_quality)
		VALUES(?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i := 0; i < t.Len(); i++ {
			p := Pairing{RowID: i, WineType: wt.Text(i), Cuisine: cu.Text(i)}
			if q := pq.Nums[i]; !math.IsNaN(q) && !math.IsInf(q, 0) {
				p.Quality = &q
			}
			if _, err := stmt.ExecContext(ctx, p.RowID, p.WineType, p.Cuisine, p.Quality); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
		return nil
	})
}

// Count returns the number of loaded rows.
func (r *PairingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pairings`).Scan(&n)
	return n, err
}

func (r *PairingRepo) CuisineMeans(ctx context.Context, limit int) ([]pairing.CuisineScore, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT cuisine, AVG(pairing_quality) AS mean, COUNT(pairing_quality) AS n
	FROM pairings
	GROUP BY cuisine
	ORDER BY AVG(pairing_quality) IS NULL, mean DESC, cuisine ASC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pairing.CuisineScore
	for rows.Next() {
		var (
			s    pairing.CuisineScore
			mean sql.NullFloat64
		)
		if err := rows.Scan(&s.Cuisine, &mean, &s.Count); err != nil {
			return nil, err
		}
		s.Mean = math.NaN()
		if mean.Valid {
			s.Mean = mean.Float64
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PairingRepo) Match(ctx context.Context, f pairing.Filter) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT row_id FROM pairings
	WHERE wine_type = ? AND cuisine = ?
	ORDER BY row_id`, f.WineType, f.Cuisine)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
