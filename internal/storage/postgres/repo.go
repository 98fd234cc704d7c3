// Package postgres stores hotels in PostgreSQL (Supabase or plain) through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"hotel_recommender/internal/domain"
)

const (
	listHotelsSQL = `
SELECT id, name, location, price, rating, amenities, description
FROM hotels
ORDER BY id`

	insertHotelSQL = `
INSERT INTO hotels (name, location, price, rating, amenities, description)
VALUES ($1, $2, $3, $4, $5::jsonb, $6)
RETURNING id`

	insertHotelWithIDSQL = `
INSERT INTO hotels (id, name, location, price, rating, amenities, description)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`

	// explicit ids bypass BIGSERIAL; move the sequence past them
	syncIDSequenceSQL = `SELECT setval(pg_get_serial_sequence('hotels', 'id'), (SELECT MAX(id) FROM hotels))`

	deleteHotelSQL = `DELETE FROM hotels WHERE id = $1`
	updatePriceSQL = `UPDATE hotels SET price = $1, updated_at = NOW() WHERE id = $2`

	insertHotelsPrefix = "INSERT INTO hotels (name, location, price, rating, amenities, description) VALUES "
)

type Repo struct{ db *sql.DB }

// Open connects with the "postgres" driver and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var amen []byte
		var desc sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Price, &h.Rating, &amen, &desc); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		if h.Amenities, err = decodeAmenities(amen); err != nil {
			return nil, fmt.Errorf("decode amenities of hotel %d: %w", h.ID, err)
		}
		h.Description = desc.String
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}
	return out, nil
}

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	amen := amenitiesJSON(h.Amenities)
	if h.ID != 0 {
		if err := r.createWithID(ctx, h, amen); err != nil {
			return domain.Hotel{}, err
		}
		return h, nil
	}
	if err := r.db.QueryRowContext(ctx, insertHotelSQL,
		h.Name, h.Location, h.Price, h.Rating, amen, h.Description).Scan(&h.ID); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (r *Repo) createWithID(ctx context.Context, h domain.Hotel, amen string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertHotelWithIDSQL,
		h.ID, h.Name, h.Location, h.Price, h.Rating, amen, h.Description); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, syncIDSequenceSQL); err != nil {
		return fmt.Errorf("sync id sequence: %w", err)
	}
	return tx.Commit()
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *Repo) UpdatePrice(ctx context.Context, id int64, price float64) error {
	res, err := r.db.ExecContext(ctx, updatePriceSQL, price, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *Repo) InsertHotels(ctx context.Context, hs []domain.Hotel) error {
	if len(hs) == 0 {
		return nil
	}
	const cols = 6
	values := make([]string, 0, len(hs))
	args := make([]any, 0, len(hs)*cols)
	for i, h := range hs {
		n := i * cols
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d::jsonb,$%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, h.Name, h.Location, h.Price, h.Rating, amenitiesJSON(h.Amenities), h.Description)
	}
	_, err := r.db.ExecContext(ctx, insertHotelsPrefix+strings.Join(values, ","), args...)
	return err
}

// decodeAmenities reads the amenities column. NULL or empty is no amenities;
// anything that is not a JSON string array is an error.
func decodeAmenities(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func amenitiesJSON(a []string) string {
	if a == nil {
		a = []string{}
	}
	b, _ := json.Marshal(a)
	return string(b)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
