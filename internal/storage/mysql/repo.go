package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"hotel_recommender/internal/domain"
)

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

type Repo struct{ db *sql.DB }

// Open connects with the "mysql" driver and pings the server.
func Open(dsn string) (*sql.DB, error) {
	dsn, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// normalizeDSN forces the options the repository depends on: found rows
// (not changed rows) for UPDATE, and DATETIME scanning into time.Time.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
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
		if _, err := r.db.ExecContext(ctx, insertHotelWithIDSQL,
			h.ID, h.Name, h.Location, h.Price, h.Rating, amen, h.Description); err != nil {
			return domain.Hotel{}, err
		}
		return h, nil
	}

	res, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.Name, h.Location, h.Price, h.Rating, amen, h.Description)
	if err != nil {
		return domain.Hotel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Hotel{}, err
	}
	h.ID = id
	return h, nil
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
	values := make([]string, 0, len(hs))
	args := make([]any, 0, len(hs)*6) // 6 params per row
	for _, h := range hs {
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args,
			h.Name,
			h.Location,
			h.Price,
			h.Rating,
			amenitiesJSON(h.Amenities),
			h.Description,
		)
	}
	_, err := r.db.ExecContext(ctx, insertHotelsPrefix+strings.Join(values, ","), args...)
	return err
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
