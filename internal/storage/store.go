// Package storage picks the hotel store implementation from configuration.
package storage

import (
	"database/sql"
	"fmt"

	"hotel_recommender/internal/domain"
	mysqlrepo "hotel_recommender/internal/storage/mysql"
	pgrepo "hotel_recommender/internal/storage/postgres"
)

// Open connects to the configured store. The returned *sql.DB must be closed
// by the caller.
func Open(driver, dsn string) (domain.HotelRepository, *sql.DB, error) {
	switch driver {
	case "mysql", "":
		db, err := mysqlrepo.Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), db, nil
	case "postgres", "postgresql", "supabase":
		db, err := pgrepo.Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return pgrepo.New(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
