// Package dbpkg provides helpers to make database initialization easier.
package dbpkg

import "github.com/jmoiron/sqlx"

// Setup opens a connection with the given driver and verifies it with a ping.
func Setup(driver, source string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, source)
	if err != nil {
		return nil, err
	}

	return db, nil
}
