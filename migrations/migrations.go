package main

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"eventmi/config"

	_ "github.com/lib/pq"
)

//go:embed *.sql
var migrationFiles embed.FS

func main() {
	db, err := sql.Open("postgres", config.Env().DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	version, err := migrate(db, migrationFiles)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Database is at version %d\n", version)
}

// migrate applies every numbered migration above the recorded version and
// returns the version the database ends up at.
func migrate(db *sql.DB, files fs.FS) (int, error) {
	version, err := getMigrationVersion(db)
	if err != nil {
		return 0, err
	}
	for {
		err = migrateUp(db, files, version+1)
		if errors.Is(err, fs.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return version, err
		}
		version++
	}
}

func migrateUp(db *sql.DB, files fs.FS, version int) error {
	file, err := fs.ReadFile(files, fmt.Sprintf("%d.sql", version))
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(string(file)); err != nil {
		return fmt.Errorf("error executing migration %d: %w", version, err)
	}
	if _, err = tx.Exec("UPDATE migrations SET version = $1", version); err != nil {
		return fmt.Errorf("error updating migration version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	fmt.Printf("Migrated to version %d\n", version)
	return nil
}

func getMigrationVersion(db *sql.DB) (version int, err error) {
	err = db.QueryRow("SELECT version FROM migrations").Scan(&version)
	if err != nil {
		if err := generateMigrationTable(db); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return version, nil
}

func generateMigrationTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INT PRIMARY KEY
		);
		INSERT INTO migrations (version) VALUES (0);
	`)
	return err
}
