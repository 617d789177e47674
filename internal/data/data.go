package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/conf"
)

// Data holds the shared sql handle. The driver is either "postgres"
// (lib/pq) or "sqlite" (modernc, pure Go — the default for local runs).
type Data struct {
	db     *sql.DB
	driver string
}

// NewData opens the database and bootstraps the schema.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	driver := "sqlite"
	source := "data/resilitrack.db"
	if c != nil && c.Database != nil {
		if c.Database.Driver != "" {
			driver = c.Database.Driver
		}
		if c.Database.Source != "" {
			source = c.Database.Source
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	d := &Data{db: db, driver: driver}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return d, cleanup, nil
}

// serialPK returns the auto-increment primary key clause for the driver.
func (d *Data) serialPK() string {
	if d.driver == "postgres" {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d *Data) initSchema() error {
	queries := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`, d.serialPK()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chat_messages (
			id %s,
			user_id INTEGER NOT NULL,
			message TEXT NOT NULL,
			sender TEXT NOT NULL,
			scenario TEXT,
			analysis_json TEXT,
			created_at TEXT NOT NULL
		)`, d.serialPK()),
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages (user_id)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("execute %q: %w", query, err)
		}
	}
	return nil
}
