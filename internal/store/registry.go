package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ModelVersion is one entry of the parser model registry.
type ModelVersion struct {
	Version   string             `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	Metrics   map[string]float64 `json:"metrics"`
}

// RegistryPage is a single page of registry history with pagination metadata.
type RegistryPage struct {
	Items []ModelVersion `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// ModelRegistry records parser model versions in a SQLite database.
type ModelRegistry struct {
	db *sql.DB
}

// OpenRegistry opens (creating if necessary) the registry database.
func OpenRegistry(dbPath string) (*ModelRegistry, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	table := `
	CREATE TABLE IF NOT EXISTS model_versions (
		version TEXT PRIMARY KEY,
		created_at DATETIME,
		metrics TEXT
	);
	`
	if _, err := db.Exec(table); err != nil {
		db.Close()
		return nil, err
	}

	return &ModelRegistry{db: db}, nil
}

// Close releases the underlying database handle.
func (r *ModelRegistry) Close() error {
	return r.db.Close()
}

// Register stores a new model version with its evaluation metrics.
func (r *ModelRegistry) Register(version string, metrics map[string]float64) error {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.db.Exec(`INSERT INTO model_versions (version, created_at, metrics) VALUES (?, ?, ?)`,
		version, now, string(metricsJSON))
	return err
}

// History returns one page of registered versions in creation order. An
// out-of-range page yields empty items with the true total.
func (r *ModelRegistry) History(page, size int) (*RegistryPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be greater than or equal to 1")
	}
	if size < 1 {
		return nil, fmt.Errorf("size must be greater than or equal to 1")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM model_versions`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT version, created_at, metrics FROM model_versions ORDER BY created_at, version LIMIT ? OFFSET ?`,
		size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ModelVersion, 0, size)
	for rows.Next() {
		var item ModelVersion
		var metricsJSON string
		if err := rows.Scan(&item.Version, &item.CreatedAt, &metricsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metricsJSON), &item.Metrics); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &RegistryPage{Items: items, Total: total, Page: page, Size: size}, nil
}
