package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playcast/internal/engine"

	_ "modernc.org/sqlite"
)

// ErrCacheMiss means no cached entry exists for the city, or the entry is
// older than the caller's maxAge.
var ErrCacheMiss = errors.New("cache miss")

// Store handles persistent storage using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new store and initializes the database
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS weather_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city TEXT NOT NULL,
		samples TEXT NOT NULL,
		fetched_at DATETIME NOT NULL,
		UNIQUE(city)
	);

	CREATE TABLE IF NOT EXISTS aqi_cache (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city TEXT NOT NULL,
		samples TEXT NOT NULL,
		fetched_at DATETIME NOT NULL,
		UNIQUE(city)
	);

	CREATE INDEX IF NOT EXISTS idx_weather_cache_city ON weather_cache(city);
	CREATE INDEX IF NOT EXISTS idx_aqi_cache_city ON aqi_cache(city);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveWeather caches fetched weather samples for a city
func (s *Store) SaveWeather(city string, samples []engine.Sample) error {
	return s.saveCache("weather_cache", city, samples)
}

// LoadWeather retrieves cached weather samples no older than maxAge
func (s *Store) LoadWeather(city string, maxAge time.Duration) ([]engine.Sample, error) {
	data, err := s.loadCache("weather_cache", city, maxAge)
	if err != nil {
		return nil, err
	}

	var samples []engine.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("decoding cached weather: %w", err)
	}

	return samples, nil
}

// SaveAir caches fetched air quality samples for a city
func (s *Store) SaveAir(city string, samples []engine.AirSample) error {
	return s.saveCache("aqi_cache", city, samples)
}

// LoadAir retrieves cached air quality samples no older than maxAge
func (s *Store) LoadAir(city string, maxAge time.Duration) ([]engine.AirSample, error) {
	data, err := s.loadCache("aqi_cache", city, maxAge)
	if err != nil {
		return nil, err
	}

	var samples []engine.AirSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("decoding cached air quality: %w", err)
	}

	return samples, nil
}

// Prune deletes cache entries older than the given age from both tables
func (s *Store) Prune(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)

	if _, err := s.db.Exec(`DELETE FROM weather_cache WHERE fetched_at < ?`, cutoff); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM aqi_cache WHERE fetched_at < ?`, cutoff)
	return err
}

func (s *Store) saveCache(table, city string, samples interface{}) error {
	samplesJSON, _ := json.Marshal(samples)

	query := fmt.Sprintf(`INSERT OR REPLACE INTO %s (city, samples, fetched_at) VALUES (?, ?, ?)`, table)

	_, err := s.db.Exec(query, city, string(samplesJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) loadCache(table, city string, maxAge time.Duration) ([]byte, error) {
	query := fmt.Sprintf(`SELECT samples, fetched_at FROM %s WHERE city = ?`, table)

	var samplesJSON, fetchedAtStr string
	err := s.db.QueryRow(query, city).Scan(&samplesJSON, &fetchedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	fetchedAt, err := time.Parse(time.RFC3339, fetchedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}
	if time.Since(fetchedAt) > maxAge {
		return nil, ErrCacheMiss
	}

	return []byte(samplesJSON), nil
}
