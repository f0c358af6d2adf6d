// Package history хранит историю разговоров и температурных решений в SQLite.
//
// Одна таблица на обе истории: временной ряд температур — это проекция
// тех же записей без текста ответа.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry — одна запись истории: промпт, результат анализа и ответ.
type Entry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Prompt      string    `json:"prompt"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
	Temperature float64   `json:"temperature"`
	Response    string    `json:"response"`
	Source      string    `json:"source"` // "live" или "mock"
}

// TemperaturePoint — точка температурного ряда для графика.
type TemperaturePoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`
	Temperature float64   `json:"temperature"`
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    ts          INTEGER NOT NULL,
    prompt      TEXT NOT NULL,
    category    TEXT NOT NULL,
    confidence  REAL NOT NULL,
    temperature REAL NOT NULL,
    response    TEXT NOT NULL,
    source      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(ts);
`

// Store — SQLite хранилище истории.
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) базу по указанному пути.
//
// Для тестов подходит ":memory:".
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record сохраняет запись. Пустой Timestamp заменяется текущим временем.
func (s *Store) Record(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (ts, prompt, category, confidence, temperature, response, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.Unix(), e.Prompt, e.Category, e.Confidence, e.Temperature, e.Response, e.Source,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Recent возвращает последние n записей, новые первыми.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, ts, prompt, category, confidence, temperature, response, source
		 FROM entries ORDER BY ts DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Prompt, &e.Category,
			&e.Confidence, &e.Temperature, &e.Response, &e.Source); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// TemperatureSeries возвращает последние n температурных точек
// в хронологическом порядке (старые первыми — удобно для графика).
func (s *Store) TemperatureSeries(n int) ([]TemperaturePoint, error) {
	rows, err := s.db.Query(
		`SELECT ts, category, temperature FROM
		   (SELECT ts, category, temperature, id FROM entries ORDER BY ts DESC, id DESC LIMIT ?)
		 ORDER BY ts ASC, id ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("query temperature series: %w", err)
	}
	defer rows.Close()

	var points []TemperaturePoint
	for rows.Next() {
		var p TemperaturePoint
		var ts int64
		if err := rows.Scan(&ts, &p.Category, &p.Temperature); err != nil {
			return nil, fmt.Errorf("scan temperature point: %w", err)
		}
		p.Timestamp = time.Unix(ts, 0)
		points = append(points, p)
	}

	return points, rows.Err()
}

// Clear удаляет всю историю.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой.
func (s *Store) Close() error {
	return s.db.Close()
}
