package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/courierlab/dispatchsim/core/record"
)

// SQLiteStore persists the three record streams to a SQLite database.
// Each stream gets its own table; the full record is kept as JSON with
// the filterable columns denormalized alongside.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS assignments (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        order_id INTEGER,
        courier_id INTEGER,
        actual_courier_id INTEGER,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS cycles (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS transitions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        courier_id INTEGER,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RecordAssignment(r record.AssignmentRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO assignments (ts, order_id, courier_id, actual_courier_id, record) VALUES (?, ?, ?, ?, ?)`,
		r.DispatchTime, r.OrderID, r.CourierID, r.ActualCourierID, string(b))
	return err
}

func (s *SQLiteStore) RecordCycle(r record.CycleRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO cycles (ts, record) VALUES (?, ?)`, r.DispatchTime, string(b))
	return err
}

func (s *SQLiteStore) RecordTransition(r record.TransitionRecord) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO transitions (ts, courier_id, record) VALUES (?, ?, ?)`,
		r.Timestamp, r.CourierID, string(b))
	return err
}

// queryJSON runs the prepared statement and unmarshals the record column.
func queryJSON[T any](ctx context.Context, db *sql.DB, query string, args []any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []T
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r T
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func timeClause(q Query, query string, args []any) (string, []any) {
	if q.Start != 0 {
		query += ` AND ts >= ?`
		args = append(args, q.Start)
	}
	if q.End != 0 {
		query += ` AND ts < ?`
		args = append(args, q.End)
	}
	return query, args
}

func (s *SQLiteStore) QueryAssignments(ctx context.Context, q Query) ([]record.AssignmentRecord, error) {
	query, args := timeClause(q, `SELECT record FROM assignments WHERE 1=1`, nil)
	if q.CourierID != 0 {
		query += ` AND (courier_id = ? OR actual_courier_id = ?)`
		args = append(args, q.CourierID, q.CourierID)
	}
	if q.OrderID != 0 {
		query += ` AND order_id = ?`
		args = append(args, q.OrderID)
	}
	query += ` ORDER BY ts, id`
	return queryJSON[record.AssignmentRecord](ctx, s.db, query, args)
}

func (s *SQLiteStore) QueryCycles(ctx context.Context, q Query) ([]record.CycleRecord, error) {
	query, args := timeClause(q, `SELECT record FROM cycles WHERE 1=1`, nil)
	query += ` ORDER BY ts, id`
	return queryJSON[record.CycleRecord](ctx, s.db, query, args)
}

func (s *SQLiteStore) QueryTransitions(ctx context.Context, q Query) ([]record.TransitionRecord, error) {
	query, args := timeClause(q, `SELECT record FROM transitions WHERE 1=1`, nil)
	if q.CourierID != 0 {
		query += ` AND courier_id = ?`
		args = append(args, q.CourierID)
	}
	query += ` ORDER BY ts, id`
	return queryJSON[record.TransitionRecord](ctx, s.db, query, args)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
