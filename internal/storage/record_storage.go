package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"NudgePrototype/internal/models"
)

// Record appends one journal entry. Missing id and timestamp are filled in.
func (s *Store) Record(ctx context.Context, r models.Record) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO journal(id, session_id, user_id, kind, detail, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, r.ID, r.SessionID, nullable(r.UserID), r.Kind, nullable(r.Detail), r.CreatedAt.UnixMilli())
	return err
}

// RecordsBySession lists a session's entries, newest first.
func (s *Store) RecordsBySession(ctx context.Context, sessionID string, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, session_id, user_id, kind, detail, created_at
		FROM journal
		WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var r models.Record
		var userID, detail sql.NullString
		var createdMS int64

		if err := rows.Scan(&r.ID, &r.SessionID, &userID, &r.Kind, &detail, &createdMS); err != nil {
			return nil, err
		}
		if userID.Valid {
			r.UserID = userID.String
		}
		if detail.Valid {
			r.Detail = detail.String
		}
		r.CreatedAt = time.UnixMilli(createdMS)

		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteSession drops every entry of a finished session.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM journal WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
