package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DefaultDSN keeps the journal in process memory; nothing survives a restart.
const DefaultDSN = "file:nudge_journal?mode=memory&cache=shared"

// Store is the session journal backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.Open(): failed to open database: %w", err)
	}
	// one connection: an in-memory database lives as long as its connection pool
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to connect to database: %w", err)
	}

	createJournalTable := `
	CREATE TABLE IF NOT EXISTS journal (
			"id" TEXT PRIMARY KEY,
			"session_id" TEXT NOT NULL,
			"user_id" TEXT,
			"kind" TEXT NOT NULL,
			"detail" TEXT,
			"created_at" INTEGER NOT NULL
	)`
	createSessionIndex := `CREATE INDEX IF NOT EXISTS journal_session_idx ON journal(session_id, created_at)`

	if _, err := db.ExecContext(ctx, createJournalTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create journal table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSessionIndex); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): failed to create journal index: %w", err)
	}
	logger.Info("journal store ready", zap.String("dsn", dsn))

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
