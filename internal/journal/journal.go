package journal

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/reliantpm/docfiler/constants"
	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS document_run (
	id          TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	final_name  TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	missing     TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_document_run_status ON document_run(status);
`

// Journal persists per-document outcomes so a batch can be audited after the
// fact. Use ":memory:" for tests.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.WrapError(err, "open journal")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "init journal schema")
	}
	return &Journal{db: db, logger: logger}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record inserts one finished run.
func (j *Journal) Record(ctx context.Context, rec entity.RunRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO document_run (id, source_path, final_name, status, missing, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.SourcePath,
		rec.FinalName,
		string(rec.Status),
		strings.Join(rec.Missing, ","),
		rec.Error,
		rec.StartedAt.UTC(),
		rec.FinishedAt.UTC(),
	)
	if err != nil {
		return common.WrapError(err, "journal insert")
	}
	return nil
}

// Summary holds the caller-facing counts for one or more batches.
type Summary struct {
	Resolved    int
	Partial     int
	InputFailed int
	FSFailed    int
}

// Summarize counts runs finished at or after since.
func (j *Journal) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM document_run WHERE finished_at >= ? GROUP BY status`,
		since.UTC(),
	)
	if err != nil {
		return Summary{}, common.WrapError(err, "journal summarize")
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			j.logger.Warn("failed to close summary rows", "error", cerr)
		}
	}()

	var s Summary
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Summary{}, common.WrapError(err, "journal scan")
		}
		switch constants.DocStatus(status) {
		case constants.DocStatusResolved:
			s.Resolved = n
		case constants.DocStatusPartial:
			s.Partial = n
		case constants.DocStatusInputFailed:
			s.InputFailed = n
		case constants.DocStatusFSFailed:
			s.FSFailed = n
		}
	}
	return s, rows.Err()
}
