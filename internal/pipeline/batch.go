package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/reliantpm/docfiler/constants"
	"github.com/reliantpm/docfiler/internal/entity"
)

// Recorder persists one finished run. A nil Recorder disables journaling.
type Recorder interface {
	Record(ctx context.Context, rec entity.RunRecord) error
}

// BatchStats is the caller-facing summary of one batch.
type BatchStats struct {
	Scanned     int
	Resolved    int
	Partial     int
	InputFailed int
	FSFailed    int
}

// Batch walks an intake directory and runs each matching document through the
// processor, one at a time. Cancellation is honored only at document
// boundaries: the current document always finishes, and nothing already
// renamed is rolled back.
type Batch struct {
	logger  *slog.Logger
	proc    *Processor
	journal Recorder
}

func NewBatch(logger *slog.Logger, proc *Processor, journal Recorder) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{logger: logger, proc: proc, journal: journal}
}

// Run enumerates supported files under root (hidden entries skipped) and
// processes them sequentially. Per-document failures are recorded and the
// batch always attempts every remaining document.
func (b *Batch) Run(ctx context.Context, root string) (BatchStats, error) {
	paths, err := listDocuments(root)
	if err != nil {
		return BatchStats{}, err
	}
	b.logger.Info("batch starting", "root", root, "documents", len(paths))

	var stats BatchStats
	for _, path := range paths {
		if ctx.Err() != nil {
			b.logger.Warn("batch cancelled", "remaining", len(paths)-stats.Scanned)
			return stats, ctx.Err()
		}
		stats.Scanned++

		rec := b.proc.ProcessDocument(ctx, path)
		switch rec.Status {
		case constants.DocStatusResolved:
			stats.Resolved++
		case constants.DocStatusPartial:
			stats.Partial++
		case constants.DocStatusInputFailed:
			stats.InputFailed++
		case constants.DocStatusFSFailed:
			stats.FSFailed++
		}

		if b.journal != nil {
			// The outcome of a finished document is journaled even when
			// cancellation arrived while it was being processed.
			if jErr := b.journal.Record(context.WithoutCancel(ctx), rec); jErr != nil {
				b.logger.Warn("journal record failed", "path", path, "error", jErr)
			}
		}
	}

	b.logger.Info("batch complete",
		"scanned", stats.Scanned,
		"resolved", stats.Resolved,
		"partial", stats.Partial,
		"input_failed", stats.InputFailed,
		"fs_failed", stats.FSFailed,
	)
	return stats, nil
}

// listDocuments walks root and returns supported files in walk order,
// skipping hidden files and directories.
func listDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
