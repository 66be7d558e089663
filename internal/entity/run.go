package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/reliantpm/docfiler/constants"
)

// RunRecord is the journaled outcome of one document run.
type RunRecord struct {
	ID         uuid.UUID
	SourcePath string
	FinalName  string
	Status     constants.DocStatus
	Missing    []string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}
