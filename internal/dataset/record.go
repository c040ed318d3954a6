// Package dataset loads multiple-choice question records for the
// translation pipeline.
package dataset

import "context"

// Record is one multiple-choice question. ID is stable for the run and is
// threaded through every pipeline stage so downstream output can be aligned
// with its source without relying on sequence position alone.
type Record struct {
	ID       string
	Question string
	Choices  []string
	Answer   int // index into Choices
}

type Loader interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}
