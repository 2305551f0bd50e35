package progress

import (
	"context"

	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}
func (n *NopSink) Info(message string)                                          {}
func (n *NopSink) Error(message string)                                         {}

var _ usecase.ProgressSink = (*NopSink)(nil)
