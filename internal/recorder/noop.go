package recorder

import "PairSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *model.DisposalSnapshot) error             { return nil }
func (n *NoopRecorder) RecordSignals(_ string, _ []model.PairAnalysis) error       { return nil }
func (n *NoopRecorder) Close() error                                               { return nil }
