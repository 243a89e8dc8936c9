package recorder

import "PairSentinel/internal/model"

// Recorder persists regulatory snapshots and analysis results for later review.
type Recorder interface {
	RecordSnapshot(snap *model.DisposalSnapshot) error
	RecordSignals(groupID string, results []model.PairAnalysis) error
	Close() error
}
