package disposal

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"PairSentinel/internal/feed"
	"PairSentinel/internal/model"
)

// FeedSource is the slice of feed.Client the service needs; tests substitute
// a stub.
type FeedSource interface {
	TWSEAttentionNotices(ctx context.Context) []feed.AttentionNotice
	TWSEAttentionCounts(ctx context.Context) []feed.AttentionCountNote
	TWSEDisposalNotices(ctx context.Context) []feed.DisposalNotice
	TPExAttentionNotices(ctx context.Context) []feed.AttentionNotice
	TPExAttentionCounts(ctx context.Context) []feed.AttentionCountNote
	TPExDisposalNotices(ctx context.Context) []feed.DisposalNotice
}

// Cache policy: a snapshot is served as-is for TTL; for an extra grace
// window a stale snapshot is still served while a background refresh runs.
const (
	snapshotTTL        = 5 * time.Minute
	snapshotStaleGrace = 60 * time.Second
)

// Service aggregates the six regulatory feeds into a cached DisposalSnapshot.
type Service struct {
	src FeedSource
	now func() time.Time

	mu         sync.Mutex
	cached     *model.DisposalSnapshot
	refreshing bool
}

// NewService creates a snapshot service over the given feeds.
func NewService(src FeedSource) *Service {
	return &Service{src: src, now: time.Now}
}

// Snapshot returns the merged attention/disposal view. A snapshot younger
// than the TTL is returned directly; within the grace window the stale copy
// is returned and a refresh starts in the background; otherwise the call
// refreshes synchronously.
func (s *Service) Snapshot(ctx context.Context) *model.DisposalSnapshot {
	s.mu.Lock()
	if s.cached != nil {
		age := s.now().Sub(s.cached.LastUpdated)
		if age <= snapshotTTL {
			snap := s.cached
			s.mu.Unlock()
			return snap
		}
		if age <= snapshotTTL+snapshotStaleGrace {
			snap := s.cached
			if !s.refreshing {
				s.refreshing = true
				go func() {
					// Detach from the caller: the stale response must not be
					// cancelled along with the request that triggered it.
					refreshCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
					defer cancel()
					s.Refresh(refreshCtx)
				}()
			}
			s.mu.Unlock()
			return snap
		}
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh fetches all six sources concurrently and replaces the cached
// snapshot. Per-source failures have already degraded to empty slices in
// the feed layer, so Refresh always produces a (possibly partial) snapshot.
func (s *Service) Refresh(ctx context.Context) *model.DisposalSnapshot {
	var (
		wg            sync.WaitGroup
		twseNotices   []feed.AttentionNotice
		twseCounts    []feed.AttentionCountNote
		twseDisposals []feed.DisposalNotice
		tpexNotices   []feed.AttentionNotice
		tpexCounts    []feed.AttentionCountNote
		tpexDisposals []feed.DisposalNotice
	)

	wg.Add(6)
	go func() { defer wg.Done(); twseNotices = s.src.TWSEAttentionNotices(ctx) }()
	go func() { defer wg.Done(); twseCounts = s.src.TWSEAttentionCounts(ctx) }()
	go func() { defer wg.Done(); twseDisposals = s.src.TWSEDisposalNotices(ctx) }()
	go func() { defer wg.Done(); tpexNotices = s.src.TPExAttentionNotices(ctx) }()
	go func() { defer wg.Done(); tpexCounts = s.src.TPExAttentionCounts(ctx) }()
	go func() { defer wg.Done(); tpexDisposals = s.src.TPExDisposalNotices(ctx) }()
	wg.Wait()

	today := s.now().UTC().Format("2006-01-02")
	snap := buildSnapshot(
		twseNotices, twseCounts, twseDisposals,
		tpexNotices, tpexCounts, tpexDisposals,
		today, s.now(),
	)

	s.mu.Lock()
	s.cached = snap
	s.refreshing = false
	s.mu.Unlock()

	log.Printf("[INFO] disposal snapshot refreshed: %d attention, %d disposal",
		len(snap.AttentionStocks), len(snap.DisposalStocks))
	return snap
}

// SetThresholds writes computed threshold results onto the cached snapshot's
// attention records, keyed by "market:stockID". The cached snapshot is
// replaced copy-on-write so earlier readers keep a consistent view. Returns
// the annotated snapshot, or nil when nothing is cached yet.
func (s *Service) SetThresholds(results map[string]model.ThresholdResult) *model.DisposalSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil || len(results) == 0 {
		return s.cached
	}

	snap := *s.cached
	snap.AttentionStocks = append([]model.AttentionStock(nil), s.cached.AttentionStocks...)
	for i := range snap.AttentionStocks {
		a := &snap.AttentionStocks[i]
		if r, ok := results[string(a.MarketType)+":"+a.StockID]; ok {
			a.ThresholdPrice = r.ThresholdPrice
			a.ThresholdType = r.ThresholdType
		}
	}
	s.cached = &snap
	return &snap
}

// buildSnapshot merges both exchanges (TWSE first, then TPEx; codes are
// exchange-scoped so no cross-exchange dedup is needed) and applies the
// display sort: attention descending by count, disposal ascending by end
// date.
func buildSnapshot(
	twseNotices []feed.AttentionNotice, twseCounts []feed.AttentionCountNote, twseDisposals []feed.DisposalNotice,
	tpexNotices []feed.AttentionNotice, tpexCounts []feed.AttentionCountNote, tpexDisposals []feed.DisposalNotice,
	today string, updatedAt time.Time,
) *model.DisposalSnapshot {
	attention := TransformAttention(model.MarketTWSE, twseNotices, twseCounts)
	attention = append(attention, TransformAttention(model.MarketTPEx, tpexNotices, tpexCounts)...)

	disposal := TransformDisposal(model.MarketTWSE, twseDisposals, today)
	disposal = append(disposal, TransformDisposal(model.MarketTPEx, tpexDisposals, today)...)

	sort.SliceStable(attention, func(i, j int) bool {
		return attention[i].AttentionCount > attention[j].AttentionCount
	})
	sort.SliceStable(disposal, func(i, j int) bool {
		return disposal[i].EndDate < disposal[j].EndDate
	})

	return &model.DisposalSnapshot{
		AttentionStocks: attention,
		DisposalStocks:  disposal,
		LastUpdated:     updatedAt,
	}
}
