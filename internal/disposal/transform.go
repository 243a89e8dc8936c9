package disposal

import (
	"strings"

	"PairSentinel/internal/feed"
	"PairSentinel/internal/model"
	"PairSentinel/internal/rocdate"
)

// TransformAttention maps one exchange's notice records to AttentionStock
// records. The cumulative-count list is joined by stock code; stocks absent
// from it default to count 1. Records with a blank code are dropped. No
// dedup happens here; one output record per notice record.
func TransformAttention(market model.MarketType, notices []feed.AttentionNotice, counts []feed.AttentionCountNote) []model.AttentionStock {
	countByCode := make(map[string]int, len(counts))
	for _, note := range counts {
		countByCode[note.Code] = ParseAttentionCount(note.Situation)
	}

	out := make([]model.AttentionStock, 0, len(notices))
	for _, item := range notices {
		if strings.TrimSpace(item.Code) == "" {
			continue
		}
		count, ok := countByCode[item.Code]
		if !ok {
			count = 1
		}
		out = append(out, model.AttentionStock{
			StockID:        item.Code,
			StockName:      item.Name,
			MarketType:     market,
			AttentionCount: count,
			TriggerReason:  item.TradingInfo,
			AttentionDate:  rocdate.ToISO(item.Date),
		})
	}
	return out
}

// TransformDisposal maps one exchange's disposal records to DisposalStock
// records. today is the current UTC date as "YYYY-MM-DD" (passed in so
// tests can pin the clock). Records whose end date has already passed are
// dropped; duplicates for the same stock keep the record with the latest
// end date. Lexicographic date comparison is valid for the zero-padded ISO
// format.
func TransformDisposal(market model.MarketType, notices []feed.DisposalNotice, today string) []model.DisposalStock {
	out := make([]model.DisposalStock, 0, len(notices))
	index := make(map[string]int, len(notices))

	for _, item := range notices {
		if strings.TrimSpace(item.Code) == "" {
			continue
		}
		startDate, endDate := rocdate.ParsePeriod(item.Period)
		if endDate != "" && endDate < today {
			continue
		}

		stock := model.DisposalStock{
			StockID:          item.Code,
			StockName:        item.Name,
			MarketType:       market,
			DisposalInterval: ParseInterval(item.Measures),
			StartDate:        startDate,
			EndDate:          endDate,
		}

		if i, seen := index[item.Code]; seen {
			if out[i].EndDate >= endDate {
				continue
			}
			out[i] = stock
			continue
		}
		index[item.Code] = len(out)
		out = append(out, stock)
	}
	return out
}
