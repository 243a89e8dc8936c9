package notifier

import (
	"fmt"
	"strings"
	"time"

	"PairSentinel/internal/model"
)

// FormatSnapshot formats the merged attention/disposal view into a Telegram message.
func FormatSnapshot(snap *model.DisposalSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 <b>注意與處置股票</b> | %s\n\n", snap.LastUpdated.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("⚠️ <b>注意股票</b> (%d 檔)\n", len(snap.AttentionStocks)))
	if len(snap.AttentionStocks) == 0 {
		b.WriteString("  無\n")
	}
	for _, a := range snap.AttentionStocks {
		b.WriteString(fmt.Sprintf("  %s %s [%s] 第%d次",
			a.StockID, a.StockName, model.MarketLabels[a.MarketType], a.AttentionCount))
		if a.ThresholdPrice > 0 {
			b.WriteString(fmt.Sprintf(" | 處置門檻 %d元 (%s)", a.ThresholdPrice, thresholdLabel(a.ThresholdType)))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n🛑 <b>處置股票</b> (%d 檔)\n", len(snap.DisposalStocks)))
	if len(snap.DisposalStocks) == 0 {
		b.WriteString("  無\n")
	}
	for _, d := range snap.DisposalStocks {
		b.WriteString(fmt.Sprintf("  %s %s [%s] 每%d分鐘撮合 | %s ~ %s\n",
			d.StockID, d.StockName, model.MarketLabels[d.MarketType],
			d.DisposalInterval, d.StartDate, d.EndDate))
	}

	return b.String()
}

func thresholdLabel(t model.ThresholdType) string {
	if t == model.Threshold6Day {
		return "6日"
	}
	return "30日"
}

// FormatSignalReport formats a group's pair analysis into a Telegram message.
// Pairs are printed in the order given; callers sort by strength first.
// periodDays is echoed in the insufficient-data advisory.
func FormatSignalReport(groupName string, periodDays int, ga *model.GroupAnalysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>配對訊號</b> | %s | %s\n\n", groupName, time.Now().Format("2006-01-02")))

	if len(ga.Results) == 0 {
		b.WriteString("無可分析的配對\n")
	}
	for _, p := range ga.Results {
		b.WriteString(fmt.Sprintf("<b>%s/%s</b> 訊號: %s\n", p.StockAName, p.StockBName, model.SignalLabels[p.SignalStrength]))
		b.WriteString(fmt.Sprintf("  比值 %.4f (均值 %.4f) | Z %.2f | 價差空間 %+.2f%%\n",
			p.CurrentRatio, p.HistoricalMean, p.ZScore, p.ArbitrageSpace*100))
		b.WriteString(fmt.Sprintf("  相關性 %.2f | 同向率 %.0f%%\n", p.CorrelationCoef, p.CoMovementRate*100))
		b.WriteString(fmt.Sprintf("  操作: %s%s / %s%s\n\n",
			model.ActionLabels[p.StockAAction], p.StockAName,
			model.ActionLabels[p.StockBAction], p.StockBName))
	}

	if len(ga.ExcludedStockIDs) > 0 {
		b.WriteString(fmt.Sprintf("近%d日資料不足排除: %s\n", periodDays, strings.Join(ga.ExcludedStockIDs, ", ")))
	}

	return b.String()
}

// FormatPosition formats a position sizing result.
func FormatPosition(p *model.PositionResult, nameA, nameB string) string {
	var b strings.Builder

	b.WriteString("💰 <b>建議部位</b>\n\n")
	b.WriteString(fmt.Sprintf("%s%s: %d張 (約 %.0f元)\n",
		model.ActionLabels[p.StockAAction], nameA, p.StockALots, p.StockACost))
	b.WriteString(fmt.Sprintf("%s%s: %d張 (約 %.0f元)\n",
		model.ActionLabels[p.StockBAction], nameB, p.StockBLots, p.StockBCost))
	b.WriteString(fmt.Sprintf("總資金: %.0f元 | 兩邊價差 %.0f元 (%.1f%%)\n",
		p.TotalCapital, p.ValueDifference, p.ValueDifferencePercent*100))
	return b.String()
}

// FormatGroupList formats stored groups for the /groups command.
func FormatGroupList(groups []*model.StockGroup) string {
	if len(groups) == 0 {
		return "尚未建立任何群組"
	}
	var b strings.Builder
	b.WriteString("📋 <b>股票群組</b>\n\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("<b>%s</b> (%s)\n  %s\n", g.Name, g.ID, strings.Join(g.StockIDs, ", ")))
	}
	return b.String()
}
