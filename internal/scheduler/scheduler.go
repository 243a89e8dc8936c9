package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"PairSentinel/internal/calculator"
	"PairSentinel/internal/catalog"
	"PairSentinel/internal/collector"
	"PairSentinel/internal/disposal"
	"PairSentinel/internal/model"
	"PairSentinel/internal/notifier"
	"PairSentinel/internal/recorder"
	"PairSentinel/internal/signal"
	"PairSentinel/internal/store"
)

// Scheduler manages all cron tasks and user commands.
type Scheduler struct {
	Cron       *cron.Cron
	Disposal   *disposal.Service
	Collector  *collector.Collector
	Groups     *store.GroupStore
	Catalog    *catalog.Catalog
	Notifier   notifier.Notifier
	Recorder   recorder.Recorder
	Ctx        context.Context
	PeriodDays int

	mu   sync.Mutex
	seen map[string]bool // disposal stock ids already announced
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *disposal.Service, col *collector.Collector,
	groups *store.GroupStore, cat *catalog.Catalog, n notifier.Notifier,
	rec recorder.Recorder, periodDays int) *Scheduler {
	if periodDays <= 0 {
		periodDays = model.DefaultAnalysisPeriod
	}
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Disposal:   svc,
		Collector:  col,
		Groups:     groups,
		Catalog:    cat,
		Notifier:   n,
		Recorder:   rec,
		Ctx:        ctx,
		PeriodDays: periodDays,
		seen:       make(map[string]bool),
	}
}

// RegisterAll registers the snapshot watch and the post-close analysis tasks.
func (s *Scheduler) RegisterAll(snapshotCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (for RUN_ON_START).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

// snapshotTask refreshes the regulatory snapshot, records it, and announces
// disposal stocks not seen before in this process.
func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] running snapshot task")
	snap := s.Disposal.Refresh(s.Ctx)

	if err := s.Recorder.RecordSnapshot(snap); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}

	fresh := s.newDisposals(snap.DisposalStocks)
	if len(fresh) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("🛑 <b>新增處置股票</b>\n\n")
	for _, d := range fresh {
		b.WriteString(fmt.Sprintf("%s %s [%s] 每%d分鐘撮合 | %s ~ %s\n",
			d.StockID, d.StockName, model.MarketLabels[d.MarketType],
			d.DisposalInterval, d.StartDate, d.EndDate))
	}
	s.trySend(b.String())
}

func (s *Scheduler) newDisposals(stocks []model.DisposalStock) []model.DisposalStock {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []model.DisposalStock
	for _, d := range stocks {
		key := string(d.MarketType) + ":" + d.StockID
		if !s.seen[key] {
			s.seen[key] = true
			fresh = append(fresh, d)
		}
	}
	return fresh
}

// dailyTask runs after market close: computes disposal thresholds for
// second-time attention stocks, then analyzes every stored group.
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily task")

	snap := s.Disposal.Snapshot(s.Ctx)
	if results := s.checkThresholds(snap); len(results) > 0 {
		if annotated := s.Disposal.SetThresholds(results); annotated != nil {
			if err := s.Recorder.RecordSnapshot(annotated); err != nil {
				log.Printf("[ERROR] record annotated snapshot: %v", err)
			}
		}
	}

	groups, err := s.Groups.List()
	if err != nil {
		log.Printf("[ERROR] list groups: %v", err)
		return
	}
	for _, g := range groups {
		if len(g.StockIDs) < model.GroupMinStocks {
			continue
		}
		s.analyzeGroup(g, true)
	}
}

// checkThresholds computes disposal thresholds for attention stocks on their
// second trigger, warns when the last close is within a few percent, and
// returns the results keyed by "market:stockID" for snapshot annotation.
func (s *Scheduler) checkThresholds(snap *model.DisposalSnapshot) map[string]model.ThresholdResult {
	results := make(map[string]model.ThresholdResult)
	for _, a := range snap.AttentionStocks {
		if a.AttentionCount < 2 {
			continue
		}
		prices, err := s.Collector.Fetcher.FetchDailyPrices(s.Ctx, a.StockID, 30)
		if err != nil {
			log.Printf("[WARN] threshold prices for %s: %v", a.StockID, err)
			continue
		}
		if len(prices) < 30 {
			log.Printf("[WARN] threshold for %s: only %d trading days", a.StockID, len(prices))
			continue
		}
		res := disposal.CalculateThreshold(a.MarketType,
			prices[len(prices)-6].Close, prices[len(prices)-30].Close)
		results[string(a.MarketType)+":"+a.StockID] = res

		current := prices[len(prices)-1].Close
		if disposal.NearThreshold(current, res.ThresholdPrice) {
			s.trySend(fmt.Sprintf(
				"⚠️ <b>接近處置門檻</b>\n\n%s %s 收盤 %.2f 元\n處置門檻 %d 元 (差 %.2f%%)",
				a.StockID, s.Catalog.Name(a.StockID), current,
				res.ThresholdPrice, disposal.PriceMargin(current, res.ThresholdPrice)))
		}
	}
	return results
}

// analyzeGroup fetches prices for a group, runs the pair analysis, records
// the results, and optionally notifies only when a strong signal appears.
func (s *Scheduler) analyzeGroup(g *model.StockGroup, strongOnly bool) *model.GroupAnalysis {
	prices, err := s.Collector.Collect(s.Ctx, g.StockIDs, s.PeriodDays)
	if err != nil {
		log.Printf("[ERROR] collect prices for group %s: %v", g.Name, err)
		return nil
	}

	ga := calculator.ComputeGroupAnalysis(g.StockIDs, prices, s.PeriodDays, s.Catalog.Name)
	ga.Results = signal.SortByStrength(ga.Results)

	if err := s.Recorder.RecordSignals(g.ID, ga.Results); err != nil {
		log.Printf("[ERROR] record signals for group %s: %v", g.Name, err)
	}

	if strongOnly {
		strong := ga.Results[:0:0]
		for _, p := range ga.Results {
			if signal.IsStrong(p.SignalStrength) {
				strong = append(strong, p)
			}
		}
		if len(strong) == 0 {
			return &ga
		}
		filtered := model.GroupAnalysis{Results: strong}
		s.trySend(notifier.FormatSignalReport(g.Name, s.PeriodDays, &filtered))
		return &ga
	}

	s.trySend(notifier.FormatSignalReport(g.Name, s.PeriodDays, &ga))
	return &ga
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/disposal", "查看處置":
		snap := s.Disposal.Snapshot(s.Ctx)
		return notifier.FormatSnapshot(snap)
	case "/groups", "查看群組":
		groups, err := s.Groups.List()
		if err != nil {
			return fmt.Sprintf("讀取群組失敗: %v", err)
		}
		return notifier.FormatGroupList(groups)
	case "/analyze":
		if len(fields) < 2 {
			return "用法: /analyze <群組id>"
		}
		g, err := s.Groups.Get(fields[1])
		if err != nil {
			return fmt.Sprintf("找不到群組 %s", fields[1])
		}
		ga := s.analyzeGroup(g, false)
		if ga == nil {
			return "分析失敗, 請稍後再試"
		}
		return ""
	case "/position":
		if len(fields) < 3 {
			return "用法: /position <股票A> <股票B> [總資金]"
		}
		return s.positionReply(fields[1], fields[2], fields[3:])
	case "/newgroup":
		if len(fields) < 4 {
			return "用法: /newgroup <名稱> <股票1> <股票2> [最多5檔]"
		}
		g, err := s.Groups.Create(fields[1], fields[2:])
		if err != nil {
			return fmt.Sprintf("建立群組失敗: %v", err)
		}
		return fmt.Sprintf("已建立群組 %s (%s)\n%s", g.Name, g.ID, strings.Join(g.StockIDs, ", "))
	case "/addstock":
		if len(fields) < 3 {
			return "用法: /addstock <群組id> <股票>"
		}
		g, err := s.Groups.AddStock(fields[1], fields[2])
		if err != nil {
			return fmt.Sprintf("找不到群組 %s", fields[1])
		}
		return fmt.Sprintf("群組 %s 現有: %s", g.Name, strings.Join(g.StockIDs, ", "))
	case "/removestock":
		if len(fields) < 3 {
			return "用法: /removestock <群組id> <股票>"
		}
		g, err := s.Groups.RemoveStock(fields[1], fields[2])
		if err != nil {
			return fmt.Sprintf("找不到群組 %s", fields[1])
		}
		return fmt.Sprintf("群組 %s 現有: %s", g.Name, strings.Join(g.StockIDs, ", "))
	case "/delgroup":
		if len(fields) < 2 {
			return "用法: /delgroup <群組id>"
		}
		if err := s.Groups.Delete(fields[1]); err != nil {
			return fmt.Sprintf("刪除群組失敗: %v", err)
		}
		return fmt.Sprintf("已刪除群組 %s", fields[1])
	default:
		return "可用命令:\n" +
			"• /disposal 查看處置與注意股票\n" +
			"• /groups 查看群組\n" +
			"• /newgroup <名稱> <股票...> 建立群組\n" +
			"• /addstock <群組id> <股票> 加入股票\n" +
			"• /removestock <群組id> <股票> 移除股票\n" +
			"• /delgroup <群組id> 刪除群組\n" +
			"• /analyze <群組id> 執行配對分析\n" +
			"• /position <股票A> <股票B> [總資金] 計算建議部位"
	}
}

// positionReply analyzes the single pair (stockA, stockB) and sizes both
// legs: minimum-difference lots by default, or a 50/50 split of the given
// capital.
func (s *Scheduler) positionReply(stockA, stockB string, rest []string) string {
	prices, err := s.Collector.Collect(s.Ctx, []string{stockA, stockB}, s.PeriodDays)
	if err != nil {
		return fmt.Sprintf("讀取價格失敗: %v", err)
	}

	ga := calculator.ComputeGroupAnalysis([]string{stockA, stockB}, prices, s.PeriodDays, s.Catalog.Name)
	var pair *model.PairAnalysis
	for i := range ga.Results {
		if ga.Results[i].StockA == stockA && ga.Results[i].StockB == stockB {
			pair = &ga.Results[i]
			break
		}
	}
	if pair == nil {
		return fmt.Sprintf("%s/%s 歷史資料不足, 無法配對", stockA, stockB)
	}

	var pos model.PositionResult
	if len(rest) > 0 {
		capital, err := strconv.ParseFloat(rest[0], 64)
		if err != nil || capital <= 0 {
			return "總資金需為正數"
		}
		pos = calculator.CustomCapitalPosition(
			pair.StockACurrentPrice, pair.StockBCurrentPrice, capital,
			pair.StockAAction, pair.StockBAction)
	} else {
		pos = calculator.MinimumPosition(
			pair.StockACurrentPrice, pair.StockBCurrentPrice,
			pair.StockAAction, pair.StockBAction)
	}

	return fmt.Sprintf("%s/%s 訊號: %s\n\n%s",
		pair.StockAName, pair.StockBName, model.SignalLabels[pair.SignalStrength],
		notifier.FormatPosition(&pos, pair.StockAName, pair.StockBName))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
