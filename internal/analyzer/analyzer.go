package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/core/pricing"
	"github.com/BerlinP/chutes-helper/internal/data/aggregator"
	"github.com/BerlinP/chutes-helper/internal/data/fetcher"
	"github.com/BerlinP/chutes-helper/internal/presentation/formatter"
	"github.com/BerlinP/chutes-helper/internal/util"
)

// FetchFailedMessage is printed instead of a report when the API could not be read.
const FetchFailedMessage = "Failed to fetch data"

type Config struct {
	BaseURL      string
	PriceFile    string
	OutputFormat string
	Limit        int
	Timeout      time.Duration
	NoColor      bool
	Output       io.Writer
}

// SnapshotFetcher retrieves both API documents of a run.
type SnapshotFetcher interface {
	Fetch(ctx context.Context) (*model.Snapshot, error)
}

type Analyzer struct {
	config    *Config
	fetcher   SnapshotFetcher
	prices    pricing.Provider
	formatter formatter.Formatter
}

// New builds an analyzer talking to the Chutes API and reading prices from disk.
func New(config *Config) (*Analyzer, error) {
	client, err := fetcher.NewClient(config.BaseURL, config.Timeout)
	if err != nil {
		return nil, err
	}
	return NewWithDeps(config, client, pricing.NewFileProvider(config.PriceFile))
}

// NewWithDeps builds an analyzer from explicit collaborators.
func NewWithDeps(config *Config, f SnapshotFetcher, prices pricing.Provider) (*Analyzer, error) {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative: %d", config.Limit)
	}

	out, err := formatter.New(config.OutputFormat, config.Output, formatter.Options{
		Color: !config.NoColor && util.IsTerminal(config.Output),
	})
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:    config,
		fetcher:   f,
		prices:    prices,
		formatter: out,
	}, nil
}

// Run executes fetch, join, price, rank and report.
//
// A failed fetch is not an error: it is logged, reported with FetchFailedMessage and
// nothing else runs. A price table that cannot be loaded is returned as an error.
func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()
	util.LogInfo("Starting compute per dollar analysis")

	// Phase 1: Fetch
	fetchStart := time.Now()
	snapshot, err := a.fetcher.Fetch(ctx)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		util.LogError("Error fetching data", util.F("error", err.Error()))
		_, werr := fmt.Fprintln(a.config.Output, FetchFailedMessage)
		return werr
	}
	util.LogDebugf("Phase 1 - Fetch duration: %v, nodes: %d", fetchDuration, len(snapshot.Nodes))

	// Phase 2: Load prices
	priceStart := time.Now()
	table, err := a.prices.LoadTable(ctx)
	if err != nil {
		return err
	}
	priceDuration := time.Since(priceStart)
	util.LogDebugf("Phase 2 - Price table (%s) duration: %v, models: %d",
		a.prices.GetProviderName(), priceDuration, len(table))

	// Phase 3: Aggregate
	aggStart := time.Now()
	chutes, stats := aggregator.Aggregate(snapshot)
	aggDuration := time.Since(aggStart)
	util.LogDebugf("Phase 3 - Aggregation duration: %v, chutes: %d, provisioned: %d, matched stats: %d, dropped stats: %d",
		aggDuration, len(chutes), stats.ProvisionedItems, stats.MatchedStats, stats.DroppedStats)

	warnUnpricedModels(chutes, table)

	// Phase 4: Rank
	rankStart := time.Now()
	entries := Rank(chutes, table)
	if a.config.Limit > 0 && len(entries) > a.config.Limit {
		util.LogDebugf("Applying result limit: %d -> %d", len(entries), a.config.Limit)
		entries = entries[:a.config.Limit]
	}
	summary := Summarize(entries)
	rankDuration := time.Since(rankStart)
	util.LogDebugf("Phase 4 - Ranking duration: %v", rankDuration)

	// Phase 5: Report
	outputStart := time.Now()
	err = a.formatter.Format(entries, summary)
	outputDuration := time.Since(outputStart)
	util.LogDebugf("Phase 5 - Output duration: %v", outputDuration)

	util.LogInfo("Analysis finished",
		util.F("chutes", summary.Chutes),
		util.F("daily_cost", util.FormatCurrency(summary.DailyCost)),
		util.F("duration", time.Since(startTime)))
	return err
}

// warnUnpricedModels logs each GPU model that is provisioned but missing from the price
// table, since such GPUs are counted as free.
func warnUnpricedModels(chutes map[string]*model.ChuteAggregate, table pricing.Table) {
	seen := make(map[string]int)
	for _, chute := range chutes {
		for _, gpu := range table.UnknownModels(chute.GPUCounts) {
			seen[gpu] += chute.GPUCounts[gpu]
		}
	}
	models := make([]string, 0, len(seen))
	for gpu := range seen {
		models = append(models, gpu)
	}
	sort.Strings(models)
	for _, gpu := range models {
		util.LogWarn("GPU model has no price, counting it as free", util.F("gpu", gpu), util.F("provisioned", seen[gpu]))
	}
}
