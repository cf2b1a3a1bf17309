package analyzer

import (
	"sort"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/core/pricing"
)

// Rank prices every chute and orders them by compute per dollar, highest first.
// Chutes with equal efficiency are ordered by chute id.
func Rank(chutes map[string]*model.ChuteAggregate, table pricing.Table) []model.RankedEntry {
	entries := make([]model.RankedEntry, 0, len(chutes))
	for _, chute := range chutes {
		entries = append(entries, Price(chute, table))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ComputePerDollar != entries[j].ComputePerDollar {
			return entries[i].ComputePerDollar > entries[j].ComputePerDollar
		}
		return entries[i].ChuteID < entries[j].ChuteID
	})
	return entries
}

// Price computes the daily cost and compute per dollar of one chute.
// A chute with no cost has a compute per dollar of 0, whatever its compute.
func Price(chute *model.ChuteAggregate, table pricing.Table) model.RankedEntry {
	entry := model.RankedEntry{
		ChuteAggregate: *chute,
		DailyCost:      table.DailyCost(chute.GPUCounts),
	}
	if entry.DailyCost > 0 {
		entry.ComputePerDollar = chute.TotalCompute / entry.DailyCost
	}
	return entry
}

// Summarize totals a ranking.
func Summarize(entries []model.RankedEntry) model.RankingSummary {
	summary := model.RankingSummary{Chutes: len(entries)}
	for i := range entries {
		summary.GPUs += entries[i].GPUTotal()
		summary.DailyCost += entries[i].DailyCost
		summary.TotalCompute += entries[i].TotalCompute
	}
	return summary
}
