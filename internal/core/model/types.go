package model

import "sort"

// ChuteRef identifies the chute a GPU is provisioned for.
type ChuteRef struct {
	ChuteID string `json:"chute_id"`
	Name    string `json:"name"`
}

// ProvisionedItem is one GPU assigned to a chute on a node.
type ProvisionedItem struct {
	Chute ChuteRef `json:"chute"`
	GPU   string   `json:"gpu"`
}

// NodeDetail is a single value of the detailed node listing, keyed by node id.
type NodeDetail struct {
	Provisioned []ProvisionedItem `json:"provisioned"`
}

// ComputeUnitStat is the compute a chute consumed over the past day.
type ComputeUnitStat struct {
	ChuteID      string  `json:"chute_id"`
	ComputeUnits float64 `json:"compute_units"`
}

type PastDayStats struct {
	ComputeUnits []ComputeUnitStat `json:"compute_units"`
}

// MiningStats is the per-chute miner statistics document.
// PastDay is a pointer so an absent section can be told apart from an empty one.
type MiningStats struct {
	PastDay *PastDayStats `json:"past_day"`
}

// Snapshot holds both fetched documents of a single run.
type Snapshot struct {
	Nodes map[string]NodeDetail
	Stats MiningStats
}

// ComputeUnits returns the past day compute unit entries, or nil when the section is absent.
func (s *Snapshot) ComputeUnits() []ComputeUnitStat {
	if s == nil || s.Stats.PastDay == nil {
		return nil
	}
	return s.Stats.PastDay.ComputeUnits
}

// ChuteAggregate is the joined view of one chute: its GPUs and the compute it produced.
type ChuteAggregate struct {
	ChuteID      string         `json:"chute_id"`
	Name         string         `json:"name"`
	GPUCounts    map[string]int `json:"gpus"`
	TotalCompute float64        `json:"total_compute"`
}

// GPUTotal returns the number of provisioned GPUs across all models.
func (c *ChuteAggregate) GPUTotal() int {
	total := 0
	for _, count := range c.GPUCounts {
		total += count
	}
	return total
}

// GPUModels returns the GPU model names sorted alphabetically.
func (c *ChuteAggregate) GPUModels() []string {
	models := make([]string, 0, len(c.GPUCounts))
	for gpu := range c.GPUCounts {
		models = append(models, gpu)
	}
	sort.Strings(models)
	return models
}

// RankedEntry is a chute with its priced cost and efficiency.
type RankedEntry struct {
	ChuteAggregate
	DailyCost        float64 `json:"daily_cost"`
	ComputePerDollar float64 `json:"compute_per_dollar"`
}

// RankingSummary totals a ranking.
type RankingSummary struct {
	Chutes       int     `json:"chutes"`
	GPUs         int     `json:"gpus"`
	DailyCost    float64 `json:"daily_cost"`
	TotalCompute float64 `json:"total_compute"`
}
