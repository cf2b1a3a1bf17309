package pricing

import (
	"sort"
	"strings"
)

// HoursPerDay converts an hourly GPU price into a daily rental cost.
const HoursPerDay = 24

// Table maps a GPU model name to its hourly rental price in USD.
//
// Lookups lower-case the model name and match keys exactly as written, so a key that is
// not lower case never matches.
type Table map[string]float64

// NewTable copies prices into a table, keys unchanged.
func NewTable(prices map[string]float64) Table {
	t := make(Table, len(prices))
	for gpu, price := range prices {
		t[gpu] = price
	}
	return t
}

// HourlyPrice returns the hourly price of a GPU model, 0 when the model is not listed.
func (t Table) HourlyPrice(gpu string) float64 {
	return t[strings.ToLower(gpu)]
}

// Has reports whether the model has a listed price
func (t Table) Has(gpu string) bool {
	_, ok := t[strings.ToLower(gpu)]
	return ok
}

// DailyCost sums price × count × 24 over the GPU counts. Unlisted models cost nothing.
// Models are summed in name order so the result is identical on every run.
func (t Table) DailyCost(gpuCounts map[string]int) float64 {
	var cost float64
	for _, gpu := range sortedModels(gpuCounts) {
		cost += t.HourlyPrice(gpu) * float64(gpuCounts[gpu]) * HoursPerDay
	}
	return cost
}

// UnknownModels returns the models of gpuCounts missing from the table, sorted.
func (t Table) UnknownModels(gpuCounts map[string]int) []string {
	var unknown []string
	for _, gpu := range sortedModels(gpuCounts) {
		if !t.Has(gpu) {
			unknown = append(unknown, gpu)
		}
	}
	return unknown
}

// UnreachableKeys returns the keys that contain upper case letters, sorted. No lookup can
// match them.
func (t Table) UnreachableKeys() []string {
	var keys []string
	for key := range t {
		if key != strings.ToLower(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedModels(gpuCounts map[string]int) []string {
	models := make([]string, 0, len(gpuCounts))
	for gpu := range gpuCounts {
		models = append(models, gpu)
	}
	sort.Strings(models)
	return models
}
