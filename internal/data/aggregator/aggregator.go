package aggregator

import (
	"sort"

	"github.com/BerlinP/chutes-helper/internal/core/model"
)

// Stats describes what a join consumed and dropped.
type Stats struct {
	Nodes            int
	ProvisionedItems int
	MatchedStats     int
	DroppedStats     int
}

// Aggregate joins provisioned GPUs and past day compute units by chute id.
//
// An aggregate is created only for chutes with at least one provisioned GPU. Compute unit
// entries for any other chute id are dropped. Nodes are walked in id order so the
// first-seen chute name does not depend on map iteration.
func Aggregate(snapshot *model.Snapshot) (map[string]*model.ChuteAggregate, Stats) {
	chutes := make(map[string]*model.ChuteAggregate)
	var stats Stats
	if snapshot == nil {
		return chutes, stats
	}

	nodeIDs := make([]string, 0, len(snapshot.Nodes))
	for nodeID := range snapshot.Nodes {
		nodeIDs = append(nodeIDs, nodeID)
	}
	sort.Strings(nodeIDs)
	stats.Nodes = len(nodeIDs)

	for _, nodeID := range nodeIDs {
		for _, item := range snapshot.Nodes[nodeID].Provisioned {
			stats.ProvisionedItems++

			chute, ok := chutes[item.Chute.ChuteID]
			if !ok {
				chute = &model.ChuteAggregate{
					ChuteID:   item.Chute.ChuteID,
					Name:      item.Chute.Name,
					GPUCounts: make(map[string]int),
				}
				chutes[item.Chute.ChuteID] = chute
			}
			chute.GPUCounts[item.GPU]++
		}
	}

	for _, stat := range snapshot.ComputeUnits() {
		chute, ok := chutes[stat.ChuteID]
		if !ok {
			stats.DroppedStats++
			continue
		}
		chute.TotalCompute += stat.ComputeUnits
		stats.MatchedStats++
	}

	return chutes, stats
}
