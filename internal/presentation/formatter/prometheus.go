package formatter

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/BerlinP/chutes-helper/internal/core/model"
)

// PrometheusFormatter writes the ranking in the Prometheus text exposition format,
// for example as input to a node_exporter textfile collector.
type PrometheusFormatter struct {
	w io.Writer
}

func NewPrometheusFormatter(w io.Writer) *PrometheusFormatter {
	return &PrometheusFormatter{w: w}
}

func (f *PrometheusFormatter) Format(entries []model.RankedEntry, summary model.RankingSummary) error {
	registry := prometheus.NewRegistry()

	chuteLabels := []string{"chute_id", "name"}
	computePerDollar := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chutes_compute_per_dollar",
		Help: "Compute units produced per dollar of daily GPU rental cost.",
	}, chuteLabels)
	dailyCost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chutes_daily_cost_usd",
		Help: "Estimated daily GPU rental cost of a chute in USD.",
	}, chuteLabels)
	totalCompute := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chutes_total_compute_units",
		Help: "Compute units consumed by a chute over the past day.",
	}, chuteLabels)
	rank := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chutes_rank",
		Help: "Position of a chute in the compute per dollar ranking, starting at 1.",
	}, chuteLabels)
	gpuCount := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chutes_gpu_count",
		Help: "Number of provisioned GPUs of a model for a chute.",
	}, []string{"chute_id", "gpu"})
	totalDailyCost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chutes_ranking_daily_cost_usd",
		Help: "Sum of the daily cost of all ranked chutes in USD.",
	})

	registry.MustRegister(computePerDollar, dailyCost, totalCompute, rank, gpuCount, totalDailyCost)

	for i := range entries {
		entry := &entries[i]
		computePerDollar.WithLabelValues(entry.ChuteID, entry.Name).Set(entry.ComputePerDollar)
		dailyCost.WithLabelValues(entry.ChuteID, entry.Name).Set(entry.DailyCost)
		totalCompute.WithLabelValues(entry.ChuteID, entry.Name).Set(entry.TotalCompute)
		rank.WithLabelValues(entry.ChuteID, entry.Name).Set(float64(i + 1))
		for gpu, count := range entry.GPUCounts {
			gpuCount.WithLabelValues(entry.ChuteID, gpu).Set(float64(count))
		}
	}
	totalDailyCost.Set(summary.DailyCost)

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f.w, mf); err != nil {
			return err
		}
	}
	return nil
}
