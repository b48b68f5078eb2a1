package main

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/eth2030/headerid/metrics"
)

// metricsNamespace prefixes every exported metric name.
const metricsNamespace = "headerid"

// writeMetrics gathers reg through a Prometheus registry and writes it to w
// in the text exposition format.
func writeMetrics(w io.Writer, reg *metrics.Registry) error {
	preg := prometheus.NewRegistry()
	if err := preg.Register(metrics.NewPrometheusCollector(reg, metricsNamespace)); err != nil {
		return err
	}
	families, err := preg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
