package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exposes the counters and gauges of a Registry to a
// prometheus.Registerer. Values are read at scrape time.
type PrometheusCollector struct {
	reg       *Registry
	namespace string
}

// NewPrometheusCollector returns a collector over reg. namespace, if set, is
// prepended to every metric name.
func NewPrometheusCollector(reg *Registry, namespace string) *PrometheusCollector {
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

// Describe sends no descriptors, which marks the collector as unchecked;
// the metric set grows as the registry creates metrics on first use.
func (pc *PrometheusCollector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector.
func (pc *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range pc.reg.Counters() {
		desc := prometheus.NewDesc(pc.fqName(c.Name()), c.Name(), nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(c.Value()))
	}
	for _, g := range pc.reg.Gauges() {
		desc := prometheus.NewDesc(pc.fqName(g.Name()), g.Name(), nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(g.Value()))
	}
}

// fqName converts a dotted registry name into a Prometheus metric name.
func (pc *PrometheusCollector) fqName(name string) string {
	name = strings.NewReplacer(".", "_", "-", "_", "/", "_").Replace(name)
	if pc.namespace == "" {
		return name
	}
	return pc.namespace + "_" + name
}
