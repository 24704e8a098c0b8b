// Package metrics provides simple metrics collection for scratchpool.
// Supports Prometheus exposition format for monitoring integration.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLatencyBuckets are histogram buckets (in seconds) suited to
// in-process constructors: 1µs up to 100ms.
var DefaultLatencyBuckets = []float64{
	0.000001, 0.000005, 0.00001, 0.00005, 0.0001,
	0.0005, 0.001, 0.005, 0.01, 0.05, 0.1,
}

// Counter is a monotonically increasing counter.
type Counter struct {
	value uint64
	name  string
	help  string
}

// NewCounter creates a new counter metric registered with the default registry.
func NewCounter(name, help string) *Counter {
	return defaultRegistry.NewCounter(name, help)
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

// Add adds the given value to the counter.
func (c *Counter) Add(v uint64) {
	atomic.AddUint64(&c.value, v)
}

// Value returns the current counter value.
func (c *Counter) Value() uint64 {
	return atomic.LoadUint64(&c.value)
}

func (c *Counter) metricName() string { return c.name }

func (c *Counter) prometheus() string {
	var sb strings.Builder
	writeHeader(&sb, c.name, c.help, "counter")
	fmt.Fprintf(&sb, "%s %d\n", c.name, c.Value())
	return sb.String()
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	value int64
	name  string
	help  string
}

// NewGauge creates a new gauge metric registered with the default registry.
func NewGauge(name, help string) *Gauge {
	return defaultRegistry.NewGauge(name, help)
}

// Set sets the gauge to the given value.
func (g *Gauge) Set(v int64) {
	atomic.StoreInt64(&g.value, v)
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	atomic.AddInt64(&g.value, 1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	atomic.AddInt64(&g.value, -1)
}

// Add adds the given value to the gauge.
func (g *Gauge) Add(v int64) {
	atomic.AddInt64(&g.value, v)
}

// Value returns the current gauge value.
func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.value)
}

func (g *Gauge) metricName() string { return g.name }

func (g *Gauge) prometheus() string {
	var sb strings.Builder
	writeHeader(&sb, g.name, g.help, "gauge")
	fmt.Fprintf(&sb, "%s %d\n", g.name, g.Value())
	return sb.String()
}

// Histogram tracks the distribution of values.
type Histogram struct {
	mu      sync.Mutex
	name    string
	help    string
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

// NewHistogram creates a new histogram metric registered with the default registry.
func NewHistogram(name, help string, buckets []float64) *Histogram {
	return defaultRegistry.NewHistogram(name, help, buckets)
}

// Observe records a value in the histogram.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += v
	h.count++

	for i, b := range h.buckets {
		if v <= b {
			h.counts[i]++
		}
	}
}

// Count returns the number of observations.
func (h *Histogram) Count() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *Histogram) metricName() string { return h.name }

func (h *Histogram) prometheus() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var sb strings.Builder
	writeHeader(&sb, h.name, h.help, "histogram")

	for i, b := range h.buckets {
		fmt.Fprintf(&sb, "%s_bucket{le=\"%g\"} %d\n", h.name, b, h.counts[i])
	}
	fmt.Fprintf(&sb, "%s_bucket{le=\"+Inf\"} %d\n", h.name, h.count)
	fmt.Fprintf(&sb, "%s_sum %g\n", h.name, h.sum)
	fmt.Fprintf(&sb, "%s_count %d\n", h.name, h.count)

	return sb.String()
}

// CounterVec is a family of counters partitioned by a single label.
type CounterVec struct {
	mu       sync.RWMutex
	name     string
	help     string
	label    string
	children map[string]*Counter
}

// NewCounterVec creates a labeled counter family registered with the default registry.
func NewCounterVec(name, help, label string) *CounterVec {
	return defaultRegistry.NewCounterVec(name, help, label)
}

// With returns the counter for the given label value, creating it on first use.
func (v *CounterVec) With(value string) *Counter {
	v.mu.RLock()
	c, ok := v.children[value]
	v.mu.RUnlock()
	if ok {
		return c
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if c, ok = v.children[value]; !ok {
		c = &Counter{name: v.name, help: v.help}
		v.children[value] = c
	}
	return c
}

func (v *CounterVec) metricName() string { return v.name }

func (v *CounterVec) prometheus() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var sb strings.Builder
	writeHeader(&sb, v.name, v.help, "counter")
	for _, value := range sortedKeys(v.children) {
		fmt.Fprintf(&sb, "%s{%s=%q} %d\n", v.name, v.label, value, v.children[value].Value())
	}
	return sb.String()
}

// GaugeVec is a family of gauges partitioned by a single label.
type GaugeVec struct {
	mu       sync.RWMutex
	name     string
	help     string
	label    string
	children map[string]*Gauge
}

// NewGaugeVec creates a labeled gauge family registered with the default registry.
func NewGaugeVec(name, help, label string) *GaugeVec {
	return defaultRegistry.NewGaugeVec(name, help, label)
}

// With returns the gauge for the given label value, creating it on first use.
func (v *GaugeVec) With(value string) *Gauge {
	v.mu.RLock()
	g, ok := v.children[value]
	v.mu.RUnlock()
	if ok {
		return g
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if g, ok = v.children[value]; !ok {
		g = &Gauge{name: v.name, help: v.help}
		v.children[value] = g
	}
	return g
}

func (v *GaugeVec) metricName() string { return v.name }

func (v *GaugeVec) prometheus() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var sb strings.Builder
	writeHeader(&sb, v.name, v.help, "gauge")
	for _, value := range sortedKeys(v.children) {
		fmt.Fprintf(&sb, "%s{%s=%q} %d\n", v.name, v.label, value, v.children[value].Value())
	}
	return sb.String()
}

// metric is the interface for all metric types.
type metric interface {
	metricName() string
	prometheus() string
}

// Registry holds registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]metric
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]metric),
	}
}

// defaultRegistry is the global metric registry.
var defaultRegistry = NewRegistry()

// Default returns the global registry used by the package-level constructors.
func Default() *Registry {
	return defaultRegistry
}

// NewCounter creates a counter registered with r.
func (r *Registry) NewCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	r.register(c)
	return c
}

// NewGauge creates a gauge registered with r.
func (r *Registry) NewGauge(name, help string) *Gauge {
	g := &Gauge{name: name, help: help}
	r.register(g)
	return g
}

// NewHistogram creates a histogram registered with r.
func (r *Registry) NewHistogram(name, help string, buckets []float64) *Histogram {
	h := &Histogram{
		name:    name,
		help:    help,
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
	r.register(h)
	return h
}

// NewCounterVec creates a labeled counter family registered with r.
func (r *Registry) NewCounterVec(name, help, label string) *CounterVec {
	v := &CounterVec{name: name, help: help, label: label, children: make(map[string]*Counter)}
	r.register(v)
	return v
}

// NewGaugeVec creates a labeled gauge family registered with r.
func (r *Registry) NewGaugeVec(name, help, label string) *GaugeVec {
	v := &GaugeVec{name: name, help: help, label: label, children: make(map[string]*Gauge)}
	r.register(v)
	return v
}

func (r *Registry) register(m metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics[m.metricName()] = m
}

// Expose returns all metrics in Prometheus exposition format.
func (r *Registry) Expose() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, name := range sortedKeys(r.metrics) {
		sb.WriteString(r.metrics[name].prometheus())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Handler returns an http.Handler that exposes the registry.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(r.Expose()))
	})
}

// Handler returns an http.Handler that exposes the default registry.
func Handler() http.Handler {
	return defaultRegistry.Handler()
}

// StartTime is the Unix timestamp at which the process started serving metrics.
var StartTime = NewGauge("scratchpool_start_time_seconds", "Unix timestamp when the process started")

// RecordStartTime records the current time as the start time.
func RecordStartTime() {
	StartTime.Set(time.Now().Unix())
}

func writeHeader(sb *strings.Builder, name, help, kind string) {
	fmt.Fprintf(sb, "# HELP %s %s\n", name, help)
	fmt.Fprintf(sb, "# TYPE %s %s\n", name, kind)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
