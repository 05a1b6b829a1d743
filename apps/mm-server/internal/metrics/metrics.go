// Package metrics はmm-serverのPrometheusメトリクスを提供する。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mm"

// 手順の結果ラベル
const (
	OutcomeAccept      = "accept"
	OutcomeReject      = "reject"
	OutcomeAuthReject  = "auth_reject"
	OutcomeNetworkFail = "network_failure"
	OutcomeForwarded   = "forwarded"
	OutcomeReleased    = "released"
	OutcomeFault       = "fault"
)

// チャネル障害種別ラベル
const (
	FaultTimeout  = "timeout"
	FaultProtocol = "protocol"
	FaultOther    = "other"
)

// Metrics はMM手順とチャネル処理のコレクタ群。
// nil レシーバでも安全に呼び出せる。
type Metrics struct {
	procedures *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	faults     *prometheus.CounterVec
	channels   prometheus.Gauge
}

// New はコレクタを生成し reg に登録する。
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		procedures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "procedures_total",
				Help:      "Total number of MM procedures by procedure and outcome",
			},
			[]string{"procedure", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "procedure_duration_seconds",
				Help:      "Duration of MM procedures",
				Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"procedure"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "channel_faults_total",
				Help:      "Total number of procedures aborted by a channel fault",
			},
			[]string{"kind"},
		),
		channels: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "channels_active",
				Help:      "Number of signaling channels being served",
			},
		),
	}
	reg.MustRegister(m.procedures, m.duration, m.faults, m.channels)
	return m
}

// Procedure は手順の結果を1件記録する。
func (m *Metrics) Procedure(procedure, outcome string) {
	if m == nil {
		return
	}
	m.procedures.WithLabelValues(procedure, outcome).Inc()
}

// ObserveDuration は手順の所要時間を記録する。
func (m *Metrics) ObserveDuration(procedure string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(procedure).Observe(d.Seconds())
}

// Fault はチャネル障害を1件記録する。
func (m *Metrics) Fault(kind string) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(kind).Inc()
}

// ChannelOpened は処理中チャネル数を増やす。
func (m *Metrics) ChannelOpened() {
	if m == nil {
		return
	}
	m.channels.Inc()
}

// ChannelClosed は処理中チャネル数を減らす。
func (m *Metrics) ChannelClosed() {
	if m == nil {
		return
	}
	m.channels.Dec()
}
