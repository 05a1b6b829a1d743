package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProcedure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Procedure("location_updating", OutcomeAccept)
	m.Procedure("location_updating", OutcomeAccept)
	m.Procedure("location_updating", OutcomeReject)

	if got := testutil.ToFloat64(m.procedures.WithLabelValues("location_updating", OutcomeAccept)); got != 2 {
		t.Errorf("accept = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.procedures.WithLabelValues("location_updating", OutcomeReject)); got != 1 {
		t.Errorf("reject = %v, want 1", got)
	}
}

func TestFaultAndChannels(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Fault(FaultTimeout)
	m.ChannelOpened()
	m.ChannelOpened()
	m.ChannelClosed()

	if got := testutil.ToFloat64(m.faults.WithLabelValues(FaultTimeout)); got != 1 {
		t.Errorf("timeout faults = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.channels); got != 1 {
		t.Errorf("channels_active = %v, want 1", got)
	}
}

func TestObserveDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDuration("imsi_detach", 20*time.Millisecond)

	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("histogram series = %d, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	// パニックしないこと
	m.Procedure("cm_service", OutcomeReject)
	m.ObserveDuration("cm_service", time.Second)
	m.Fault(FaultOther)
	m.ChannelOpened()
	m.ChannelClosed()
}

func TestNewRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Procedure("cm_service", OutcomeForwarded)
	m.ObserveDuration("cm_service", time.Millisecond)
	m.Fault(FaultProtocol)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"mm_procedures_total",
		"mm_procedure_duration_seconds",
		"mm_channel_faults_total",
		"mm_channels_active",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
