package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/logs", "200", time.Millisecond)
	m.ObserveScoreCompute(nil, time.Millisecond)
	m.ObserveNarrative("rule", "low", time.Millisecond)
	m.IncWhatIf(7, false)
	m.ObserveDraftApplied(3)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestWritePrometheus(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("GET", "/api/life-scores/today", "200", 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/logs", "500", 2*time.Second)
	m.ObserveScoreCompute(nil, 5*time.Millisecond)
	m.ObserveScoreCompute(errors.New("boom"), 5*time.Millisecond)
	m.ObserveNarrative("llm", "high", 300*time.Millisecond)
	m.IncWhatIf(30, true)
	m.ObserveDraftApplied(4)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`lt_api_requests_total{method="GET",route="/api/life-scores/today",status="200"} 1.000000`,
		"lt_api_requests_error_total 1.000000",
		"lt_api_requests_good_latency_total 1.000000",
		`lt_life_score_computations_total{status="error"} 1.000000`,
		`lt_twinny_summaries_total{source="llm",risk_level="high"} 1.000000`,
		`lt_twinny_narrator_seconds_bucket{source="llm",le="0.5"} 1`,
		`lt_twinny_narrator_seconds_bucket{source="llm",le="0.25"} 0`,
		`lt_what_if_runs_total{horizon_days="30",warned="true"} 1.000000`,
		"lt_plan_tasks_created_total 4.000000",
		"# TYPE lt_api_request_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route", "status"}, []string{`a"b\c`})
	if got != `{route="a\"b\\c",status="unknown"}` {
		t.Fatalf("unexpected labels: %s", got)
	}
	if got := withLe("", "+Inf"); got != `{le="+Inf"}` {
		t.Fatalf("withLe empty: %s", got)
	}
}
