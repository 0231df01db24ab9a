package observability

import "testing"

func TestOtelConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://collector.example.com/v1/traces")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=Bearer x, broken, =v,team=twin")
	t.Setenv("OTEL_SAMPLER_RATIO", "4")

	cfg := OtelConfigFromEnv("lifetwin", "test")
	if !cfg.Enabled || cfg.Endpoint != "https://collector.example.com/v1/traces" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.Headers) != 2 || cfg.Headers["authorization"] != "Bearer x" || cfg.Headers["team"] != "twin" {
		t.Fatalf("unexpected headers: %v", cfg.Headers)
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("ratio should clamp to 1, got %v", cfg.SampleRatio)
	}
}

func TestOtelConfigDefaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "")

	cfg := OtelConfigFromEnv("lifetwin", "test")
	if cfg.Enabled || cfg.Headers != nil || cfg.SampleRatio != defaultSampleRatio {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := clampRatio(-0.5); got != 0 {
		t.Fatalf("negative ratio should clamp to 0, got %v", got)
	}
}
