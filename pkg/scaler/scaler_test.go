package scaler

import (
	"math"
	"testing"

	"github.com/ilkoid/smarttemp/pkg/config"
)

func testConfig() config.EngineConfig {
	cfg := config.EngineConfig{}
	return cfg.GetDefaults()
}

// TestScaleFullConfidence: confidence = 1 даёт ровно base_temp категории.
func TestScaleFullConfidence(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)

	for _, cat := range cfg.Categories {
		got := s.Scale(cat.Name, 1.0)
		if math.Abs(got-cat.BaseTemp) > 1e-9 {
			t.Errorf("%s: Scale(1.0) = %v, want base temp %v", cat.Name, got, cat.BaseTemp)
		}
	}
}

// TestScaleZeroConfidence: confidence = 0 даёт clamp(base + scale_factor).
func TestScaleZeroConfidence(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)

	for _, cat := range cfg.Categories {
		expected := cat.BaseTemp + cfg.ScaleFactor
		if expected > cfg.TempMax {
			expected = cfg.TempMax
		}
		if expected < cfg.TempMin {
			expected = cfg.TempMin
		}

		got := s.Scale(cat.Name, 0)
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("%s: Scale(0) = %v, want %v", cat.Name, got, expected)
		}
	}
}

// TestScaleAlwaysInRange: любой confidence в [0,1] даёт температуру в clamp-диапазоне.
func TestScaleAlwaysInRange(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)

	for _, cat := range cfg.Categories {
		for c := 0.0; c <= 1.0; c += 0.05 {
			got := s.Scale(cat.Name, c)
			if got < cfg.TempMin || got > cfg.TempMax {
				t.Errorf("%s: Scale(%v) = %v outside [%v, %v]",
					cat.Name, c, got, cfg.TempMin, cfg.TempMax)
			}
		}
	}
}

// TestScaleClampsInvalidConfidence: confidence вне [0,1] зажимается, не фейлится.
func TestScaleClampsInvalidConfidence(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)

	tests := []struct {
		name       string
		confidence float64
		sameAs     float64
	}{
		{"negative", -0.5, 0},
		{"above one", 1.7, 1},
		{"way above", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Scale("factual", tt.confidence)
			want := s.Scale("factual", tt.sameAs)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Scale(%v) = %v, want same as Scale(%v) = %v",
					tt.confidence, got, tt.sameAs, want)
			}
		})
	}
}

// TestScaleUnknownCategory: неизвестная категория получает base fallback-категории.
func TestScaleUnknownCategory(t *testing.T) {
	cfg := testConfig()
	s := New(cfg)

	got := s.Scale("nonexistent", 0.8)
	want := s.Scale(cfg.FallbackCategory, 0.8)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("unknown category: got %v, want fallback value %v", got, want)
	}
}

// TestScaleCategoryOrdering: при равной уверенности factual < analytical < creative.
func TestScaleCategoryOrdering(t *testing.T) {
	s := New(testConfig())

	for _, conf := range []float64{0.3, 0.6, 0.95} {
		factual := s.Scale("factual", conf)
		analytical := s.Scale("analytical", conf)
		creative := s.Scale("creative", conf)

		if !(factual < analytical && analytical < creative) {
			t.Errorf("conf=%v: expected factual < analytical < creative, got %v / %v / %v",
				conf, factual, analytical, creative)
		}
	}
}

// TestScaleLowerConfidenceRaisesTemperature: меньше уверенности — больше температура.
func TestScaleLowerConfidenceRaisesTemperature(t *testing.T) {
	s := New(testConfig())

	high := s.Scale("instructional", 0.9)
	low := s.Scale("instructional", 0.2)

	if low <= high {
		t.Errorf("expected lower confidence to raise temperature: conf=0.2 → %v, conf=0.9 → %v",
			low, high)
	}
}
