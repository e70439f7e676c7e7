package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "merge") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset() // should not panic
}

func TestProgressSampler_PercentBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "merge") {
		t.Error("0% should log")
	}
	if s.ShouldLog(4, "merge") {
		t.Error("4% should not log (same bucket)")
	}
	if !s.ShouldLog(10, "merge") {
		t.Error("10% should log (new bucket)")
	}
	if s.ShouldLog(19.9, "merge") {
		t.Error("19.9% should not log (same bucket)")
	}
	if !s.ShouldLog(40, "merge") {
		t.Error("40% should log (skipped buckets)")
	}
}

func TestProgressSampler_OvershootSharesFinalBucket(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(95, "merge")

	if !s.ShouldLog(100, "merge") {
		t.Error("100% should log")
	}
	if s.ShouldLog(104, "merge") {
		t.Error("104% should not log again (same as 100% bucket)")
	}
}

func TestProgressSampler_PassChangeResetsBucket(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "merge")

	if !s.ShouldLog(0, " cover ") {
		t.Error("pass change should log")
	}
	if s.lastPass != "cover" {
		t.Errorf("lastPass = %q, want cover (trimmed)", s.lastPass)
	}
	if !s.ShouldLog(10, "cover") {
		t.Error("10% should log after pass change reset bucket")
	}
}

func TestProgressSampler_NegativePercent(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(-1, "merge") {
		t.Error("first call should log even with negative percent")
	}
	if s.ShouldLog(-1, "merge") {
		t.Error("negative percent should not trigger bucket logging")
	}
}

func TestProgressSampler_Reset(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "merge")

	s.Reset()

	if s.lastPass != "" || s.lastBucket != -1 {
		t.Errorf("unexpected state after reset: %q %d", s.lastPass, s.lastBucket)
	}
	if !s.ShouldLog(50, "merge") {
		t.Error("should log after reset")
	}
}
