package util

import (
	"testing"
	"time"
)

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("TEST_BOOL", "")
	if !ParseBoolEnv("TEST_BOOL", true) {
		t.Error("empty value should return default")
	}
	for _, v := range []string{"true", "1", "YES", " on "} {
		t.Setenv("TEST_BOOL", v)
		if !ParseBoolEnv("TEST_BOOL", false) {
			t.Errorf("%q should parse true", v)
		}
	}
	for _, v := range []string{"false", "0", "No", "off"} {
		t.Setenv("TEST_BOOL", v)
		if ParseBoolEnv("TEST_BOOL", true) {
			t.Errorf("%q should parse false", v)
		}
	}
	t.Setenv("TEST_BOOL", "maybe")
	if ParseBoolEnv("TEST_BOOL", false) {
		t.Error("invalid value should return default")
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := ParseIntEnv("TEST_INT", 1); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	t.Setenv("TEST_INT", "nope")
	if got := ParseIntEnv("TEST_INT", 7); got != 7 {
		t.Errorf("invalid value: got %d, want default 7", got)
	}
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_DUR", "45s")
	if got := ParseDurationEnv("TEST_DUR", time.Minute); got != 45*time.Second {
		t.Errorf("got %v, want 45s", got)
	}
	t.Setenv("TEST_DUR", "bogus")
	if got := ParseDurationEnv("TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("invalid value: got %v, want default 1m", got)
	}
}
