package config

import (
	"testing"
	"time"
)

func TestMayHelpers(t *testing.T) {
	t.Setenv("CORE_INGEST_SEARCH_FLOOR", "83")
	t.Setenv("CORE_INGEST_TIMEOUT", "750ms")
	t.Setenv("CORE_INGEST_ENABLED", "true")

	c := New().Prefix("CORE_INGEST_")
	if got := c.MayInt("SEARCH_FLOOR", 0); got != 83 {
		t.Fatalf("MayInt = %d, want 83", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v, want 750ms", got)
	}
	if !c.MayBool("ENABLED", false) {
		t.Fatal("MayBool = false, want true")
	}
	if got := c.MayString("MODEL", "gpt-4o-mini"); got != "gpt-4o-mini" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayInvalidFallsBack(t *testing.T) {
	t.Setenv("CORE_INGEST_SEARCH_FLOOR", "eighty")
	c := New().Prefix("CORE_INGEST_")
	if got := c.MayInt("SEARCH_FLOOR", 83); got != 83 {
		t.Fatalf("MayInt invalid = %d, want default 83", got)
	}
}
