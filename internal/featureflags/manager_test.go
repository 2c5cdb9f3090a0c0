package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("reading_stats=on,legacy_feed=off,drafts=true,beta_search=false")

	if !m.Enabled("reading_stats", 1) || !m.Enabled("drafts", 1) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("legacy_feed", 1) || m.Enabled("beta_search", 1) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
	if m.Enabled("no_such_flag", 1) {
		t.Fatal("unknown flags must be off")
	}
}

func TestEnabled_PercentageRollout(t *testing.T) {
	m := NewManager("everyone=100%,nobody=0%,canary=25%")

	if !m.Enabled("everyone", 7) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("nobody", 7) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", 0) {
		t.Fatal("percentage rollout requires a non-zero userID")
	}
}

func TestNewManager_SkipsMalformedPairs(t *testing.T) {
	m := NewManager(" dangling ,x=on, y = 20% ,z=off,w=150%,v=sideways ")

	if got := len(m.Names()); got != 3 {
		t.Fatalf("expected 3 parsed flags, got %d (%v)", got, m.Names())
	}

	snap := m.Snapshot(123)
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
	if !snap["x"] || snap["z"] {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}
