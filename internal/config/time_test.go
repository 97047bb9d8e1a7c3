package config

import (
	"testing"
	"time"
)

func TestCalculateInterval(t *testing.T) {
	t.Run("enforces minimum interval", func(t *testing.T) {
		if got := CalculateInterval(Timer{}); got != time.Second {
			t.Fatalf("CalculateInterval returned %s, want 1s", got)
		}
	})

	t.Run("returns configured duration", func(t *testing.T) {
		if got := CalculateInterval(Timer{Minutes: 1, Seconds: 30}); got != 90*time.Second {
			t.Fatalf("CalculateInterval returned %s, want 1m30s", got)
		}
	})

	t.Run("sums all components", func(t *testing.T) {
		timer := Timer{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
		want := 24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second
		if got := CalculateInterval(timer); got != want {
			t.Fatalf("CalculateInterval returned %s, want %s", got, want)
		}
	})
}

func TestSetIntervals(t *testing.T) {
	origCfg := GetConfig()
	origInterval := GetIPRuleRefreshInterval()
	t.Cleanup(func() {
		configValue.Store(origCfg)
		ipRuleRefreshInterval.Store(origInterval)
	})

	cfg := Config{}
	cfg.Access.RuleRefreshTimer = Timer{Minutes: 10}
	configValue.Store(cfg)

	SetIntervals()

	if got := GetIPRuleRefreshInterval(); got != 10*time.Minute {
		t.Fatalf("refresh interval = %s, want 10m", got)
	}

	// A zeroed timer falls back to the default instead of the 1s floor.
	configValue.Store(Config{})
	SetIntervals()

	if got := GetIPRuleRefreshInterval(); got != defaultIPRuleRefreshInterval {
		t.Fatalf("refresh interval = %s, want default %s", got, defaultIPRuleRefreshInterval)
	}
}

func TestIPRuleRefreshIntervalUpdates(t *testing.T) {
	origListeners := ipRuleRefreshListeners
	t.Cleanup(func() {
		listenersMu.Lock()
		ipRuleRefreshListeners = origListeners
		listenersMu.Unlock()
	})

	ch := IPRuleRefreshIntervalUpdates()

	select {
	case got := <-ch:
		if got != GetIPRuleRefreshInterval() {
			t.Fatalf("initial interval = %s, want %s", got, GetIPRuleRefreshInterval())
		}
	default:
		t.Fatal("listener channel must receive the current interval immediately")
	}
}
