package config

import (
	"sync"
	"sync/atomic"
	"time"
)

const defaultIPRuleRefreshInterval = 5 * time.Minute

var (
	ipRuleRefreshInterval  atomic.Value
	ipRuleRefreshListeners []chan time.Duration
	listenersMu            sync.Mutex
)

func init() {
	ipRuleRefreshInterval.Store(defaultIPRuleRefreshInterval)
}

// SetIntervals recomputes every derived interval from the current config.
func SetIntervals() {
	cfg := GetConfig()
	setIPRuleRefreshInterval(calculateIPRuleRefreshInterval(cfg))
}

func CalculateInterval(timer Timer) time.Duration {
	intervalMs := calculateMilliseconds(timer)

	// Enforce a 1s floor so a zeroed timer cannot busy-loop a routine.
	minInterval := uint64(1000)
	if intervalMs < minInterval {
		intervalMs = minInterval
	}

	return time.Duration(intervalMs) * time.Millisecond
}

func calculateMilliseconds(timer Timer) uint64 {
	return uint64(timer.Days)*24*60*60*1000 +
		uint64(timer.Hours)*60*60*1000 +
		uint64(timer.Minutes)*60*1000 +
		uint64(timer.Seconds)*1000
}

func calculateIPRuleRefreshInterval(cfg Config) time.Duration {
	timer := cfg.Access.RuleRefreshTimer
	if timer.Days == 0 && timer.Hours == 0 && timer.Minutes == 0 && timer.Seconds == 0 {
		return defaultIPRuleRefreshInterval
	}
	return CalculateInterval(timer)
}

func GetIPRuleRefreshInterval() time.Duration {
	return ipRuleRefreshInterval.Load().(time.Duration)
}

// IPRuleRefreshIntervalUpdates registers a listener channel that receives the
// current interval immediately and every later change.
func IPRuleRefreshIntervalUpdates() <-chan time.Duration {
	ch := make(chan time.Duration, 1)
	listenersMu.Lock()
	ipRuleRefreshListeners = append(ipRuleRefreshListeners, ch)
	listenersMu.Unlock()

	ch <- GetIPRuleRefreshInterval()
	return ch
}

func setIPRuleRefreshInterval(interval time.Duration) {
	if interval <= 0 {
		interval = defaultIPRuleRefreshInterval
	}

	if GetIPRuleRefreshInterval() == interval {
		return
	}

	ipRuleRefreshInterval.Store(interval)

	listenersMu.Lock()
	defer listenersMu.Unlock()
	for _, ch := range ipRuleRefreshListeners {
		select {
		case ch <- interval:
		default:
		}
	}
}
