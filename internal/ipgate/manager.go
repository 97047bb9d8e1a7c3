package ipgate

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"heron/internal/config"
	"heron/internal/database"
	"heron/internal/domain"
	"heron/internal/support"
)

const (
	refreshLockKey         = "heron:leader:ip_rule_refresh"
	defaultRefreshInterval = 5 * time.Minute
)

var (
	ruleCache   atomicRuleList
	refreshOnce singleflight.Group
)

type atomicRuleList struct {
	val atomic.Value
}

func (a *atomicRuleList) Load() []domain.IPRestriction {
	raw, ok := a.val.Load().([]domain.IPRestriction)
	if !ok || raw == nil {
		empty := make([]domain.IPRestriction, 0)
		a.val.Store(empty)
		return empty
	}
	return raw
}

func (a *atomicRuleList) Store(rules []domain.IPRestriction) {
	a.val.Store(rules)
}

func init() {
	ruleCache.Store(make([]domain.IPRestriction, 0))
}

// LoadCache replaces the in-memory rule snapshot with the active rules from
// the database. Call it at startup and after every rule mutation.
func LoadCache(ctx context.Context) error {
	rules, err := database.ListActiveIPRestrictions(ctx)
	if err != nil {
		return err
	}
	ruleCache.Store(rules)
	return nil
}

// ActiveRules returns the current rule snapshot.
func ActiveRules() []domain.IPRestriction {
	return ruleCache.Load()
}

// Check evaluates a client address against the cached rule snapshot.
func Check(clientAddr string) Decision {
	return Evaluate(clientAddr, ActiveRules())
}

// Refresh reloads the rule cache, deduplicating concurrent callers.
func Refresh(ctx context.Context) error {
	_, err, _ := refreshOnce.Do("refresh", func() (interface{}, error) {
		return nil, LoadCache(ctx)
	})
	return err
}

// StartRefreshRoutine re-reads the rule set periodically so instances pick up
// changes made elsewhere. Only the redis leader runs the loop.
func StartRefreshRoutine(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	err := support.RunWithLeader(ctx, refreshLockKey, support.DefaultLeadershipTTL, func(leaderCtx context.Context) {
		runRefreshLoop(leaderCtx)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("IP rule refresh routine stopped", "error", err)
	}
}

func runRefreshLoop(ctx context.Context) {
	interval := config.GetIPRuleRefreshInterval()
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updates := config.IPRuleRefreshIntervalUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := Refresh(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.Error("IP rule refresh failed", "error", err)
			}
		case newInterval := <-updates:
			if newInterval <= 0 {
				newInterval = defaultRefreshInterval
			}
			if newInterval == interval {
				continue
			}
			interval = newInterval
			ticker.Reset(interval)
		}
	}
}
