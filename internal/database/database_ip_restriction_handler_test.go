package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"heron/internal/domain"
)

func TestListActiveIPRestrictions_SkipsInactiveRules(t *testing.T) {
	setupTestDB(t)

	rules := []domain.IPRestriction{
		{AddressPattern: "10.0.0.0/8", RuleType: domain.IPRuleAllow, IsActive: true},
		{AddressPattern: "10.1.2.3", RuleType: domain.IPRuleDeny, IsActive: true},
		{AddressPattern: "192.168.0.0/16", RuleType: domain.IPRuleDeny, IsActive: false},
	}
	for i := range rules {
		if err := CreateIPRestriction(context.Background(), &rules[i]); err != nil {
			t.Fatalf("create rule: %v", err)
		}
	}

	active, err := ListActiveIPRestrictions(context.Background())
	if err != nil {
		t.Fatalf("ListActiveIPRestrictions: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active rules, got %d", len(active))
	}
	for _, rule := range active {
		if rule.AddressPattern == "192.168.0.0/16" {
			t.Fatal("inactive rule leaked into active set")
		}
	}
}

func TestCreateIPRestriction_PersistsInactiveFlag(t *testing.T) {
	setupTestDB(t)

	rule := domain.IPRestriction{AddressPattern: "198.51.100.0/24", RuleType: domain.IPRuleDeny, IsActive: false}
	if err := CreateIPRestriction(context.Background(), &rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	var stored domain.IPRestriction
	if err := DB.First(&stored, rule.ID).Error; err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	if stored.IsActive {
		t.Fatal("rule created inactive must not come back active")
	}
}

func TestUpdateIPRestriction_ReturnsFreshRow(t *testing.T) {
	setupTestDB(t)

	rule := domain.IPRestriction{AddressPattern: "10.0.0.1", RuleType: domain.IPRuleAllow, IsActive: true}
	if err := CreateIPRestriction(context.Background(), &rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	updated, err := UpdateIPRestriction(context.Background(), rule.ID, map[string]any{
		"rule_type": domain.IPRuleDeny,
		"is_active": false,
	})
	if err != nil {
		t.Fatalf("UpdateIPRestriction: %v", err)
	}
	if updated.RuleType != domain.IPRuleDeny || updated.IsActive {
		t.Fatalf("update not reflected: %+v", updated)
	}
}

func TestUpdateIPRestriction_MissingRow(t *testing.T) {
	setupTestDB(t)

	_, err := UpdateIPRestriction(context.Background(), 77, map[string]any{"is_active": false})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteIPRestriction(t *testing.T) {
	setupTestDB(t)

	rule := domain.IPRestriction{AddressPattern: "172.16.0.0/12", RuleType: domain.IPRuleDeny, IsActive: true}
	if err := CreateIPRestriction(context.Background(), &rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	if err := DeleteIPRestriction(context.Background(), rule.ID); err != nil {
		t.Fatalf("DeleteIPRestriction: %v", err)
	}
	if err := DeleteIPRestriction(context.Background(), rule.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}
