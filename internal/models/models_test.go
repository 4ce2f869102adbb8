package models_test

import (
	"encoding/json"
	"testing"

	"bigwin-backend/internal/models"
)

func TestNewAccountDefaults(t *testing.T) {
	account := models.NewAccount("")

	if account.Name != models.DefaultName {
		t.Errorf("Expected placeholder name, got %s", account.Name)
	}
	if account.Stars != 0 {
		t.Errorf("Expected zero stars, got %d", account.Stars)
	}
	if account.Language != "es" {
		t.Errorf("Expected default language es, got %s", account.Language)
	}
	if len(account.Games) != len(models.GameNames) {
		t.Errorf("Expected %d zeroed game counters, got %d", len(models.GameNames), len(account.Games))
	}
	for g, n := range account.Games {
		if n != 0 {
			t.Errorf("Counter for %s should start at 0, got %d", g, n)
		}
	}
	if account.Joined == "" {
		t.Error("Account should record its creation timestamp")
	}
	if _, err := models.ParseISO(account.Joined); err != nil {
		t.Errorf("Joined timestamp should parse: %v", err)
	}
}

func TestIsValidGame(t *testing.T) {
	for _, g := range models.GameNames {
		if !models.IsValidGame(g) {
			t.Errorf("%s should be a valid game", g)
		}
	}
	for _, g := range []string{"bonus", "roulette", ""} {
		if models.IsValidGame(g) {
			t.Errorf("%s should not be a valid game", g)
		}
	}
}

func TestWagerEntryWireShape(t *testing.T) {
	entry := models.WagerEntry{TS: models.NowISO(), Game: models.GameDice, Bet: 5, Win: 10}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Failed to marshal entry: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal entry: %v", err)
	}

	// "win" must stay a number on the wire, even when the prize is 0.
	if string(raw["win"]) != "10" {
		t.Errorf(`Expected numeric win field, got %s`, raw["win"])
	}

	lost, _ := json.Marshal(models.WagerEntry{TS: models.NowISO(), Game: models.GameSlots, Bet: 5, Win: 0})
	if err := json.Unmarshal(lost, &raw); err != nil {
		t.Fatalf("Failed to unmarshal losing entry: %v", err)
	}
	if string(raw["win"]) != "0" {
		t.Errorf("Losing entry must still carry win:0, got %s", raw["win"])
	}
}

func TestParseISOAcceptsPlainRFC3339(t *testing.T) {
	if _, err := models.ParseISO("2025-01-02T03:04:05Z"); err != nil {
		t.Errorf("Plain RFC3339 should parse: %v", err)
	}
	if _, err := models.ParseISO("garbage"); err == nil {
		t.Error("Garbage should not parse")
	}
}
