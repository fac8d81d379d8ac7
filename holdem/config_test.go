package holdem

import "testing"

func TestConfig_ValidateRejectsInvertedBlinds(t *testing.T) {
	cfg := DefaultConfig(6, 20, 10)
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected validation error for sb > bb")
	}
}

func TestConfig_ValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig(6, 5, 10)
	if err := cfg.validate(); err != nil {
		t.Fatalf("expected valid default config, got %v", err)
	}
}

func TestConfigFactory_NewHandEngineRejectsInvalidConfig(t *testing.T) {
	factory := NewConfigFactory(DefaultConfig(6, 20, 10))
	if _, err := factory.NewHandEngine(EngineDeps{}); err == nil {
		t.Fatalf("expected GameError for invalid config")
	}
}
