package config

import "testing"

func TestLoadFromBytesExpandsEnv(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test-123")

	data := []byte(`
port: 8080
host: 127.0.0.1
quota:
  daily_cap: 5
  redeem_codes:
    LAUNCH5: 5
providers:
  default: openai
  openai:
    api_key: "${TEST_OPENAI_KEY}"
    model: gpt-4o-mini
    temperature: 0.6
`)

	c, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Port != 8080 || c.Host != "127.0.0.1" {
		t.Errorf("addr = %s:%d", c.Host, c.Port)
	}
	if c.Providers.OpenAI.APIKey != "sk-test-123" {
		t.Errorf("api key not expanded: %q", c.Providers.OpenAI.APIKey)
	}
	if c.Quota.RedeemCodes["LAUNCH5"] != 5 {
		t.Errorf("redeem codes = %v", c.Quota.RedeemCodes)
	}
	if c.Providers.OpenAI.Temperature != 0.6 {
		t.Errorf("temperature = %v", c.Providers.OpenAI.Temperature)
	}
}

func TestIsProductionMode(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"nonsense", false},
	}

	for _, tt := range tests {
		var c Config
		c.App.ProductionMode = tt.value
		if got := c.IsProductionMode(); got != tt.want {
			t.Errorf("IsProductionMode(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
