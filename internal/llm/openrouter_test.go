package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		model   string
		wantErr bool
	}{
		{"default base URL", OpenRouterConfig{APIKey: "sk-or", Model: "google/gemini-2.5-flash"}, "google/gemini-2.5-flash", false},
		{"friendly names are not mapped", OpenRouterConfig{APIKey: "sk-or", Model: "gpt-mini"}, "gpt-mini", false},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or", Model: "meta-llama/llama-3-8b", BaseURL: "https://proxy.test/v1"}, "meta-llama/llama-3-8b", false},
		{"empty API key", OpenRouterConfig{Model: "x"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.model, p.ModelID())
		})
	}
}
