package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/nameguard/internal/infrastructure/config"
)

func TestNewSuggester(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SuggesterConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.SuggesterConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.SuggesterConfig{
				APIKey: "test-key",
				Model:  "gpt-4",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.SuggesterConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggester, err := NewSuggester(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, suggester)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, suggester)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `["Garden Terrace"]`,
			expected: `["Garden Terrace"]`,
		},
		{
			name:     "JSON with json code block",
			input:    "```json\n[\"Garden Terrace\"]\n```",
			expected: `["Garden Terrace"]`,
		},
		{
			name:     "JSON with plain code block",
			input:    "```\n[\"Garden Terrace\"]\n```",
			expected: `["Garden Terrace"]`,
		},
		{
			name:     "JSON with whitespace",
			input:    "  \n[\"Garden Terrace\"]\n  ",
			expected: `["Garden Terrace"]`,
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanJSONResponse(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage("Ghetto Gardens", []string{
		`"ghetto" matches profane term "ghetto"`,
	})

	assert.Contains(t, msg, `"Ghetto Gardens"`)
	assert.Contains(t, msg, "Rejection reasons:")
	assert.Contains(t, msg, "profane term")
}
