package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost:4444", cfg.ProviderBaseURL)
	assert.Equal(t, "caselink-dev", cfg.ProviderClientID)
	assert.Equal(t, "/lawyer.png", cfg.DefaultAvatar)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CASELINK_API_BASE_URL", "https://api.example.com")
	t.Setenv("CASELINK_IDP_CLIENT_ID", "prod-client")

	cfg := FromEnv()
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "prod-client", cfg.ProviderClientID)
}
