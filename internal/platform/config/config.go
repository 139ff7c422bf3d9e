package config

import "os"

// Client captures the configuration the case-management client needs to reach
// its collaborators: the backend API and the identity provider.
type Client struct {
	APIBaseURL       string
	ProviderBaseURL  string
	ProviderClientID string
	DefaultAvatar    string
}

// FromEnv builds a Client config from environment variables so composition
// stays lean. Defaults target a local development stack.
func FromEnv() Client {
	apiBase := os.Getenv("CASELINK_API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8000"
	}

	providerBase := os.Getenv("CASELINK_IDP_BASE_URL")
	if providerBase == "" {
		providerBase = "http://localhost:4444"
	}

	clientID := os.Getenv("CASELINK_IDP_CLIENT_ID")
	if clientID == "" {
		clientID = "caselink-dev"
	}

	avatar := os.Getenv("CASELINK_DEFAULT_AVATAR")
	if avatar == "" {
		avatar = "/lawyer.png"
	}

	return Client{
		APIBaseURL:       apiBase,
		ProviderBaseURL:  providerBase,
		ProviderClientID: clientID,
		DefaultAvatar:    avatar,
	}
}
