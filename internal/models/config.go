package models

// ListConfig describes which catalog sources are active. A repo present in
// DisabledLists is turned off; absence means enabled. Each repo appears at
// most once per set.
type ListConfig struct {
	DisabledLists []string `json:"disabledLists"`
	FavoritesList []string `json:"favoritesList"`
}

// CustomList is a user-added source that is not part of the remote catalog
// index. Repo is the unique key.
type CustomList struct {
	Repo        string `json:"repo"`
	Name        string `json:"name"`
	User        string `json:"user"`
	Description string `json:"description,omitempty"`
}

// Preferences is the flat user-preference record.
type Preferences struct {
	Theme             string   `json:"theme"`
	DefaultView       string   `json:"defaultView"`
	AIRecommendations bool     `json:"aiRecommendations"`
	Autosave          bool     `json:"autosave"`
	SearchHistory     []string `json:"searchHistory"`
	DarkMode          bool     `json:"darkMode"`
	CompactView       bool     `json:"compactView"`
}

// DefaultPreferences returns the preference record used before the user has
// saved anything.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:             "system",
		DefaultView:       "grid",
		AIRecommendations: true,
		Autosave:          true,
		SearchHistory:     []string{},
	}
}

// AISettings configures the recommendation provider. APIKey must never be
// written into any export artifact.
type AISettings struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey"`
	Model     string `json:"model"`
	Enabled   bool   `json:"enabled"`
	MaxTokens int    `json:"maxTokens"`
}

// DefaultAISettings returns AI settings with the local fallback provider.
func DefaultAISettings() AISettings {
	return AISettings{
		Provider:  "local",
		MaxTokens: 1024,
	}
}

// Scrubbed returns a copy safe for export: the API key is blanked.
func (s AISettings) Scrubbed() AISettings {
	s.APIKey = ""
	return s
}
