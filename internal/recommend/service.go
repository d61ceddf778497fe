package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ondrel/curio/internal/models"
)

// Suggestion is one recommended source.
type Suggestion struct {
	Repo   string `json:"repo"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CandidateSource supplies the pool of sources suggestions are drawn from.
type CandidateSource interface {
	ListSources(limit, offset int, topic string) ([]models.Source, int, error)
}

// Service produces suggestions from the configured provider and falls back
// to local scoring so the user-visible operation never fails outright.
type Service struct {
	candidates CandidateSource
	logger     *slog.Logger

	// newProvider builds a provider from settings; swappable in tests.
	newProvider func(cfg models.AISettings) Provider
}

// NewService creates a recommendation service drawing candidates from src.
func NewService(src CandidateSource, logger *slog.Logger) *Service {
	return &Service{
		candidates:  src,
		logger:      logger,
		newProvider: providerFor,
	}
}

// providerFor maps settings to a provider; nil means local-only.
func providerFor(cfg models.AISettings) Provider {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.Model)
	case "anthropic":
		return NewAnthropic(cfg.APIKey, cfg.Model)
	default:
		return nil
	}
}

const maxCandidates = 200

// Recommend suggests up to limit sources the user has not collected yet.
func (s *Service) Recommend(ctx context.Context, collected []models.Collection, cfg models.AISettings, limit int) ([]Suggestion, error) {
	pool, _, err := s.candidates.ListSources(maxCandidates, 0, "")
	if err != nil {
		return nil, fmt.Errorf("recommend: load candidates: %w", err)
	}

	if provider := s.newProvider(cfg); provider != nil {
		suggestions, err := s.askProvider(ctx, provider, pool, collected, cfg, limit)
		if err == nil && len(suggestions) > 0 {
			return suggestions, nil
		}
		if err != nil {
			s.logger.Warn("recommend: provider failed, using local fallback",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
		}
	}

	return localSuggest(pool, collected, limit), nil
}

func (s *Service) askProvider(ctx context.Context, provider Provider, pool []models.Source, collected []models.Collection, cfg models.AISettings, limit int) ([]Suggestion, error) {
	reply, err := provider.Complete(ctx, buildMessages(pool, collected, limit), cfg.MaxTokens)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(reply, limit), nil
}

// buildMessages assembles the chat prompt: the user's collected lists plus
// the candidate pool, with a strict line-oriented answer format.
func buildMessages(pool []models.Source, collected []models.Collection, limit int) []Message {
	var interests strings.Builder
	for _, c := range collected {
		for _, l := range c.Lists {
			fmt.Fprintf(&interests, "- %s (%s)\n", l.Repo, l.Cate)
		}
	}

	var candidates strings.Builder
	for _, src := range pool {
		fmt.Fprintf(&candidates, "- %s: %s\n", src.Repo, src.Description)
	}

	system := "You recommend curated awesome lists. Answer with one suggestion per line " +
		"in the exact form `owner/repo: short reason`. Suggest only repositories from the candidate pool."
	user := fmt.Sprintf("Lists I already follow:\n%s\nCandidate pool:\n%s\nSuggest up to %d new lists for me.",
		interests.String(), candidates.String(), limit)

	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

var suggestionLineRe = regexp.MustCompile(`([A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+)\s*:?\s*(.*)`)

// parseSuggestions extracts `owner/repo: reason` lines from a completion,
// tolerating list markers and surrounding prose.
func parseSuggestions(reply string, limit int) []Suggestion {
	if limit <= 0 {
		limit = 5
	}
	seen := make(map[string]struct{})
	var out []Suggestion
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		m := suggestionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		repo := m[1]
		if _, dup := seen[repo]; dup {
			continue
		}
		seen[repo] = struct{}{}
		out = append(out, Suggestion{
			Repo:   repo,
			Name:   repo[strings.Index(repo, "/")+1:],
			Reason: strings.TrimSpace(m[2]),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}
