package recommend

import (
	"sort"
	"strings"

	"github.com/ondrel/curio/internal/models"
)

// localSuggest scores catalog candidates by keyword overlap with the lists
// the user already collected. No network involved; this is the fallback
// when no AI provider is configured or the configured one fails.
func localSuggest(candidates []models.Source, collected []models.Collection, limit int) []Suggestion {
	have := make(map[string]struct{})
	tokens := make(map[string]int)
	for _, c := range collected {
		for _, l := range c.Lists {
			have[l.Repo] = struct{}{}
			for _, t := range tokenize(l.Name + " " + l.Cate) {
				tokens[t]++
			}
		}
	}

	type scored struct {
		src   models.Source
		score int
		match string
	}
	var ranked []scored
	for _, s := range candidates {
		if _, ok := have[s.Repo]; ok {
			continue
		}
		score, match := 0, ""
		for _, t := range tokenize(s.Name + " " + s.Topic + " " + s.Description) {
			if n := tokens[t]; n > 0 {
				score += n
				if match == "" {
					match = t
				}
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{src: s, score: score, match: match})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if limit <= 0 {
		limit = 5
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]Suggestion, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Suggestion{
			Repo:   r.src.Repo,
			Name:   r.src.Name,
			Reason: "related to your interest in " + r.match,
		})
	}
	return out
}

var tokenSplit = strings.NewReplacer("-", " ", "_", " ", "/", " ", ".", " ")

// tokenize lower-cases and splits a label into comparable keywords,
// dropping short stop words.
func tokenize(s string) []string {
	fields := strings.Fields(tokenSplit.Replace(strings.ToLower(s)))
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 && f != "awesome" && f != "list" && f != "the" && f != "and" && f != "for" {
			out = append(out, f)
		}
	}
	return out
}
