package models

import (
	"strings"
	"testing"
)

func TestCollectionValidate(t *testing.T) {
	base := Collection{Name: "Frontend"}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid collection rejected: %v", err)
	}

	empty := Collection{Name: ""}
	if err := empty.Validate(); err == nil {
		t.Error("empty name accepted")
	}

	atLimit := Collection{Name: strings.Repeat("x", MaxNameLength)}
	if err := atLimit.Validate(); err != nil {
		t.Errorf("name at limit rejected: %v", err)
	}

	over := Collection{Name: strings.Repeat("x", MaxNameLength+1)}
	if err := over.Validate(); err == nil {
		t.Error("name over limit accepted")
	}

	longDesc := Collection{Name: "ok", Description: strings.Repeat("d", MaxDescriptionLength+1)}
	if err := longDesc.Validate(); err == nil {
		t.Error("description over limit accepted")
	}
}

func TestCollectionValidateCountsRunes(t *testing.T) {
	// 100 multibyte runes are within the limit even though the byte count
	// is far larger.
	c := Collection{Name: strings.Repeat("ü", MaxNameLength)}
	if err := c.Validate(); err != nil {
		t.Errorf("multibyte name at limit rejected: %v", err)
	}
}

func TestHasList(t *testing.T) {
	c := Collection{Lists: []ListRef{{Repo: "a/b"}, {Repo: "c/d"}}}
	if !c.HasList("a/b") {
		t.Error("expected a/b to be present")
	}
	if c.HasList("x/y") {
		t.Error("did not expect x/y")
	}
}

func TestAISettingsScrubbed(t *testing.T) {
	s := AISettings{Provider: "openai", APIKey: "sk-secret", Model: "gpt-4o-mini", Enabled: true}
	out := s.Scrubbed()
	if out.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", out.APIKey)
	}
	if out.Provider != "openai" || !out.Enabled {
		t.Error("scrub altered unrelated fields")
	}
	if s.APIKey != "sk-secret" {
		t.Error("scrub mutated the receiver")
	}
}
