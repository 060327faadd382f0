package domain

import "testing"

func TestPromptFilter_Matches(t *testing.T) {
	t.Parallel()

	visible := Prompt{ID: "1", Name: "Alpha", Description: "x", Category: "Grimoire"}
	hidden := Prompt{ID: "2", Name: "Pliny", Description: "secret", Category: "Latest Jailbreaks", IsHidden: true}

	tests := []struct {
		name   string
		filter PromptFilter
		prompt Prompt
		caller Caller
		want   bool
	}{
		{"all for anonymous", PromptFilter{Category: CategoryAll}, visible, Anonymous, true},
		{"empty category means all", PromptFilter{}, visible, Anonymous, true},
		{"hidden excluded for anonymous", PromptFilter{}, hidden, Anonymous, false},
		{"hidden included for admin", PromptFilter{}, hidden, Admin, true},
		{"category match", PromptFilter{Category: "Grimoire"}, visible, Anonymous, true},
		{"category mismatch", PromptFilter{Category: "Ultra Prompts"}, visible, Anonymous, false},
		{"query in name, case-insensitive", PromptFilter{Query: "ALP"}, visible, Anonymous, true},
		{"query in description", PromptFilter{Query: "secr"}, hidden, Admin, true},
		{"query miss", PromptFilter{Query: "zzz"}, visible, Anonymous, false},
		{"hidden and query match still excluded", PromptFilter{Query: "pliny"}, hidden, Anonymous, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(tt.prompt, tt.caller); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPrompts_SearchMatchesNameOrDescription(t *testing.T) {
	t.Parallel()

	prompts := []Prompt{
		{ID: "a", Name: "Alpha", Description: "x"},
		{ID: "b", Name: "Beta", Description: "alpha test"},
		{ID: "c", Name: "Gamma", Description: "none"},
	}

	got := FilterPrompts(prompts, PromptFilter{Query: "alpha"}, Anonymous)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unexpected order/ids: %+v", got)
	}
}

func TestFilterPrompts_NeverLeaksHiddenToAnonymous(t *testing.T) {
	t.Parallel()

	prompts := []Prompt{
		{ID: "a", Name: "A", IsHidden: true},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C", IsHidden: true},
	}

	for _, p := range FilterPrompts(prompts, PromptFilter{}, Anonymous) {
		if p.IsHidden {
			t.Errorf("hidden prompt %q visible to anonymous caller", p.ID)
		}
	}
	if got := FilterPrompts(prompts, PromptFilter{}, Admin); len(got) != 3 {
		t.Errorf("admin should see all 3 prompts, got %d", len(got))
	}
}

func TestFilterPrompts_EmptyResultIsNotNil(t *testing.T) {
	t.Parallel()

	got := FilterPrompts(nil, PromptFilter{Query: "x"}, Anonymous)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestAccentColor(t *testing.T) {
	t.Parallel()

	cats := []Category{{ID: "c1", Name: "Grimoire", Color: "#6a1b9a"}}

	if got := AccentColor(cats, Prompt{Category: "Grimoire", Color: "#123456"}); got != "#123456" {
		t.Errorf("own color: got %q", got)
	}
	if got := AccentColor(cats, Prompt{Category: "Grimoire"}); got != "#6a1b9a" {
		t.Errorf("category color: got %q", got)
	}
	if got := AccentColor(cats, Prompt{Category: "Missing"}); got != DefaultAccentColor {
		t.Errorf("fallback color: got %q", got)
	}
}

func TestDisplayCategory(t *testing.T) {
	t.Parallel()

	cats := []Category{{ID: "c1", Name: "Grimoire"}}

	if got := DisplayCategory(cats, Prompt{Category: "Grimoire"}); got != "Grimoire" {
		t.Errorf("got %q, want Grimoire", got)
	}
	if got := DisplayCategory(cats, Prompt{Category: "Gone"}); got != CategoryUncategorized {
		t.Errorf("got %q, want %q", got, CategoryUncategorized)
	}
}

func TestMenuCategories_PrependsAll(t *testing.T) {
	t.Parallel()

	menu := MenuCategories([]Category{{ID: "c1", Name: "Grimoire"}})
	if len(menu) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(menu))
	}
	if menu[0].Name != CategoryAll {
		t.Errorf("first entry: got %q, want %q", menu[0].Name, CategoryAll)
	}
}
