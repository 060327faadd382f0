package domain

import "strings"

// PromptFilter holds the catalog browse parameters.
type PromptFilter struct {
	Category string // "" or CategoryAll disables category filtering
	Query    string
}

// Matches reports whether p is visible to caller under the filter.
func (f PromptFilter) Matches(p Prompt, caller Caller) bool {
	if p.IsHidden && !caller.IsAdmin {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// FilterPrompts returns the prompts visible to caller, preserving order.
// Returns an empty slice (not nil) when nothing matches.
func FilterPrompts(prompts []Prompt, f PromptFilter, caller Caller) []Prompt {
	out := make([]Prompt, 0, len(prompts))
	for _, p := range prompts {
		if f.Matches(p, caller) {
			out = append(out, p)
		}
	}
	return out
}

// ColorFor returns the color of the named category, or DefaultAccentColor.
func ColorFor(categories []Category, name string) string {
	for _, c := range categories {
		if c.Name == name && c.Color != "" {
			return c.Color
		}
	}
	return DefaultAccentColor
}

// AccentColor is the record's own color, falling back to its category color.
func AccentColor(categories []Category, p Prompt) string {
	if p.Color != "" {
		return p.Color
	}
	return ColorFor(categories, p.Category)
}

// DisplayCategory returns the category a prompt is grouped under: its own,
// or CategoryUncategorized when no category with that name exists.
func DisplayCategory(categories []Category, p Prompt) string {
	for _, c := range categories {
		if c.Name == p.Category {
			return p.Category
		}
	}
	return CategoryUncategorized
}

// MenuCategories prepends the synthetic "All" entry to categories.
func MenuCategories(categories []Category) []Category {
	out := make([]Category, 0, len(categories)+1)
	out = append(out, Category{ID: "all", Name: CategoryAll, Icon: "fas fa-layer-group", Color: DefaultAccentColor})
	return append(out, categories...)
}
