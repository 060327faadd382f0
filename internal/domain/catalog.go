package domain

import "time"

const (
	// CategoryAll is the synthetic menu entry that disables category filtering.
	CategoryAll = "All"
	// CategoryUncategorized is the bucket for records whose category is unknown.
	CategoryUncategorized = "Uncategorized"
	// DefaultAccentColor is used when neither record nor category has a color.
	DefaultAccentColor = "#ff8c00"

	DefaultSuggestionName = "Untitled"
	DefaultSuggestionTag  = "Suggestion"
)

// Category is a named, colored grouping. Prompts reference it by Name.
type Category struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Icon  string `json:"icon"  yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

// Prompt is a published catalog record.
type Prompt struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Path        string `json:"path"`
	Tag         string `json:"tag"`
	Content     string `json:"content,omitempty"`
	Color       string `json:"color,omitempty"`
	IsHidden    bool   `json:"isHidden"`
}

// Fields returns the promotable subset of the prompt.
func (p Prompt) Fields() PromptFields {
	return PromptFields{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Content:     p.Content,
		Tag:         p.Tag,
		Color:       p.Color,
	}
}

// PromptPatch is a partial prompt update. Nil fields are left unchanged.
type PromptPatch struct {
	IsHidden *bool
	Category *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PromptPatch) IsEmpty() bool {
	return p.IsHidden == nil && p.Category == nil
}

// Apply returns a copy of prompt with the patch applied.
func (p PromptPatch) Apply(prompt Prompt) Prompt {
	if p.IsHidden != nil {
		prompt.IsHidden = *p.IsHidden
	}
	if p.Category != nil {
		prompt.Category = *p.Category
	}
	return prompt
}

// PromptFields is the set of fields a Suggestion shares with a Prompt.
type PromptFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	Tag         string `json:"tag"`
	Color       string `json:"color"`
}

// FieldEdits overrides PromptFields. Nil fields keep their current value.
type FieldEdits struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Content     *string `json:"content,omitempty"`
	Tag         *string `json:"tag,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// Apply seeds edits with f so that unedited fields pass through.
func (f PromptFields) Apply(e FieldEdits) PromptFields {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Name, e.Name)
	set(&f.Description, e.Description)
	set(&f.Category, e.Category)
	set(&f.Content, e.Content)
	set(&f.Tag, e.Tag)
	set(&f.Color, e.Color)
	return f
}

// WithSubmissionDefaults fills missing fields with the values used for
// anonymous suggestions. Only empty strings count as missing; a
// whitespace-only name is kept as given.
func (f PromptFields) WithSubmissionDefaults() PromptFields {
	if f.Name == "" {
		f.Name = DefaultSuggestionName
	}
	if f.Category == "" {
		f.Category = CategoryUncategorized
	}
	if f.Tag == "" {
		f.Tag = DefaultSuggestionTag
	}
	return f
}

// Suggestion is an unprivileged proposal for a new Prompt.
// It never carries IsHidden or Path; those are assigned on promotion.
type Suggestion struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Content     string           `json:"content"`
	Tag         string           `json:"tag"`
	Color       string           `json:"color"`
	Status      SuggestionStatus `json:"status"`
	SuggestedAt time.Time        `json:"suggestedAt"`
}

// Fields returns the promotable subset of the suggestion.
func (s Suggestion) Fields() PromptFields {
	return PromptFields{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Content:     s.Content,
		Tag:         s.Tag,
		Color:       s.Color,
	}
}

// Caller carries the capabilities of whoever invokes an operation.
type Caller struct {
	IsAdmin bool
}

var (
	Anonymous = Caller{}
	Admin     = Caller{IsAdmin: true}
)

// Backup is the export/import document. Suggestions are not included.
type Backup struct {
	Timestamp  string     `json:"timestamp"`
	Categories []Category `json:"categories"`
	Prompts    []Prompt   `json:"prompts"`
}
