package lifecycle

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestEngine returns an engine with sequential ids ("t1", "t2", ...) and a
// fixed clock.
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	n := 0
	base := []Option{
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("t%d", n)
		}),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...)
}

func testState() State {
	return State{
		Categories: []domain.Category{
			{ID: "c1", Name: "Old", Icon: "fas fa-book", Color: "#111111"},
			{ID: "c2", Name: "Security", Icon: "fas fa-shield-alt", Color: "#2196f3"},
		},
		Prompts: []domain.Prompt{
			{ID: "p1", Name: "One", Category: "Old", Path: "prompts/Old/One.md", Tag: "Prompt"},
			{ID: "p2", Name: "Two", Category: "Security", Path: "prompts/Security/Two.md", Tag: "Security"},
			{ID: "p3", Name: "Three", Category: "Old", Path: "prompts/Old/Three.md", Tag: "Prompt", IsHidden: true},
			{ID: "p4", Name: "Four", Category: "Other", Path: "prompts/Other/Four.md", Tag: "Prompt"},
		},
		Suggestions: []domain.Suggestion{
			{
				ID: "s1", Name: "Proposal", Description: "desc", Category: "Security",
				Content: "body", Tag: "Suggestion", Color: "#abcdef",
				Status: domain.SuggestionPending, SuggestedAt: fixedNow.Add(-time.Hour),
			},
			{ID: "s2", Name: "Other", Category: "Old", Status: domain.SuggestionPending},
		},
	}
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	for _, fe := range ve.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("no error for field %q in %v", field, ve.Errors)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	e := New()
	if e.newID() == "" {
		t.Error("default id generator returned empty id")
	}
	if e.now().IsZero() {
		t.Error("default clock returned zero time")
	}
	if e.persistCascades {
		t.Error("cascade persistence should be off by default")
	}
}

func TestState_CloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	st := testState()
	cp := st.Clone()
	cp.Prompts[0].Name = "changed"
	cp.Categories[0].Name = "changed"
	cp.Suggestions[0].Name = "changed"

	if st.Prompts[0].Name != "One" || st.Categories[0].Name != "Old" || st.Suggestions[0].Name != "Proposal" {
		t.Error("clone shares backing arrays with the original")
	}
}

func TestVisible_AdminSeesHidden(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	st := testState()

	anon := e.Visible(st, domain.Anonymous, domain.PromptFilter{Category: domain.CategoryAll})
	for _, p := range anon {
		if p.IsHidden {
			t.Errorf("anonymous caller sees hidden prompt %s", p.ID)
		}
	}
	if len(anon) != 3 {
		t.Errorf("anonymous visible: got %d, want 3", len(anon))
	}

	admin := e.Visible(st, domain.Admin, domain.PromptFilter{})
	if len(admin) != 4 {
		t.Errorf("admin visible: got %d, want 4", len(admin))
	}
}

func TestNewPromptIdentity_RetriesOnCollision(t *testing.T) {
	t.Parallel()

	tokens := []string{"dup", "dup", "fresh"}
	e := New(WithIDGenerator(func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}))
	st := State{Prompts: []domain.Prompt{{ID: "approved-dup"}}}

	id, path, err := e.newPromptIdentity(st, prefixApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "approved-fresh" {
		t.Errorf("id: got %q, want %q", id, "approved-fresh")
	}
	if path != "approved/fresh.md" {
		t.Errorf("path: got %q, want %q", path, "approved/fresh.md")
	}
}

func TestNewPromptIdentity_GivesUp(t *testing.T) {
	t.Parallel()

	e := New(WithIDGenerator(func() string { return "dup" }))
	st := State{Prompts: []domain.Prompt{{ID: "custom-dup"}}}

	_, _, err := e.newPromptIdentity(st, prefixCustom)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
