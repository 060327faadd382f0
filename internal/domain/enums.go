package domain

// SuggestionStatus is the review state of a Suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) String() string { return string(s) }

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case SuggestionPending, SuggestionApproved, SuggestionRejected:
		return true
	}
	return false
}

// Collection names one of the three catalog store collections.
type Collection string

const (
	CollectionCategories  Collection = "categories"
	CollectionPrompts     Collection = "prompts"
	CollectionSuggestions Collection = "suggestions"
)

func (c Collection) String() string { return string(c) }

func (c Collection) IsValid() bool {
	switch c {
	case CollectionCategories, CollectionPrompts, CollectionSuggestions:
		return true
	}
	return false
}

// WriteOp is the kind of a store write.
type WriteOp string

const (
	WriteInsert WriteOp = "insert"
	WriteUpsert WriteOp = "upsert"
	WriteUpdate WriteOp = "update"
	WriteDelete WriteOp = "delete"
)

func (o WriteOp) String() string { return string(o) }

func (o WriteOp) IsValid() bool {
	switch o {
	case WriteInsert, WriteUpsert, WriteUpdate, WriteDelete:
		return true
	}
	return false
}
