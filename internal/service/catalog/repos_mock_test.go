package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

var (
	_ categoryRepo   = &categoryRepoMock{}
	_ promptRepo     = &promptRepoMock{}
	_ suggestionRepo = &suggestionRepoMock{}
	_ txManager      = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// categoryRepoMock
// ---------------------------------------------------------------------------

type categoryRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Category, error)
	InsertFunc func(ctx context.Context, c domain.Category) error
	UpsertFunc func(ctx context.Context, cs ...domain.Category) error
	DeleteFunc func(ctx context.Context, id string) error

	calls struct {
		List   []struct{}
		Insert []struct{ C domain.Category }
		Upsert []struct{ Cs []domain.Category }
		Delete []struct{ ID string }
	}
	lock sync.RWMutex
}

func (mock *categoryRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	if mock.ListFunc == nil {
		panic("categoryRepoMock.ListFunc: method is nil but categoryRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lock.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *categoryRepoMock) Insert(ctx context.Context, c domain.Category) error {
	if mock.InsertFunc == nil {
		panic("categoryRepoMock.InsertFunc: method is nil but categoryRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ C domain.Category }{C: c})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, c)
}

func (mock *categoryRepoMock) Upsert(ctx context.Context, cs ...domain.Category) error {
	if mock.UpsertFunc == nil {
		panic("categoryRepoMock.UpsertFunc: method is nil but categoryRepo.Upsert was just called")
	}
	mock.lock.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ Cs []domain.Category }{Cs: cs})
	mock.lock.Unlock()
	return mock.UpsertFunc(ctx, cs...)
}

func (mock *categoryRepoMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("categoryRepoMock.DeleteFunc: method is nil but categoryRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID string }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *categoryRepoMock) UpsertCalls() []struct{ Cs []domain.Category } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Upsert
}

func (mock *categoryRepoMock) DeleteCalls() []struct{ ID string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

// ---------------------------------------------------------------------------
// promptRepoMock
// ---------------------------------------------------------------------------

type promptRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Prompt, error)
	InsertFunc func(ctx context.Context, p domain.Prompt) error
	UpsertFunc func(ctx context.Context, ps ...domain.Prompt) error
	UpdateFunc func(ctx context.Context, id string, patch domain.PromptPatch) error
	DeleteFunc func(ctx context.Context, id string) error

	calls struct {
		List   []struct{}
		Insert []struct{ P domain.Prompt }
		Upsert []struct{ Ps []domain.Prompt }
		Update []struct {
			ID    string
			Patch domain.PromptPatch
		}
		Delete []struct{ ID string }
	}
	lock sync.RWMutex
}

func (mock *promptRepoMock) List(ctx context.Context) ([]domain.Prompt, error) {
	if mock.ListFunc == nil {
		panic("promptRepoMock.ListFunc: method is nil but promptRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lock.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *promptRepoMock) Insert(ctx context.Context, p domain.Prompt) error {
	if mock.InsertFunc == nil {
		panic("promptRepoMock.InsertFunc: method is nil but promptRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ P domain.Prompt }{P: p})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, p)
}

func (mock *promptRepoMock) Upsert(ctx context.Context, ps ...domain.Prompt) error {
	if mock.UpsertFunc == nil {
		panic("promptRepoMock.UpsertFunc: method is nil but promptRepo.Upsert was just called")
	}
	mock.lock.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ Ps []domain.Prompt }{Ps: ps})
	mock.lock.Unlock()
	return mock.UpsertFunc(ctx, ps...)
}

func (mock *promptRepoMock) Update(ctx context.Context, id string, patch domain.PromptPatch) error {
	if mock.UpdateFunc == nil {
		panic("promptRepoMock.UpdateFunc: method is nil but promptRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ID    string
		Patch domain.PromptPatch
	}{ID: id, Patch: patch})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *promptRepoMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("promptRepoMock.DeleteFunc: method is nil but promptRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID string }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *promptRepoMock) InsertCalls() []struct{ P domain.Prompt } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *promptRepoMock) UpsertCalls() []struct{ Ps []domain.Prompt } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Upsert
}

func (mock *promptRepoMock) UpdateCalls() []struct {
	ID    string
	Patch domain.PromptPatch
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

// ---------------------------------------------------------------------------
// suggestionRepoMock
// ---------------------------------------------------------------------------

type suggestionRepoMock struct {
	ListFunc   func(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error)
	InsertFunc func(ctx context.Context, s domain.Suggestion) error
	DeleteFunc func(ctx context.Context, id string) error

	calls struct {
		List   []struct{ Status domain.SuggestionStatus }
		Insert []struct{ S domain.Suggestion }
		Delete []struct{ ID string }
	}
	lock sync.RWMutex
}

func (mock *suggestionRepoMock) List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	if mock.ListFunc == nil {
		panic("suggestionRepoMock.ListFunc: method is nil but suggestionRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Status domain.SuggestionStatus }{Status: status})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, status)
}

func (mock *suggestionRepoMock) Insert(ctx context.Context, s domain.Suggestion) error {
	if mock.InsertFunc == nil {
		panic("suggestionRepoMock.InsertFunc: method is nil but suggestionRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ S domain.Suggestion }{S: s})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, s)
}

func (mock *suggestionRepoMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("suggestionRepoMock.DeleteFunc: method is nil but suggestionRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID string }{ID: id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *suggestionRepoMock) ListCalls() []struct{ Status domain.SuggestionStatus } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *suggestionRepoMock) InsertCalls() []struct{ S domain.Suggestion } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *suggestionRepoMock) DeleteCalls() []struct{ ID string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}
