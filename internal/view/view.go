// Package view holds the state of the notes screen: the list loaded from the
// API, the draft being typed and the progress of each remote call.
//
// Remote calls run on their own goroutines so the caller never blocks. Every
// result is tagged with the generation it was started in; once the view is
// closed or re-activated, late results are discarded instead of applied.
package view

import (
	"context"
	"sync"

	"notesapp/internal/client"
	"notesapp/pkg/logger"

	"go.uber.org/zap"
)

// API is the remote collaborator. *client.Client satisfies it.
type API interface {
	ListNotes(ctx context.Context) ([]client.Note, error)
	CreateNote(ctx context.Context, text string) (client.Note, error)
}

// Snapshot is a copy of the view state, safe to keep and render.
type Snapshot struct {
	Notes          []client.Note
	Draft          string
	Load           State
	Create         State
	PendingCreates int
	Active         bool
}

type Option func(*View)

// WithOnChange registers fn to run after every state change. Calls are
// serialized; fn should read the state through Snapshot.
func WithOnChange(fn func()) Option {
	return func(v *View) { v.onChange = fn }
}

type View struct {
	api      API
	reporter Reporter
	onChange func()
	notifyMu sync.Mutex

	mu            sync.Mutex
	notes         []client.Note
	draft         string
	load          State
	createOutcome State
	pending       int
	active        bool
	generation    uint64
	cancel        context.CancelFunc
	ctx           context.Context

	wg sync.WaitGroup
}

func New(api API, reporter Reporter, opts ...Option) *View {
	if reporter == nil {
		reporter = LogReporter{}
	}
	v := &View{api: api, reporter: reporter}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Activate starts a lifecycle and issues its single list request. Calling it
// again before Close does nothing. A draft set while inactive is kept.
func (v *View) Activate(ctx context.Context) {
	v.mu.Lock()
	if v.active {
		v.mu.Unlock()
		return
	}
	v.active = true
	v.generation++
	gen := v.generation
	v.ctx, v.cancel = context.WithCancel(ctx)
	v.notes = []client.Note{}
	v.load = Loading
	v.createOutcome = Idle
	v.pending = 0
	lctx := v.ctx
	v.wg.Add(1)
	v.mu.Unlock()

	v.changed()
	go v.runLoad(lctx, gen)
}

func (v *View) runLoad(ctx context.Context, gen uint64) {
	defer v.wg.Done()

	notes, err := v.api.ListNotes(ctx)

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		logger.Log.Debug("Discarding stale notes list", zap.Uint64("generation", gen))
		return
	}
	if err != nil {
		v.load = Failed
		v.notes = []client.Note{}
	} else {
		v.load = Succeeded
		v.notes = append([]client.Note{}, notes...)
	}
	v.mu.Unlock()

	if err != nil {
		v.reporter.Report(newFailure(OpLoad, err))
	}
	v.changed()
}

// SetDraft replaces the draft text verbatim. It may be called before
// Activate; Close clears the draft.
func (v *View) SetDraft(text string) {
	v.mu.Lock()
	v.draft = text
	v.mu.Unlock()
	v.changed()
}

// Submit posts the current draft, even when it is empty. It reports false
// when the view is not active.
func (v *View) Submit() bool {
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return false
	}
	gen := v.generation
	text := v.draft
	ctx := v.ctx
	v.pending++
	v.wg.Add(1)
	v.mu.Unlock()

	v.changed()
	go v.runCreate(ctx, gen, text)
	return true
}

func (v *View) runCreate(ctx context.Context, gen uint64, text string) {
	defer v.wg.Done()

	note, err := v.api.CreateNote(ctx, text)

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		logger.Log.Debug("Discarding stale note creation", zap.Uint64("generation", gen))
		return
	}
	v.pending--
	if err != nil {
		v.createOutcome = Failed
	} else {
		v.createOutcome = Succeeded
		v.notes = append(v.notes, note)
		v.draft = ""
	}
	v.mu.Unlock()

	if err != nil {
		v.reporter.Report(newFailure(OpCreate, err))
	}
	v.changed()
}

// Wait blocks until every started operation has settled. It must not race
// with Activate or Submit.
func (v *View) Wait() {
	v.wg.Wait()
}

// Close ends the lifecycle: in-flight requests are cancelled and their
// results dropped.
func (v *View) Close() {
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return
	}
	v.active = false
	v.generation++
	v.pending = 0
	v.draft = ""
	if v.load == Loading {
		v.load = Idle
	}
	v.cancel()
	v.mu.Unlock()

	v.wg.Wait()
	v.changed()
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	create := v.createOutcome
	if v.pending > 0 {
		create = Loading
	}
	return Snapshot{
		Notes:          append([]client.Note{}, v.notes...),
		Draft:          v.draft,
		Load:           v.load,
		Create:         create,
		PendingCreates: v.pending,
		Active:         v.active,
	}
}

func (v *View) changed() {
	if v.onChange == nil {
		return
	}
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()
	v.onChange()
}
