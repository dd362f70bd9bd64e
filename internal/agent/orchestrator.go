package agent

import (
	"context"
	"log"
	"sync"
	"time"

	"pkgcheck/internal/store"
)

// State tracks where one package name sits in the analyze flow. "No record"
// and "request in flight" are distinct: the in-flight flag lives here in
// memory and is never persisted.
type State string

const (
	StateIdle          State = "idle"
	StateCheckingCache State = "checking-cache"
	StateCached        State = "cached"
	StateRequesting    State = "requesting"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
)

// Orchestrator deduplicates analyze requests per package name, serves
// cached records before issuing pipeline calls, persists fresh results and
// reconciles fire-and-forget requests with later completion notifications.
type Orchestrator struct {
	store  *store.Store
	api    Analyzer
	notify func(Completion)

	mu       sync.Mutex
	inflight map[string]bool
	states   map[string]State
}

func NewOrchestrator(st *store.Store, api Analyzer, notify func(Completion)) *Orchestrator {
	if notify == nil {
		notify = func(Completion) {}
	}
	return &Orchestrator{
		store:    st,
		api:      api,
		notify:   notify,
		inflight: make(map[string]bool),
		states:   make(map[string]State),
	}
}

// StateOf reports the last known state for a package name.
func (o *Orchestrator) StateOf(packageName string) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.states[packageName]; ok {
		return s
	}
	return StateIdle
}

// Analyze handles one analyzePackage message. A cache hit completes
// immediately; otherwise one fire-and-forget pipeline request is
// dispatched, and a second request for the same name while one is in
// flight is coalesced into the pending one.
func (o *Orchestrator) Analyze(pageURL, password string) {
	packageName, err := PackageNameFromURL(pageURL)
	if err != nil {
		o.notify(completionErr("", err))
		return
	}

	// Reserve the in-flight slot before touching the cache so a second
	// request racing past the lookup cannot double-dispatch.
	o.mu.Lock()
	if o.inflight[packageName] {
		o.mu.Unlock()
		log.Printf("agent: analyze for %s already in flight, coalescing", packageName)
		return
	}
	o.inflight[packageName] = true
	o.states[packageName] = StateCheckingCache
	o.mu.Unlock()

	if rec, ok := o.store.Lookup(packageName); ok {
		o.finish(packageName, StateCached)
		o.notify(completionOK(packageName, rec))
		return
	}

	o.setState(packageName, StateRequesting)
	go o.run(packageName, password)
}

// ForceReanalyze purges every cached record for the package, then re-enters
// the requesting path. This is the only flow that deletes records.
func (o *Orchestrator) ForceReanalyze(pageURL, password string) {
	packageName, err := PackageNameFromURL(pageURL)
	if err != nil {
		o.notify(completionErr("", err))
		return
	}

	o.mu.Lock()
	if o.inflight[packageName] {
		o.mu.Unlock()
		log.Printf("agent: analyze for %s already in flight, ignoring reanalyze", packageName)
		return
	}
	o.inflight[packageName] = true
	o.states[packageName] = StateIdle
	o.mu.Unlock()

	removed, err := o.store.DeleteByName(packageName)
	if err != nil {
		o.finish(packageName, StateFailed)
		o.notify(completionErr(packageName, err))
		return
	}
	if removed > 0 {
		log.Printf("agent: purged %d cached record(s) for %s", removed, packageName)
	}

	o.setState(packageName, StateRequesting)
	go o.run(packageName, password)
}

func (o *Orchestrator) run(packageName, password string) {
	// Fire-and-forget: the popup that triggered this may be long gone, so
	// the call is not tied to any request context.
	result, err := o.api.Analyze(context.Background(), packageName, password)
	if err != nil {
		o.finish(packageName, StateFailed)
		o.notify(completionErr(packageName, err))
		return
	}

	rec, err := o.store.Insert(store.AnalyzedPackage{
		PackageName: packageName,
		Summary:     result.Summary,
		Report:      result.Report,
		LastChecked: time.Now(),
	})
	if err != nil {
		o.finish(packageName, StateFailed)
		o.notify(completionErr(packageName, err))
		return
	}

	o.finish(packageName, StateCompleted)
	o.notify(completionOK(packageName, rec))
}

func (o *Orchestrator) setState(packageName string, s State) {
	o.mu.Lock()
	o.states[packageName] = s
	o.mu.Unlock()
}

// finish releases the in-flight slot and records the terminal state.
func (o *Orchestrator) finish(packageName string, s State) {
	o.mu.Lock()
	delete(o.inflight, packageName)
	o.states[packageName] = s
	o.mu.Unlock()
}
