// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/scheduler"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

// Options configures a [Registry].
type Options struct {
	// Root is the storage folder of the default scope. Named scopes live in
	// Root/scopes/<name>.
	Root string

	// Host talks to the pack-hosting service.
	Host adapter.PackHost

	// Scheduler runs background jobs and foreground side effects.
	Scheduler *scheduler.Scheduler

	// Journal records job outcomes. Nil disables recording.
	Journal store.SyncJournal

	// Broadcaster announces new packs to participants. Nil disables announcements.
	Broadcaster Broadcaster

	// Console receives the messages of synthetic triggers (start-up, periodic
	// sync) and of operations called without a requester.
	Console Recipient

	// Policy selects the reaction to declined and failed pack offers.
	Policy config.Policy

	// Commands runs the policy commands. Nil makes command policies no-ops.
	Commands CommandRunner

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time

	Logger *logger.Logger
}

// Registry owns the default scope and every named scope.
type Registry struct {
	mu sync.Mutex

	root      string
	scopesDir string

	defaultState *State
	named        []*State
	byName       map[string]*State
	initialized  bool

	policy   config.Policy
	commands CommandRunner

	sched *scheduler.Scheduler
	deps  deps
}

// NewRegistry validates opts. The default scope starts unconfigured; call
// [Registry.Initialize] to load the storage folders and start the worker.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Root == "" {
		return nil, errors.New("pack registry: storage root is empty")
	}
	if opts.Host == nil {
		return nil, errors.New("pack registry: pack host is nil")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.New(opts.Logger)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Registry{
		root:      opts.Root,
		scopesDir: filepath.Join(opts.Root, scopesDirName),
		byName:    make(map[string]*State),
		sched:     opts.Scheduler,
		policy:    opts.Policy,
		commands:  opts.Commands,
		deps: deps{
			host:        opts.Host,
			queue:       opts.Scheduler,
			journal:     opts.Journal,
			broadcaster: opts.Broadcaster,
			console:     opts.Console,
			now:         opts.Now,
			logger:      opts.Logger,
		},
	}
	r.defaultState = newState("", r.root, r.deps)

	return r, nil
}

// Initialize creates the storage folders, loads the default scope and one
// scope per existing subfolder of the scopes folder, then starts the
// background worker. Packs found on disk are hashed and synced. It may be
// called once; later calls return [ErrAlreadyInitialized].
func (r *Registry) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return ErrAlreadyInitialized
	}

	log := r.deps.logger
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("%w: create storage root: %w", ErrLocalIO, err)
	}
	if err := os.MkdirAll(r.scopesDir, 0o755); err != nil {
		return fmt.Errorf("%w: create scopes folder: %w", ErrLocalIO, err)
	}

	r.defaultState.initializeFromDisk()

	entries, err := os.ReadDir(r.scopesDir)
	if err != nil {
		return fmt.Errorf("%w: list scopes folder: %w", ErrLocalIO, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if err := ValidateScope(name); err != nil {
			log.Warn().Err(err).Msg("skipping scope folder")
			continue
		}

		state := newState(name, filepath.Join(r.scopesDir, name), r.deps)
		state.initializeFromDisk()
		r.register(state)
	}

	r.initialized = true
	log.Info().Int("scopes", len(r.named)).Str("root", r.root).Msg("pack registry initialized")
	r.sched.Start()

	return nil
}

func (r *Registry) register(state *State) {
	r.named = append(r.named, state)
	r.byName[state.scope] = state
}

// lookup returns the state of scope, or nil for an unknown named scope.
func (r *Registry) lookup(scope string) *State {
	if scope == "" {
		return r.defaultState
	}
	return r.byName[scope]
}

// SyncAll syncs every scope when scope is empty, otherwise only the named
// scope. It reports whether any scope matched.
func (r *Registry) SyncAll(to Recipient, scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if scope == "" {
		r.defaultState.Sync(to)
		for _, state := range r.named {
			state.Sync(to)
		}
		return true
	}

	state := r.byName[scope]
	if state == nil {
		return false
	}
	state.Sync(to)
	return true
}

// ChangeID switches scope to packID, creating the scope when it is unknown.
func (r *Registry) ChangeID(to Recipient, packID, scope string) error {
	if err := ValidateScope(scope); err != nil {
		return err
	}
	if err := validatePackID(packID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.lookup(scope)
	if state == nil {
		folder := filepath.Join(r.scopesDir, scope)
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return fmt.Errorf("%w: create scope folder: %w", ErrLocalIO, err)
		}
		state = newState(scope, folder, r.deps)
		r.register(state)
		r.deps.logger.Info().Str("scope", scope).Msg("scope created")
	}

	return state.ChangeID(to, packID)
}

// Remove clears the default scope in place, or deletes a named scope with
// its folder. It reports whether the scope existed.
func (r *Registry) Remove(to Recipient, scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.lookup(scope)
	if state == nil {
		return false
	}

	if state == r.defaultState {
		state.Clear(to)
		return true
	}

	to = state.recipient(to)
	state.retire()
	r.deleteFolder(to, state.folder)

	for i, s := range r.named {
		if s == state {
			r.named = append(r.named[:i], r.named[i+1:]...)
			break
		}
	}
	delete(r.byName, scope)
	r.deps.logger.Info().Str("scope", scope).Msg("scope removed")

	return true
}

// deleteFolder removes every file of folder and then folder itself,
// reporting each failure and continuing.
func (r *Registry) deleteFolder(to Recipient, folder string) {
	warn := func(path string, err error) {
		r.deps.logger.Warn().Err(err).Str("path", path).Msg("failed to delete")
		r.defaultState.tell(to, models.NewMessage(models.Warning, "Failed to delete "+path))
	}

	entries, err := os.ReadDir(folder)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		warn(folder, err)
	}
	for _, entry := range entries {
		path := filepath.Join(folder, entry.Name())
		if err := os.Remove(path); err != nil {
			warn(path, err)
		}
	}
	if err := os.Remove(folder); err != nil && !errors.Is(err, fs.ErrNotExist) {
		warn(folder, err)
	}
}

// PrintStatus reports the status of scope. It returns false for an unknown
// named scope.
func (r *Registry) PrintStatus(to Recipient, scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.lookup(scope)
	if state == nil {
		return false
	}
	state.PrintStatus(to)
	return true
}

// ListScopes returns "" when the default scope has a digest, followed by
// every named scope in insertion order.
func (r *Registry) ListScopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes := make([]string, 0, 1+len(r.named))
	if r.defaultState.Digest() != nil {
		scopes = append(scopes, "")
	}
	for _, state := range r.named {
		scopes = append(scopes, state.scope)
	}
	return scopes
}

// State returns the state of scope.
func (r *Registry) State(scope string) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.lookup(scope)
	if state == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
	return state, nil
}

// Journal returns the journal the registry records into, never nil.
func (r *Registry) Journal() store.SyncJournal {
	if r.deps.journal == nil {
		return store.NewNopJournal()
	}
	return r.deps.journal
}

// Drain runs the queued foreground tasks. The host calls it from its tick.
func (r *Registry) Drain() int {
	return r.sched.Drain()
}

// Stop lets the background worker finish the queued jobs and exit.
func (r *Registry) Stop() {
	r.sched.Stop()
}

// Done is closed once the background worker has exited.
func (r *Registry) Done() <-chan struct{} {
	return r.sched.Done()
}
