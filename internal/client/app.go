package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/command"
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/console"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
	"github.com/MKhiriev/go-pack-sync/internal/scheduler"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/internal/workers"
	"github.com/MKhiriev/go-pack-sync/models"
)

var _ pack.CommandRunner = (*App)(nil)

// exitCommands end the input loop.
var exitCommands = map[string]struct{}{"exit": {}, "quit": {}, "stop": {}}

type App struct {
	registry   *pack.Registry
	dispatcher *command.Dispatcher
	workers    *workers.Workers
	console    *console.Console
	operator   command.Sender
	db         *store.DB
	urlPrefix  string

	in     io.Reader
	logger *logger.Logger
}

// NewApp wires the sync engine described by cfg. Commands are read line by
// line from in; console output goes to out. When cfg.Storage.JournalDSN is
// set the journal database is opened and migrated.
func NewApp(ctx context.Context, cfg *config.SyncConfig, in io.Reader, out io.Writer, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	host, err := adapter.NewHTTPPackHost(cfg.Remote, log)
	if err != nil {
		return nil, fmt.Errorf("create pack host adapter: %w", err)
	}

	var (
		db      *store.DB
		journal store.SyncJournal
	)
	if cfg.Storage.JournalDSN != "" {
		db, err = store.Open(ctx, cfg.Storage.JournalDSN, log)
		if err != nil {
			return nil, fmt.Errorf("open sync journal: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sync journal: %w", err)
		}
		journal = store.NewSyncJournalRepository(db, log)
	}

	out = writerOrDiscard(out)
	term := console.New(out)

	registry, err := pack.NewRegistry(pack.Options{
		Root:        cfg.Storage.Root,
		Host:        host,
		Scheduler:   scheduler.New(log),
		Journal:     journal,
		Broadcaster: term,
		Console:     term,
		Policy:      cfg.Policy,
		Logger:      log,
	})
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create pack registry: %w", err)
	}

	dispatcher, err := command.NewDispatcher(registry, log)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create command dispatcher: %w", err)
	}

	var periodic workers.Worker
	if cfg.Workers.SyncInterval > 0 {
		periodic = workers.NewPeriodicSyncWorker(registry, term, cfg.Workers.SyncInterval, log)
	}

	app := &App{
		registry:   registry,
		dispatcher: dispatcher,
		workers: workers.NewWorkers(
			workers.NewDrainWorker(registry, cfg.Workers.TickInterval, log),
			periodic,
		),
		console:   term,
		operator:  command.Operator(term),
		db:        db,
		urlPrefix: cfg.Remote.URLPrefix,
		in:        in,
		logger:    log,
	}
	registry.SetCommandRunner(app)

	return app, nil
}

// EnableReload lets the reload command rebuild the configuration with load.
func (a *App) EnableReload(load command.ConfigLoader) {
	a.dispatcher.EnableReload(load, a.urlPrefix)
}

// Registry returns the pack registry, for hosts that report membership and
// pack status events.
func (a *App) Registry() *pack.Registry {
	return a.registry
}

// RunCommand runs line with console permissions. Policy commands of the
// registry end up here.
func (a *App) RunCommand(line string) {
	a.execute(context.Background(), line)
}

// Run initializes the registry, starts the workers and executes commands
// until the input ends, an exit command is read or ctx is cancelled. Queued
// jobs finish before Run returns.
func (a *App) Run(ctx context.Context) error {
	if err := a.registry.Initialize(); err != nil {
		closeDB(a.db)
		return fmt.Errorf("initialize pack registry: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(ctx)
	a.logger.Info().Msg("packsync started")

	lines := a.readLines(ctx)
	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case line, ok := <-lines:
			if !ok {
				running = false
				break
			}
			running = a.execute(ctx, line)
		}
	}

	a.shutdown()
	return nil
}

// execute runs one input line. It returns false for an exit command.
func (a *App) execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if _, ok := exitCommands[strings.ToLower(line)]; ok {
		return false
	}

	if err := a.dispatcher.Execute(ctx, a.operator, line); err != nil {
		if errors.Is(err, command.ErrUnknownCommand) {
			a.console.Send(models.NewMessage(models.Plain, command.Usage))
			return true
		}
		a.logger.Err(err).Str("line", line).Msg("command failed")
	}
	return true
}

// readLines feeds the lines of a.in into the returned channel, which is
// closed at end of input.
func (a *App) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	if a.in == nil {
		close(lines)
		return lines
	}

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			a.logger.Warn().Err(err).Msg("reading commands failed")
		}
	}()
	return lines
}

// shutdown stops the workers, lets the background jobs finish and flushes
// the messages they queued.
func (a *App) shutdown() {
	a.workers.Stop()
	a.registry.Stop()
	<-a.registry.Done()
	a.registry.Drain()
	closeDB(a.db)

	a.logger.Info().Msg("packsync stopped")
}

func writerOrDiscard(out io.Writer) io.Writer {
	if out == nil {
		return io.Discard
	}
	return out
}

func closeDB(db *store.DB) {
	if db != nil {
		_ = db.Close()
	}
}
