package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
	"github.com/MKhiriev/go-pack-sync/models"
)

// DefaultHistoryLimit is the number of journal entries printed by history.
const DefaultHistoryLimit = 10

// Dispatcher runs commands against an [Engine].
type Dispatcher struct {
	engine       Engine
	historyLimit int
	logger       *logger.Logger

	load      ConfigLoader
	urlPrefix string
}

// NewDispatcher returns a Dispatcher driving engine.
func NewDispatcher(engine Engine, log *logger.Logger) (*Dispatcher, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		engine:       engine,
		historyLimit: DefaultHistoryLimit,
		logger:       log,
	}, nil
}

// EnableReload makes the reload command rebuild the configuration with
// load. urlPrefix is the pack host prefix the engine was started with; it
// cannot change without a restart.
func (d *Dispatcher) EnableReload(load ConfigLoader, urlPrefix string) {
	d.load = load
	d.urlPrefix = urlPrefix
}

// Execute splits line on whitespace and runs the command it names.
func (d *Dispatcher) Execute(ctx context.Context, sender Sender, line string) error {
	return d.Dispatch(ctx, sender, strings.Fields(line))
}

// Dispatch runs args[0] with the remaining arguments. Replies go to sender;
// the returned error is non-nil only for an unknown command.
func (d *Dispatcher) Dispatch(ctx context.Context, sender Sender, args []string) error {
	if len(args) == 0 {
		return ErrUnknownCommand
	}

	verb, rest := args[0], args[1:]
	d.logger.Debug().Str("command", verb).Strs("args", rest).Msg("dispatching command")

	switch verb {
	case "changeid":
		d.guarded(sender, PermChangeID, func() { d.changeID(sender, rest) })
	case "remove":
		d.guarded(sender, PermChangeID, func() { d.remove(sender, rest) })
	case "list":
		d.guarded(sender, PermStatus, func() { d.list(sender) })
	case "status":
		d.guarded(sender, PermStatus, func() { d.status(sender, rest) })
	case "sync":
		d.guarded(sender, PermSync, func() { d.sync(sender, rest) })
	case "history":
		d.guarded(sender, PermStatus, func() { d.history(ctx, sender, rest) })
	case "reload":
		d.guarded(sender, PermReload, func() { d.reload(sender) })
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
	return nil
}

func (d *Dispatcher) guarded(sender Sender, permission string, run func()) {
	if !sender.HasPermission(permission) {
		send(sender, models.Fatal, msgNoAccess)
		return
	}
	run()
}

func (d *Dispatcher) changeID(sender Sender, args []string) {
	if len(args) != 1 && len(args) != 2 {
		send(sender, models.Failure, msgChangeIDUsage)
		return
	}

	scope := optionalScope(args, 1)
	if err := d.engine.ChangeID(sender, args[0], scope); err != nil {
		d.logger.Warn().Err(err).Str("scope", scope).Msg("changeid rejected")
		send(sender, models.Failure, "Can't change the resource pack id: "+err.Error())
	}
}

func (d *Dispatcher) remove(sender Sender, args []string) {
	if len(args) > 1 {
		send(sender, models.Failure, msgRemoveUsage)
		return
	}

	scope := optionalScope(args, 0)
	if !d.engine.Remove(sender, scope) {
		sender.Send(notConfiguredForScope(scope))
		return
	}
	if scope == "" {
		send(sender, models.Success, msgDefaultRemoved)
		return
	}
	sender.Send(scopeRemoved(scope))
}

func (d *Dispatcher) list(sender Sender) {
	scopes := d.engine.ListScopes()

	hasDefault := len(scopes) > 0 && scopes[0] == ""
	named := scopes
	if hasDefault {
		named = scopes[1:]
	}

	if hasDefault {
		send(sender, models.Plain, msgHasDefault)
	} else {
		send(sender, models.Plain, msgNoDefault)
	}

	if len(named) == 0 {
		send(sender, models.Plain, msgNoNamed)
		return
	}
	send(sender, models.Plain, msgNamedHeader)
	for _, scope := range named {
		send(sender, models.Plain, " - "+scope)
	}
}

func (d *Dispatcher) status(sender Sender, args []string) {
	scope := optionalScope(args, 0)
	if !d.engine.PrintStatus(sender, scope) {
		sender.Send(noStatusForScope(scope))
	}
}

func (d *Dispatcher) sync(sender Sender, args []string) {
	scope := optionalScope(args, 0)
	if !d.engine.SyncAll(sender, scope) {
		sender.Send(noStatusForScope(scope))
	}
}

func (d *Dispatcher) history(ctx context.Context, sender Sender, args []string) {
	scope := optionalScope(args, 0)
	if err := pack.ValidateScope(scope); err != nil {
		send(sender, models.Failure, err.Error())
		return
	}

	events, err := d.engine.Journal().Recent(ctx, scope, d.historyLimit)
	if err != nil {
		d.logger.Err(err).Str("scope", scope).Msg("failed to read sync history")
		send(sender, models.Failure, "Failed to read the synchronization history: "+err.Error())
		return
	}

	if len(events) == 0 {
		sender.Send(noHistory(scope))
		return
	}
	for _, ev := range events {
		send(sender, toneOf(ev.Outcome), historyLine(ev))
	}
}

// reload applies the log level and pack status policy of a fresh
// configuration. A changed pack host prefix is only reported.
func (d *Dispatcher) reload(sender Sender) {
	if d.load == nil {
		send(sender, models.Failure, msgNoReload)
		return
	}

	cfg, err := d.load()
	if err != nil {
		d.logger.Err(err).Msg("config reload failed")
		send(sender, models.Failure, "Failed to reload the config: "+err.Error())
		return
	}
	if err = logger.ApplyLevel(cfg.App.LogLevel); err != nil {
		d.logger.Warn().Err(err).Msg("reloaded log level ignored")
	}
	d.engine.SetPolicy(cfg.Policy)

	d.logger.Info().Msg("config reloaded")
	send(sender, models.Success, msgReloaded)
	if strings.TrimSpace(cfg.Remote.URLPrefix) != strings.TrimSpace(d.urlPrefix) {
		send(sender, models.Warning, msgURLChanged)
	}
}

// optionalScope returns args[i], or the default scope when it is absent.
func optionalScope(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func toneOf(outcome models.Outcome) models.Tone {
	switch outcome {
	case models.OutcomeDownloaded, models.OutcomeVerified, models.OutcomeUploaded:
		return models.Success
	case models.OutcomeSuperseded:
		return models.Plain
	case models.OutcomeUnexpectedStatus:
		return models.Warning
	default:
		return models.Failure
	}
}

func send(to pack.Recipient, tone models.Tone, text string) {
	to.Send(models.NewMessage(tone, text))
}
