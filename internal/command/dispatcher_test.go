package command

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/mock"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
	"github.com/MKhiriev/go-pack-sync/internal/scheduler"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

// ── Fixtures ────────────────────────────────────────────────────────────────

type replies struct {
	mu   sync.Mutex
	msgs []models.Message
}

func (r *replies) Send(msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *replies) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Text)
	}
	return out
}

// packServer answers every pack in packs with 200 and everything else with 404.
func packServer(t *testing.T, packs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/get-resource-pack/")
		data, ok := packs[id]
		if !ok || r.Method == http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(data))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fixture struct {
	reg   *pack.Registry
	sched *scheduler.Scheduler
	disp  *Dispatcher
}

func newFixture(t *testing.T, packs map[string]string, journal store.SyncJournal) *fixture {
	t.Helper()

	srv := packServer(t, packs)
	host, err := adapter.NewHTTPPackHost(config.Remote{URLPrefix: srv.URL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	sched := scheduler.New(logger.Nop())
	reg, err := pack.NewRegistry(pack.Options{
		Root:      t.TempDir(),
		Host:      host,
		Scheduler: sched,
		Journal:   journal,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, reg.Initialize())
	t.Cleanup(func() {
		reg.Stop()
		<-reg.Done()
	})

	disp, err := NewDispatcher(reg, logger.Nop())
	require.NoError(t, err)

	return &fixture{reg: reg, sched: sched, disp: disp}
}

// flush waits for the queued background jobs and delivers their messages.
func (f *fixture) flush(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	f.sched.Background("flush", func(context.Context) { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background queue did not drain")
	}
	f.reg.Drain()
}

func (f *fixture) run(t *testing.T, sender Sender, line string) {
	t.Helper()
	require.NoError(t, f.disp.Execute(context.Background(), sender, line))
}

// ── Parsing ─────────────────────────────────────────────────────────────────

func TestNewDispatcher_NilEngine(t *testing.T) {
	_, err := NewDispatcher(nil, nil)
	assert.ErrorIs(t, err, ErrNilEngine)
}

func TestExecute_UnknownCommand(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	assert.ErrorIs(t, f.disp.Execute(context.Background(), Operator(to), ""), ErrUnknownCommand)
	assert.ErrorIs(t, f.disp.Execute(context.Background(), Operator(to), "frobnicate"), ErrUnknownCommand)
	assert.Empty(t, to.texts())
}

// ── Permissions ─────────────────────────────────────────────────────────────

func TestExecute_PermissionDenied(t *testing.T) {
	tests := []struct {
		line  string
		perms []string
	}{
		{line: "changeid abc", perms: []string{PermStatus, PermSync}},
		{line: "remove", perms: []string{PermStatus}},
		{line: "list", perms: []string{PermChangeID}},
		{line: "status", perms: []string{PermSync}},
		{line: "history", perms: []string{PermSync}},
		{line: "sync", perms: []string{PermStatus, PermChangeID}},
		{line: "reload", perms: []string{PermStatus, PermChangeID, PermSync}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t, map[string]string{"abc": "hello"}, nil)
			to := &replies{}

			f.run(t, Granted(to, tt.perms...), tt.line)
			f.flush(t)

			assert.Equal(t, []string{msgNoAccess}, to.texts())
		})
	}
}

func TestGranted_HasOnlyListedPermissions(t *testing.T) {
	s := Granted(&replies{}, PermStatus)
	assert.True(t, s.HasPermission(PermStatus))
	assert.False(t, s.HasPermission(PermSync))

	op := Operator(&replies{})
	for _, p := range []string{PermChangeID, PermStatus, PermSync, PermReload} {
		assert.True(t, op.HasPermission(p), p)
	}
}

// ── changeid ────────────────────────────────────────────────────────────────

func TestChangeID_Usage(t *testing.T) {
	f := newFixture(t, nil, nil)

	for _, line := range []string{"changeid", "changeid a b c"} {
		to := &replies{}
		f.run(t, Operator(to), line)
		assert.Equal(t, []string{msgChangeIDUsage}, to.texts(), line)
	}
}

func TestChangeID_DownloadsIntoScope(t *testing.T) {
	f := newFixture(t, map[string]string{"abc": "hello"}, nil)
	to := &replies{}

	f.run(t, Operator(to), "changeid abc nether")
	f.flush(t)

	state, err := f.reg.State("nether")
	require.NoError(t, err)
	assert.Equal(t, "abc", state.PackID())
	assert.NotNil(t, state.Digest())
	assert.Contains(t, to.texts(), "Finished downloading resource pack from the resource pack server")
}

func TestChangeID_InvalidScope(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "changeid abc ..")

	require.Len(t, to.texts(), 1)
	assert.Contains(t, to.texts()[0], "Can't change the resource pack id")
	assert.Equal(t, []string{}, f.reg.ListScopes())
}

// ── remove ──────────────────────────────────────────────────────────────────

func TestRemove_Default(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "remove")

	assert.Equal(t, []string{msgDefaultRemoved}, to.texts())
}

func TestRemove_NamedScope(t *testing.T) {
	f := newFixture(t, map[string]string{"abc": "hello"}, nil)
	f.run(t, Operator(&replies{}), "changeid abc nether")
	f.flush(t)

	to := &replies{}
	f.run(t, Operator(to), "remove nether")
	f.flush(t)

	assert.Equal(t, []string{"The resourcepack in scope nether should be gone after you rejoin the server"}, to.texts())
	assert.NotContains(t, f.reg.ListScopes(), "nether")
}

func TestRemove_UnknownScope(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "remove nether")

	assert.Equal(t, []string{"No resourcepack was configured for scope nether"}, to.texts())
}

func TestRemove_Usage(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "remove a b")

	assert.Equal(t, []string{msgRemoveUsage}, to.texts())
}

// ── list ────────────────────────────────────────────────────────────────────

func TestList_NothingConfigured(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "list")

	assert.Equal(t, []string{msgNoDefault, msgNoNamed}, to.texts())
}

func TestList_DefaultAndNamedScopes(t *testing.T) {
	f := newFixture(t, map[string]string{"abc": "hello", "def": "world"}, nil)
	f.run(t, Operator(&replies{}), "changeid abc")
	f.run(t, Operator(&replies{}), "changeid def nether")
	f.run(t, Operator(&replies{}), "changeid def end")
	f.flush(t)

	to := &replies{}
	f.run(t, Operator(to), "list")

	assert.Equal(t, []string{msgHasDefault, msgNamedHeader, " - nether", " - end"}, to.texts())
}

// ── status / sync ───────────────────────────────────────────────────────────

func TestStatus_UnknownScope(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "status nether")

	assert.Equal(t, []string{"No resourcepack is configured for scope nether"}, to.texts())
}

func TestStatus_DefaultUnconfigured(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "status")
	f.reg.Drain()

	assert.Equal(t, []string{
		"This server doesn't have a resource pack yet.",
		"Use 'changeid <resource pack id>'",
	}, to.texts())
}

func TestSync_UnknownScope(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "sync nether")

	assert.Equal(t, []string{"No resourcepack is configured for scope nether"}, to.texts())
}

func TestSync_VerifiesExistingPack(t *testing.T) {
	f := newFixture(t, map[string]string{"abc": "hello"}, nil)
	f.run(t, Operator(&replies{}), "changeid abc")
	f.flush(t)

	to := &replies{}
	f.run(t, Operator(to), "sync")
	f.flush(t)

	assert.Equal(t, []string{"Sync succeeded"}, to.texts())
}

// ── history ─────────────────────────────────────────────────────────────────

func TestHistory_PrintsJournalEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	journal := mock.NewMockSyncJournal(ctrl)

	at := time.Date(2026, 3, 1, 14, 5, 0, 0, time.Local)
	journal.EXPECT().Recent(gomock.Any(), "nether", DefaultHistoryLimit).Return([]models.SyncEvent{
		{Scope: "nether", PackID: "abc", Outcome: models.OutcomeDownloaded, StatusCode: 200, Bytes: 5, RecordedAt: at},
		{Scope: "nether", PackID: "abc", Outcome: models.OutcomeFailed, Detail: "pack host unreachable", RecordedAt: at},
	}, nil)

	f := newFixture(t, nil, journal)
	to := &replies{}

	f.run(t, Operator(to), "history nether")

	assert.Equal(t, []string{
		"2026-03-01 14:05:00 abc downloaded (code 200), 5 bytes",
		"2026-03-01 14:05:00 abc failed: pack host unreachable",
	}, to.texts())
}

func TestHistory_Empty(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "history")
	f.run(t, Operator(to), "history nether")

	assert.Equal(t, []string{
		"No synchronization was recorded for the default resourcepack",
		"No synchronization was recorded for scope nether",
	}, to.texts())
}

func TestHistory_JournalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	journal := mock.NewMockSyncJournal(ctrl)
	journal.EXPECT().Recent(gomock.Any(), "", DefaultHistoryLimit).Return(nil, errors.New("database is locked"))

	f := newFixture(t, nil, journal)
	to := &replies{}

	f.run(t, Operator(to), "history")

	assert.Equal(t, []string{"Failed to read the synchronization history: database is locked"}, to.texts())
}

func TestHistory_InvalidScope(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "history ..")

	require.Len(t, to.texts(), 1)
	assert.Contains(t, to.texts()[0], "invalid scope name")
}

// ── Reload ──────────────────────────────────────────────────────────────────

func TestReload_AppliesPolicy(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.disp.EnableReload(func() (*config.SyncConfig, error) {
		return &config.SyncConfig{
			Remote: config.Remote{URLPrefix: "http://packs.example/"},
			Policy: config.Policy{Reject: config.StatusPolicy{Kick: true, KickMessage: "bye"}},
		}, nil
	}, "http://packs.example/")
	to := &replies{}

	f.run(t, Operator(to), "reload")

	assert.Equal(t, []string{msgReloaded}, to.texts())

	ctrl := gomock.NewController(t)
	m := mock.NewMockMember(ctrl)
	m.EXPECT().Name().Return("steve").AnyTimes()
	m.EXPECT().Kick("bye")
	assert.Equal(t, pack.ReactionKick, f.reg.OnPackStatus(m, pack.StatusDeclined))
}

func TestReload_WarnsAboutChangedHostURL(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.disp.EnableReload(func() (*config.SyncConfig, error) {
		return &config.SyncConfig{Remote: config.Remote{URLPrefix: "http://other.example/"}}, nil
	}, "http://packs.example/")
	to := &replies{}

	f.run(t, Operator(to), "reload")

	require.Len(t, to.msgs, 2)
	assert.Equal(t, msgReloaded, to.msgs[0].Text)
	assert.Equal(t, msgURLChanged, to.msgs[1].Text)
	assert.Equal(t, models.Warning, to.msgs[1].Tone)
}

func TestReload_LoadFailureKeepsPolicy(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.reg.SetPolicy(config.Policy{Failed: config.StatusPolicy{Message: "try again"}})
	f.disp.EnableReload(func() (*config.SyncConfig, error) {
		return nil, config.ErrInvalidRemoteConfigs
	}, "http://packs.example/")
	to := &replies{}

	f.run(t, Operator(to), "reload")

	require.Len(t, to.texts(), 1)
	assert.Contains(t, to.texts()[0], "Failed to reload the config")

	ctrl := gomock.NewController(t)
	m := mock.NewMockMember(ctrl)
	m.EXPECT().Name().Return("steve").AnyTimes()
	m.EXPECT().Send(models.NewMessage(models.Plain, "try again"))
	assert.Equal(t, pack.ReactionMessage, f.reg.OnPackStatus(m, pack.StatusFailedDownload))
}

func TestReload_Unavailable(t *testing.T) {
	f := newFixture(t, nil, nil)
	to := &replies{}

	f.run(t, Operator(to), "reload")

	assert.Equal(t, []string{msgNoReload}, to.texts())
}
