package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pack-sync/internal/command"
	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/pack"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

// ── Fixtures ────────────────────────────────────────────────────────────────

func packServer(t *testing.T, packs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := packs[strings.TrimPrefix(r.URL.Path, "/get-resource-pack/")]
		if !ok {
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

func testConfig(t *testing.T, srv *httptest.Server) *config.SyncConfig {
	t.Helper()
	return &config.SyncConfig{
		Storage: config.Storage{Root: t.TempDir()},
		Remote:  config.Remote{URLPrefix: srv.URL, RequestTimeout: 5 * time.Second},
		Workers: config.Workers{TickInterval: 10 * time.Millisecond},
	}
}

func runApp(t *testing.T, cfg *config.SyncConfig, input string) string {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, strings.NewReader(input), &out, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx))
	return out.String()
}

// member is a pack.Member that records kicks.
type member struct {
	name   string
	kicked []string
}

func (m *member) ApplyPack(string, []byte) {}
func (m *member) Send(models.Message)      {}
func (m *member) Name() string             { return m.name }
func (m *member) Kick(reason string)       { m.kicked = append(m.kicked, reason) }

// ── Construction ────────────────────────────────────────────────────────────

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, nil, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewApp_UnsupportedJournalDSN(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))
	cfg.Storage.JournalDSN = "mysql://localhost/packs"

	_, err := NewApp(context.Background(), cfg, nil, nil, logger.Nop())
	assert.ErrorIs(t, err, store.ErrUnsupportedDSN)
}

func TestNewApp_MalformedRemote(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))
	cfg.Remote.URLPrefix = "   "

	_, err := NewApp(context.Background(), cfg, nil, nil, logger.Nop())
	assert.Error(t, err)
}

// ── Run ─────────────────────────────────────────────────────────────────────

func TestRun_ChangeIDDownloadsBeforeExit(t *testing.T) {
	cfg := testConfig(t, packServer(t, map[string]string{"abc": "hello"}))

	out := runApp(t, cfg, "changeid abc\n")

	data, err := os.ReadFile(filepath.Join(cfg.Storage.Root, "abc.zip"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Contains(t, out, "Finished downloading resource pack from the resource pack server")
}

func TestRun_UnknownCommandPrintsUsage(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))

	out := runApp(t, cfg, "frobnicate\n")

	assert.Contains(t, out, command.Usage)
}

func TestRun_BlankLinesIgnored(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))

	out := runApp(t, cfg, "\n   \n")

	assert.NotContains(t, out, command.Usage)
}

func TestRun_ExitStopsReading(t *testing.T) {
	cfg := testConfig(t, packServer(t, map[string]string{"abc": "hello"}))

	runApp(t, cfg, "exit\nchangeid abc\n")

	_, err := os.Stat(filepath.Join(cfg.Storage.Root, "abc.zip"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ContextCancelReturns(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	app, err := NewApp(context.Background(), cfg, pr, io.Discard, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_InitializeFailure(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Storage.Root = filepath.Join(blocker, "packs")

	app, err := NewApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}

func TestRun_ReloadCommand(t *testing.T) {
	cfg := testConfig(t, packServer(t, nil))

	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, strings.NewReader("reload\n"), &out, logger.Nop())
	require.NoError(t, err)

	reloaded := *cfg
	reloaded.Remote.URLPrefix = "http://elsewhere.example/"
	app.EnableReload(func() (*config.SyncConfig, error) { return &reloaded, nil })

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Config should have been reloaded")
	assert.Contains(t, out.String(), "This change will be applied after you restart packsync.")
}

// ── Pack status policy ──────────────────────────────────────────────────────

func TestPackStatus_CommandRunsAsConsole(t *testing.T) {
	cfg := testConfig(t, packServer(t, map[string]string{"abc": "hello"}))
	cfg.Policy.Reject.Command = "changeid <player>"

	app, err := NewApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logger.Nop())
	require.NoError(t, err)

	m := &member{name: "abc"}
	assert.Equal(t, pack.ReactionCommand, app.Registry().OnPackStatus(m, pack.StatusDeclined))
	require.NoError(t, app.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.Storage.Root, "abc.zip"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Empty(t, m.kicked)
}
