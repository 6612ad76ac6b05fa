package pack

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/copier"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/internal/store"
	"github.com/MKhiriev/go-pack-sync/models"
)

const (
	packExt = ".zip"
	partExt = ".part"
)

// Snapshot is a point-in-time copy of a [State].
type Snapshot struct {
	Scope    string
	PackID   string
	Digest   []byte
	LastSync time.Time
	HasLocal bool
}

// deps are the collaborators shared by every State of a registry.
type deps struct {
	host        adapter.PackHost
	queue       Queue
	journal     store.SyncJournal
	broadcaster Broadcaster
	console     Recipient
	now         func() time.Time
	logger      *logger.Logger
}

// State tracks the pack of one scope and runs its sync protocol.
//
// Unconfigured: packID is empty. PendingVerification: packID is set and no
// sync finished yet. Synced: the local file and digest are known and
// lastSync is set.
type State struct {
	mu sync.Mutex

	scope  string
	folder string

	packID   string
	digest   []byte
	lastSync time.Time

	// generation changes whenever packID is replaced or cleared. Background
	// jobs carry the generation they were queued under.
	generation uint64

	deps
}

func newState(scope, folder string, d deps) *State {
	s := &State{scope: scope, folder: folder, deps: d}
	s.logger = d.logger.WithStr("scope", scopeLabel(scope))
	return s
}

// Scope returns the scope name; empty for the default scope.
func (s *State) Scope() string {
	return s.scope
}

// Folder returns the storage folder of the scope.
func (s *State) Folder() string {
	return s.folder
}

func (s *State) packFile(packID string) string {
	return filepath.Join(s.folder, packID+packExt)
}

// initializeFromDisk adopts the pack file found in the scope folder, if any.
// Extra candidates are deleted keeping the most recently modified one and
// stale partial downloads are removed. A successfully hashed pack is synced
// with the console as requester.
func (s *State) initializeFromDisk() {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.folder)
	if err != nil {
		s.logger.Error().Err(err).Str("folder", s.folder).Msg("can't list scope folder")
		return
	}

	var (
		candidates []fs.FileInfo
		latest     fs.FileInfo
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, packExt+partExt) {
			if err := os.Remove(filepath.Join(s.folder, name)); err != nil {
				s.logger.Warn().Err(err).Str("file", name).Msg("failed to delete stale partial download")
			}
			continue
		}
		if !strings.HasSuffix(name, packExt) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("can't stat pack candidate")
			continue
		}
		candidates = append(candidates, info)
		if latest == nil || info.ModTime().After(latest.ModTime()) {
			latest = info
		}
	}

	if latest == nil {
		return
	}

	if len(candidates) > 1 {
		s.logger.Warn().
			Str("folder", s.folder).
			Str("kept", latest.Name()).
			Int("candidates", len(candidates)).
			Msg("multiple pack files are present, only the latest will be kept")

		for _, info := range candidates {
			if info == latest {
				continue
			}
			if err := os.Remove(filepath.Join(s.folder, info.Name())); err != nil {
				s.logger.Warn().Err(err).Str("file", info.Name()).Msg("failed to delete outdated pack file")
			}
		}
	}

	s.packID = strings.TrimSuffix(latest.Name(), packExt)
	if err := s.rehashLocked(); err != nil {
		if errors.Is(err, ErrDigestUnavailable) {
			s.logger.Error().Err(err).Msg("SHA-1 is not supported on this host, the scope is disabled")
		} else {
			s.logger.Error().Err(err).Str("pack_id", s.packID).Msg("failed to read pack")
		}
		s.packID = ""
		s.digest = nil
		return
	}

	s.logger.Info().Str("pack_id", s.packID).Msg("adopted pack from disk")
	s.syncLocked(nil)
}

// rehashLocked recomputes the digest of the local file of packID.
func (s *State) rehashLocked() error {
	f, err := os.Open(s.packFile(s.packID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalIO, err)
	}

	sum, err := copier.Digest(f)
	if err != nil {
		if errors.Is(err, copier.ErrDigestUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrLocalIO, err)
	}

	s.digest = sum
	return nil
}

// Sync queues one sync job for the current pack. Without a pack id it
// sends a single "not configured" message and makes no network call.
func (s *State) Sync(to Recipient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncLocked(to)
}

func (s *State) syncLocked(to Recipient) {
	to = s.recipient(to)

	if s.packID == "" {
		s.tell(to, notConfigured(s.scope))
		return
	}

	job := syncJob{
		state:      s,
		to:         to,
		packID:     s.packID,
		generation: s.generation,
		hasLocal:   fileExists(s.packFile(s.packID)),
	}
	s.queue.Background("sync "+scopeLabel(s.scope), job.run)
}

// ChangeID deletes the local file of the current pack, switches to packID
// and queues a sync. A failed deletion is reported and does not abort.
func (s *State) ChangeID(to Recipient, packID string) error {
	if err := validatePackID(packID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	to = s.recipient(to)

	if s.packID != "" {
		if err := removeIfExists(s.packFile(s.packID)); err != nil {
			s.logger.Warn().Err(err).Str("pack_id", s.packID).Msg("failed to delete old pack")
			s.tell(to, models.NewMessage(models.Failure, msgDeleteOldFailed))
		}
		s.digest = nil
	}

	s.logger.Info().Str("old_pack_id", s.packID).Str("pack_id", packID).Msg("pack id changed")
	s.packID = packID
	s.generation++
	s.syncLocked(to)

	return nil
}

// Clear deletes the local file and resets the scope to unconfigured.
func (s *State) Clear(to Recipient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked(s.recipient(to))
}

func (s *State) clearLocked(to Recipient) {
	if s.packID != "" {
		path := s.packFile(s.packID)
		if err := removeIfExists(path); err != nil {
			s.logger.Warn().Err(err).Str("file", path).Msg("failed to delete pack")
			s.tell(to, models.NewMessage(models.Warning, "Failed to delete "+path))
		}
	}

	s.packID = ""
	s.digest = nil
	s.lastSync = time.Time{}
	s.generation++
}

// retire marks every queued job of the scope stale. Used before the scope
// folder is deleted.
func (s *State) retire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.packID = ""
	s.digest = nil
	s.lastSync = time.Time{}
	s.generation++
}

// PrintStatus reports the pack id, the presence of a local back-up and the
// last sync time.
func (s *State) PrintStatus(to Recipient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to = s.recipient(to)

	if s.packID == "" {
		s.tell(to, models.NewMessage(models.Plain, msgNoPackYet))
		s.tell(to, changeIDHint(s.scope))
		return
	}

	s.tell(to, models.NewMessage(models.Plain, "The current resource pack id is "+s.packID))
	if fileExists(s.packFile(s.packID)) {
		s.tell(to, models.NewMessage(models.Plain, msgBackupPresent))
	} else {
		s.tell(to, models.NewMessage(models.Warning, msgBackupMissing))
	}

	if s.lastSync.IsZero() {
		s.tell(to, models.NewMessage(models.Warning, msgNeverSynced))
	} else {
		s.tell(to, models.NewMessage(models.Plain, lastSyncLine(s.lastSync)))
	}
}

// URL returns the download URL of the current pack, or "" when unconfigured.
func (s *State) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.urlLocked()
}

func (s *State) urlLocked() string {
	if s.packID == "" {
		return ""
	}
	return s.host.PackURL(s.packID)
}

// Digest returns a copy of the SHA-1 of the local pack, or nil.
func (s *State) Digest() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return bytes.Clone(s.digest)
}

// PackID returns the current pack id, or "" when unconfigured.
func (s *State) PackID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.packID
}

// Snapshot returns a copy of the scope state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Scope:    s.scope,
		PackID:   s.packID,
		Digest:   bytes.Clone(s.digest),
		LastSync: s.lastSync,
	}
	if s.packID != "" {
		snap.HasLocal = fileExists(s.packFile(s.packID))
	}
	return snap
}

func (s *State) recipient(to Recipient) Recipient {
	if to == nil {
		return s.console
	}
	return to
}

// tell queues msg for to on the foreground queue.
func (s *State) tell(to Recipient, msg models.Message) {
	if to == nil {
		return
	}
	s.queue.Foreground(func() { to.Send(msg) })
}

// announce queues the new pack broadcast for the participants of the scope.
func (s *State) announce() {
	if s.broadcaster == nil {
		return
	}
	scope := s.scope
	s.queue.Foreground(func() {
		s.broadcaster.Broadcast(scope, models.NewMessage(models.Notice, msgNewPackAvailable))
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w %s: %w", ErrCleanup, path, err)
}
