package pack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/MKhiriev/go-pack-sync/internal/adapter"
	"github.com/MKhiriev/go-pack-sync/internal/copier"
	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/models"
)

// syncJob is one background run of the sync protocol. It captures the scope
// state at queue time; results are applied only while the state generation
// still matches.
type syncJob struct {
	state      *State
	to         Recipient
	packID     string
	generation uint64
	hasLocal   bool
}

func (j syncJob) run(ctx context.Context) {
	s := j.state
	log := logger.FromContext(ctx).With().
		Str("scope", scopeLabel(s.scope)).
		Str("pack_id", j.packID).
		Bool("has_local", j.hasLocal).
		Logger()
	ctx = log.WithContext(ctx)

	if !j.current() {
		j.record(ctx, models.SyncEvent{Outcome: models.OutcomeSuperseded, Detail: ErrSuperseded.Error()})
		return
	}

	res, err := s.host.Fetch(ctx, j.packID, !j.hasLocal)
	if err != nil {
		j.networkFailure(ctx, 0, err)
		return
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK && !j.hasLocal:
		j.download(ctx, res)
	case res.StatusCode == http.StatusOK:
		j.verify(ctx)
	case res.StatusCode == http.StatusNotFound && j.hasLocal:
		j.upload(ctx)
	case res.StatusCode == http.StatusNotFound:
		j.remoteGone(ctx)
	default:
		log.Warn().Int("status", res.StatusCode).Msg("unexpected response from pack host")
		j.tell(models.Warning, fmt.Sprintf("Got unexpected response code %d from the resource pack server.", res.StatusCode))
		j.record(ctx, models.SyncEvent{
			Outcome:    models.OutcomeUnexpectedStatus,
			StatusCode: res.StatusCode,
			Detail:     ErrUnexpectedStatus.Error(),
		})
	}
}

// current reports whether the scope still runs the generation of the job.
func (j syncJob) current() bool {
	j.state.mu.Lock()
	defer j.state.mu.Unlock()

	return j.state.generation == j.generation
}

// download streams the GET body into {id}.zip.part and renames it into
// place once complete.
func (j syncJob) download(ctx context.Context, res *adapter.FetchResult) {
	s := j.state
	log := logger.FromContext(ctx)

	j.tell(models.Notice, msgDownloading)

	final := s.packFile(j.packID)
	part := final + partExt

	f, err := os.Create(part)
	if err != nil {
		j.downloadFailure(ctx, fmt.Errorf("%w: %w", ErrLocalIO, err))
		return
	}

	result, err := copier.Copy(res.Body, f, copier.Options{
		Digest:      true,
		CloseSink:   true,
		Progress:    j.progress(),
		TotalLength: res.ContentLength,
	})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(part)
		if errors.Is(err, copier.ErrDigestUnavailable) {
			j.capabilityFailure(ctx, err)
			return
		}
		j.downloadFailure(ctx, err)
		return
	}

	s.mu.Lock()
	if s.generation != j.generation {
		s.mu.Unlock()
		_ = os.Remove(part)
		log.Info().Msg("scope changed during download, downloaded pack discarded")
		j.record(ctx, models.SyncEvent{Outcome: models.OutcomeSuperseded, Bytes: result.Written, Detail: ErrSuperseded.Error()})
		return
	}
	if err = os.Rename(part, final); err != nil {
		s.mu.Unlock()
		_ = os.Remove(part)
		j.downloadFailure(ctx, fmt.Errorf("%w: %w", ErrLocalIO, err))
		return
	}
	s.digest = result.Digest
	s.lastSync = s.now()
	s.mu.Unlock()

	log.Info().Int64("bytes", result.Written).Msg("pack downloaded")

	j.tell(models.Notice, msgDownloaded)
	s.announce()

	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeDownloaded, StatusCode: http.StatusOK, Bytes: result.Written})
}

// verify handles HEAD 200 with a local copy: nothing is transferred.
func (j syncJob) verify(ctx context.Context) {
	s := j.state

	s.mu.Lock()
	if s.generation != j.generation {
		s.mu.Unlock()
		j.record(ctx, models.SyncEvent{Outcome: models.OutcomeSuperseded, StatusCode: http.StatusOK, Detail: ErrSuperseded.Error()})
		return
	}
	if s.digest == nil {
		if err := s.rehashLocked(); err != nil {
			s.mu.Unlock()
			if errors.Is(err, ErrDigestUnavailable) {
				j.capabilityFailure(ctx, err)
				return
			}
			j.tell(models.Failure, "Failed to read the local resource pack: "+err.Error())
			j.record(ctx, models.SyncEvent{Outcome: models.OutcomeFailed, StatusCode: http.StatusOK, Detail: err.Error()})
			return
		}
	}
	s.lastSync = s.now()
	s.mu.Unlock()

	j.tell(models.Success, msgSyncSucceeded)
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeVerified, StatusCode: http.StatusOK})
}

// upload handles 404 with a local copy: the local file is posted back.
func (j syncJob) upload(ctx context.Context) {
	s := j.state
	log := logger.FromContext(ctx)

	f, err := os.Open(s.packFile(j.packID))
	if err != nil {
		j.uploadFailure(ctx, fmt.Errorf("%w: %w", ErrLocalIO, err))
		return
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		j.uploadFailure(ctx, fmt.Errorf("%w: %w", ErrLocalIO, err))
		return
	}

	j.tell(models.Notice, msgUploading)

	res, err := s.host.Upload(ctx, j.packID, f, info.Size(), j.progress())
	if err != nil {
		if errors.Is(err, adapter.ErrPackRead) {
			j.uploadFailure(ctx, fmt.Errorf("%w: %w", ErrLocalIO, err))
			return
		}
		j.networkFailure(ctx, http.StatusNotFound, err)
		return
	}

	j.tell(models.Notice, msgUploaded)

	if res.StatusCode != http.StatusOK {
		log.Warn().Int("status", res.StatusCode).Msg("pack host rejected upload")
		j.tell(models.Failure, fmt.Sprintf("Failed to upload resource pack: code is %d", res.StatusCode))
		j.record(ctx, models.SyncEvent{
			Outcome:    models.OutcomeUploadRejected,
			StatusCode: res.StatusCode,
			Bytes:      res.Written,
		})
		return
	}

	s.mu.Lock()
	if s.generation != j.generation {
		s.mu.Unlock()
		j.record(ctx, models.SyncEvent{Outcome: models.OutcomeSuperseded, StatusCode: res.StatusCode, Bytes: res.Written, Detail: ErrSuperseded.Error()})
		return
	}
	s.lastSync = s.now()
	s.mu.Unlock()

	log.Info().Int64("bytes", res.Written).Msg("pack uploaded")
	s.announce()
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeUploaded, StatusCode: res.StatusCode, Bytes: res.Written})
}

// remoteGone handles 404 without a local copy: the pack id is dropped.
func (j syncJob) remoteGone(ctx context.Context) {
	s := j.state

	s.mu.Lock()
	if s.generation != j.generation {
		s.mu.Unlock()
		j.record(ctx, models.SyncEvent{Outcome: models.OutcomeSuperseded, StatusCode: http.StatusNotFound, Detail: ErrSuperseded.Error()})
		return
	}
	s.packID = ""
	s.digest = nil
	s.generation++
	s.mu.Unlock()

	logger.FromContext(ctx).Warn().Msg("pack host no longer has the pack, scope cleared")
	j.tell(models.Failure, msgRemoteGone)
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeRemoteGone, StatusCode: http.StatusNotFound, Detail: ErrRemoteGone.Error()})
}

func (j syncJob) networkFailure(ctx context.Context, status int, err error) {
	logger.FromContext(ctx).Err(err).Msg("can't reach pack host")

	if errors.Is(err, adapter.ErrMalformedURL) {
		j.tell(models.Failure, err.Error())
	} else {
		j.tell(models.Failure, "Can't connect to resource pack server: "+err.Error())
	}
	j.record(ctx, models.SyncEvent{
		Outcome:    models.OutcomeFailed,
		StatusCode: status,
		Detail:     fmt.Errorf("%w: %w", ErrNetwork, err).Error(),
	})
}

func (j syncJob) downloadFailure(ctx context.Context, err error) {
	logger.FromContext(ctx).Err(err).Msg("pack download failed")
	j.tell(models.Failure, "Failed to download resource pack from the resource pack server: "+err.Error())
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeFailed, StatusCode: http.StatusOK, Detail: err.Error()})
}

func (j syncJob) uploadFailure(ctx context.Context, err error) {
	logger.FromContext(ctx).Err(err).Msg("pack upload failed")
	j.tell(models.Failure, "Failed to upload the resource pack to the resource pack server: "+err.Error())
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeFailed, StatusCode: http.StatusNotFound, Detail: err.Error()})
}

func (j syncJob) capabilityFailure(ctx context.Context, err error) {
	logger.FromContext(ctx).Error().Err(err).Msg("SHA-1 is not supported on this host")
	j.tell(models.Fatal, msgNoSHA1)
	j.record(ctx, models.SyncEvent{Outcome: models.OutcomeFailed, Detail: err.Error()})
}

func (j syncJob) progress() copier.ProgressFunc {
	return func(percent float64) {
		j.tell(models.Progress, "Progress: "+copier.FormatPercent(percent))
	}
}

func (j syncJob) tell(tone models.Tone, text string) {
	j.state.tell(j.to, models.NewMessage(tone, text))
}

// record appends the outcome to the journal. Journal failures are logged
// and otherwise ignored.
func (j syncJob) record(ctx context.Context, ev models.SyncEvent) {
	s := j.state
	if s.journal == nil {
		return
	}

	ev.Scope = s.scope
	ev.PackID = j.packID
	ev.RecordedAt = s.now()

	if err := s.journal.Record(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("outcome", string(ev.Outcome)).Msg("failed to record sync event")
	}
}
