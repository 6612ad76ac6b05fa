package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pack-sync/internal/logger"
	"github.com/MKhiriev/go-pack-sync/models"
)

const syncEventsTable = "sync_events"

var syncEventColumns = []string{
	"scope", "pack_id", "outcome", "status_code", "bytes", "detail", "recorded_at",
}

// syncJournalRepository is the SQL implementation of [SyncJournal] over the
// sync_events table. Queries are built with squirrel so the same code
// serves SQLite (? placeholders) and PostgreSQL ($n placeholders).
type syncJournalRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncJournalRepository constructs a [SyncJournal] backed by db.
func NewSyncJournalRepository(db *DB, logger *logger.Logger) SyncJournal {
	logger.Debug().Msg("creating sync journal repository")
	return &syncJournalRepository{db: db, logger: logger}
}

// Record inserts ev. A zero RecordedAt is replaced with the current time.
// Errors classified as retryable are retried once.
func (r *syncJournalRepository) Record(ctx context.Context, ev models.SyncEvent) error {
	log := logger.FromContext(ctx)

	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}

	query, args, err := sq.Insert(syncEventsTable).
		Columns(syncEventColumns...).
		Values(ev.Scope, ev.PackID, string(ev.Outcome), ev.StatusCode, ev.Bytes, ev.Detail, ev.RecordedAt.UTC()).
		PlaceholderFormat(r.db.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil && r.db.retryable(err) {
		log.Warn().Err(err).Str("func", "*syncJournalRepository.Record").Msg("retrying journal write")
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		log.Err(err).Str("func", "*syncJournalRepository.Record").Msg("error inserting sync event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Recent returns up to limit events of scope ordered newest first.
// A non-positive limit returns nothing.
func (r *syncJournalRepository) Recent(ctx context.Context, scope string, limit int) ([]models.SyncEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := sq.Select(syncEventColumns...).
		From(syncEventsTable).
		Where(sq.Eq{"scope": scope}).
		OrderBy("recorded_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(r.db.placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncJournalRepository.Recent").Msg("error querying sync events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.SyncEvent, 0, limit)
	for rows.Next() {
		var (
			ev      models.SyncEvent
			outcome string
		)
		if err = rows.Scan(&ev.Scope, &ev.PackID, &outcome, &ev.StatusCode, &ev.Bytes, &ev.Detail, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ev.Outcome = models.Outcome(outcome)
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

// nopJournal discards every event. It is used when no journal DSN is set.
type nopJournal struct{}

// NewNopJournal returns a [SyncJournal] that records nothing.
func NewNopJournal() SyncJournal {
	return nopJournal{}
}

func (nopJournal) Record(context.Context, models.SyncEvent) error {
	return nil
}

func (nopJournal) Recent(context.Context, string, int) ([]models.SyncEvent, error) {
	return nil, nil
}
