package offlinerepo

import (
	"context"
	"errors"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/LazyDev-01/Dayliz-App-sub011/connectivity"
	"github.com/LazyDev-01/Dayliz-App-sub011/datasource"
	"github.com/LazyDev-01/Dayliz-App-sub011/logging"
)

// Handlers supplies the id plumbing the repository needs for a record type.
// Explicit functions instead of reflection keep the mapping under the
// entity adapter's control.
type Handlers[T any] struct {
	// GetID extracts the record's id. Empty string means unassigned.
	GetID func(record T) string

	// SetID assigns an id, used when staging an offline create.
	SetID func(record *T, id string)

	// NewID mints a fresh local id. Defaults to uuid.NewString.
	NewID func() string
}

// ReadResult is a collection read outcome: the records plus which source
// actually served them.
type ReadResult[T any] struct {
	Records []T
	Source  datasource.Source
}

// ReadItem is a single-record read outcome.
type ReadItem[T any] struct {
	Record T
	Source datasource.Source
}

// WriteResult is a write outcome. Sync tells the caller whether the record
// is committed on the remote or only staged locally.
type WriteResult[T any] struct {
	Record T
	Sync   datasource.SyncState
}

// DeleteResult is a delete outcome.
type DeleteResult struct {
	Deleted bool
	Sync    datasource.SyncState
}

// PendingWrite describes one local-only operation awaiting reconciliation.
type PendingWrite struct {
	Scope    string
	ID       string
	Deleted  bool
	StagedAt time.Time
}

// ReconcileOutcome reports what happened to one pending write during
// Reconcile. Err is nil when the remote accepted the operation.
type ReconcileOutcome struct {
	Scope   string
	ID      string
	Deleted bool
	Err     error
}

type pendingKey struct {
	scope string
	id    string
}

type pendingOp struct {
	// created marks a staged write whose record never existed on the
	// remote: the repository minted its id. Only these cancel out against
	// a later staged delete.
	created  bool
	deleted  bool
	stagedAt time.Time
}

// Repository is the offline-first policy engine, instantiated once per
// entity type.
type Repository[T any] struct {
	remote   datasource.RemoteSource[T]
	local    datasource.LocalSource[T]
	network  connectivity.Checker
	handlers Handlers[T]
	cfg      Config
	log      logging.Logger
	pending  *xsync.MapOf[pendingKey, pendingOp]
	clock    func() time.Time
}

// New wires a Repository from its collaborators. The logger may be nil.
func New[T any](
	remote datasource.RemoteSource[T],
	local datasource.LocalSource[T],
	network connectivity.Checker,
	handlers Handlers[T],
	cfg Config,
	log logging.Logger,
) (*Repository[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, &ConfigError{Field: "remote", Message: "must not be nil"}
	}
	if local == nil {
		return nil, &ConfigError{Field: "local", Message: "must not be nil"}
	}
	if network == nil {
		return nil, &ConfigError{Field: "network", Message: "must not be nil"}
	}
	if handlers.GetID == nil {
		return nil, &ConfigError{Field: "handlers.GetID", Message: "must not be nil"}
	}
	if handlers.SetID == nil {
		return nil, &ConfigError{Field: "handlers.SetID", Message: "must not be nil"}
	}
	if handlers.NewID == nil {
		handlers.NewID = uuid.NewString
	}
	if log == nil {
		log = logging.Nop()
	}

	return &Repository[T]{
		remote:   remote,
		local:    local,
		network:  network,
		handlers: handlers,
		cfg:      cfg,
		log:      log,
		pending:  xsync.NewMapOf[pendingKey, pendingOp](),
		clock:    time.Now,
	}, nil
}

// ReadCollection returns every record in the scope: remote-first, degrading
// to cached data when the remote fails, cache-only when offline.
func (r *Repository[T]) ReadCollection(ctx context.Context, scope string) (ReadResult[T], error) {
	if !r.network.Connected(ctx) {
		records, err := r.readLocalCollection(ctx, scope)
		if err != nil {
			return ReadResult[T]{}, err
		}
		return ReadResult[T]{Records: records, Source: datasource.SourceCache}, nil
	}

	records, err := r.fetchRemoteCollection(ctx, scope)
	if err != nil {
		remoteErr := datasource.AsFailure(err, datasource.KindRemote)
		if fallback, ferr := r.readLocalCollection(ctx, scope); ferr == nil {
			r.log.Warn(ctx, "remote read failed, serving cached data",
				"scope", scope, "error", err.Error())
			return ReadResult[T]{Records: fallback, Source: datasource.SourceCache}, nil
		}
		return ReadResult[T]{}, remoteErr
	}

	r.refreshCollection(ctx, scope, records)
	return ReadResult[T]{Records: records, Source: datasource.SourceRemote}, nil
}

// ReadByID returns a single record with the same source ordering as
// ReadCollection.
func (r *Repository[T]) ReadByID(ctx context.Context, scope, id string) (ReadItem[T], error) {
	if !r.network.Connected(ctx) {
		record, err := r.readLocalByID(ctx, scope, id)
		if err != nil {
			return ReadItem[T]{}, err
		}
		return ReadItem[T]{Record: record, Source: datasource.SourceCache}, nil
	}

	record, err := r.remote.GetByID(ctx, scope, id)
	if err != nil {
		remoteErr := datasource.AsFailure(err, datasource.KindRemote)
		if errors.Is(err, datasource.ErrNotFound) {
			// The remote definitively says the record is gone. Serving the
			// cached copy would resurrect it, so evict instead.
			if derr := r.local.Delete(ctx, scope, id); derr != nil {
				r.log.Warn(ctx, "cache eviction failed after remote not-found",
					"scope", scope, "id", id, "error", derr.Error())
			}
			return ReadItem[T]{}, remoteErr
		}
		if fallback, ferr := r.readLocalByID(ctx, scope, id); ferr == nil {
			r.log.Warn(ctx, "remote read failed, serving cached record",
				"scope", scope, "id", id, "error", err.Error())
			return ReadItem[T]{Record: fallback, Source: datasource.SourceCache}, nil
		}
		return ReadItem[T]{}, remoteErr
	}

	entry := datasource.Entry[T]{ID: r.handlers.GetID(record), Payload: record, CachedAt: r.clock()}
	if perr := r.local.Put(ctx, scope, entry); perr != nil {
		r.log.Warn(ctx, "cache refresh failed after remote read",
			"scope", scope, "id", id, "error", perr.Error())
	}
	return ReadItem[T]{Record: record, Source: datasource.SourceRemote}, nil
}

// Write creates or updates a record. The record is validated before any
// source is consulted; the distinction between create and update is only
// whether the id is pre-assigned.
func (r *Repository[T]) Write(ctx context.Context, scope string, record T) (WriteResult[T], error) {
	if err := validation.Validate(record); err != nil {
		return WriteResult[T]{}, datasource.NewValidationFailure(err)
	}

	if !r.network.Connected(ctx) {
		if r.cfg.WriteMode == WriteRemoteOnly {
			return WriteResult[T]{}, datasource.NewNetworkFailure("offline: this entity cannot be written without connectivity")
		}
		return r.stageWrite(ctx, scope, record)
	}

	result, err := r.remote.Write(ctx, scope, record)
	if err != nil {
		failure := datasource.AsFailure(err, datasource.KindRemote)
		if r.cfg.WriteMode == WriteLocalFallback && failure.Kind != datasource.KindAuth {
			r.log.Warn(ctx, "remote write failed, staging locally",
				"scope", scope, "error", err.Error())
			return r.stageWrite(ctx, scope, record)
		}
		return WriteResult[T]{}, failure
	}

	// The remote's representation wins: it may carry assigned ids,
	// timestamps, or computed fields.
	id := r.handlers.GetID(result)
	entry := datasource.Entry[T]{ID: id, Payload: result, CachedAt: r.clock()}
	if perr := r.local.Put(ctx, scope, entry); perr != nil {
		r.log.Warn(ctx, "cache update failed after remote write",
			"scope", scope, "id", id, "error", perr.Error())
	}
	r.pending.Delete(pendingKey{scope: scope, id: id})
	r.pending.Delete(pendingKey{scope: scope, id: r.handlers.GetID(record)})
	return WriteResult[T]{Record: result, Sync: datasource.SyncSynced}, nil
}

// Delete removes a record: remote-first, with the cache updated to match
// only after the remote accepted the delete, or staged locally for
// convenience entities when the remote is unavailable.
func (r *Repository[T]) Delete(ctx context.Context, scope, id string) (DeleteResult, error) {
	if !r.network.Connected(ctx) {
		if r.cfg.WriteMode == WriteRemoteOnly {
			return DeleteResult{}, datasource.NewNetworkFailure("offline: this entity cannot be deleted without connectivity")
		}
		return r.stageDelete(ctx, scope, id)
	}

	if err := r.remote.Delete(ctx, scope, id); err != nil {
		failure := datasource.AsFailure(err, datasource.KindRemote)
		if r.cfg.WriteMode == WriteLocalFallback && failure.Kind != datasource.KindAuth {
			r.log.Warn(ctx, "remote delete failed, staging locally",
				"scope", scope, "id", id, "error", err.Error())
			return r.stageDelete(ctx, scope, id)
		}
		return DeleteResult{}, failure
	}

	if perr := r.local.Delete(ctx, scope, id); perr != nil {
		r.log.Warn(ctx, "cache delete failed after remote delete",
			"scope", scope, "id", id, "error", perr.Error())
	}
	r.pending.Delete(pendingKey{scope: scope, id: id})
	return DeleteResult{Deleted: true, Sync: datasource.SyncSynced}, nil
}

// Pending lists the local-only operations that have not yet been accepted by
// the remote, oldest first.
func (r *Repository[T]) Pending() []PendingWrite {
	var writes []PendingWrite
	r.pending.Range(func(k pendingKey, op pendingOp) bool {
		writes = append(writes, PendingWrite{
			Scope:    k.scope,
			ID:       k.id,
			Deleted:  op.deleted,
			StagedAt: op.stagedAt,
		})
		return true
	})
	sort.Slice(writes, func(i, j int) bool {
		if !writes[i].StagedAt.Equal(writes[j].StagedAt) {
			return writes[i].StagedAt.Before(writes[j].StagedAt)
		}
		return writes[i].ID < writes[j].ID
	})
	return writes
}

// Reconcile pushes every pending local-only write to the remote. Operations
// the remote rejects stay pending and are reported with their error; the
// rest are cleared and the cache refreshed with the remote's representation.
func (r *Repository[T]) Reconcile(ctx context.Context) ([]ReconcileOutcome, error) {
	if !r.network.Connected(ctx) {
		return nil, datasource.NewNetworkFailure("offline: cannot reconcile pending writes")
	}

	var outcomes []ReconcileOutcome
	for _, w := range r.Pending() {
		key := pendingKey{scope: w.Scope, id: w.ID}
		outcome := ReconcileOutcome{Scope: w.Scope, ID: w.ID, Deleted: w.Deleted}

		if w.Deleted {
			if err := r.remote.Delete(ctx, w.Scope, w.ID); err != nil {
				outcome.Err = datasource.AsFailure(err, datasource.KindRemote)
			} else {
				r.pending.Delete(key)
			}
			outcomes = append(outcomes, outcome)
			continue
		}

		entry, err := r.local.GetByID(ctx, w.Scope, w.ID)
		if err != nil {
			// The staged record is gone from the cache; nothing left to push.
			r.pending.Delete(key)
			continue
		}

		result, err := r.remote.Write(ctx, w.Scope, entry.Payload)
		if err != nil {
			outcome.Err = datasource.AsFailure(err, datasource.KindRemote)
			outcomes = append(outcomes, outcome)
			continue
		}

		r.pending.Delete(key)
		synced := datasource.Entry[T]{ID: r.handlers.GetID(result), Payload: result, CachedAt: r.clock()}
		if synced.ID != w.ID {
			// The remote assigned its own id; drop the local placeholder.
			if derr := r.local.Delete(ctx, w.Scope, w.ID); derr != nil {
				r.log.Warn(ctx, "failed to drop local placeholder after sync",
					"scope", w.Scope, "id", w.ID, "error", derr.Error())
			}
		}
		if perr := r.local.Put(ctx, w.Scope, synced); perr != nil {
			r.log.Warn(ctx, "cache update failed after sync",
				"scope", w.Scope, "id", synced.ID, "error", perr.Error())
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// fetchRemoteCollection tries the aggregate fast path when the remote
// supports it, then the standard call. Any remote truth beats cached truth,
// so the cache is not consulted between the two.
func (r *Repository[T]) fetchRemoteCollection(ctx context.Context, scope string) ([]T, error) {
	if agg, ok := r.remote.(datasource.AggregateFetcher[T]); ok {
		records, err := agg.GetAllAggregate(ctx, scope)
		if err == nil {
			return records, nil
		}
		r.log.Warn(ctx, "aggregate fetch failed, trying standard fetch",
			"scope", scope, "error", err.Error())
	}
	return r.remote.GetAll(ctx, scope)
}

// refreshCollection mirrors a successful remote collection read into the
// cache. Writes staged while offline survive the refresh: they are re-applied
// on top of the remote snapshot until Reconcile pushes them out.
func (r *Repository[T]) refreshCollection(ctx context.Context, scope string, records []T) {
	staged := r.stagedEntries(ctx, scope)

	now := r.clock()
	entries := make([]datasource.Entry[T], len(records))
	for i, record := range records {
		entries[i] = datasource.Entry[T]{ID: r.handlers.GetID(record), Payload: record, CachedAt: now}
	}

	if err := r.local.ReplaceAll(ctx, scope, entries); err != nil {
		r.log.Warn(ctx, "cache refresh failed after remote read",
			"scope", scope, "records", len(records), "error", err.Error())
		return
	}

	for _, e := range staged.puts {
		if err := r.local.Put(ctx, scope, e); err != nil {
			r.log.Warn(ctx, "failed to restage pending write after refresh",
				"scope", scope, "id", e.ID, "error", err.Error())
		}
	}
	for _, id := range staged.deletes {
		if err := r.local.Delete(ctx, scope, id); err != nil {
			r.log.Warn(ctx, "failed to reapply pending delete after refresh",
				"scope", scope, "id", id, "error", err.Error())
		}
	}
}

type stagedState[T any] struct {
	puts    []datasource.Entry[T]
	deletes []string
}

// stagedEntries snapshots the scope's pending local-only state before a
// refresh overwrites it.
func (r *Repository[T]) stagedEntries(ctx context.Context, scope string) stagedState[T] {
	var staged stagedState[T]
	r.pending.Range(func(k pendingKey, op pendingOp) bool {
		if k.scope != scope {
			return true
		}
		if op.deleted {
			staged.deletes = append(staged.deletes, k.id)
			return true
		}
		if entry, err := r.local.GetByID(ctx, scope, k.id); err == nil {
			staged.puts = append(staged.puts, entry)
		}
		return true
	})
	return staged
}

func (r *Repository[T]) stageWrite(ctx context.Context, scope string, record T) (WriteResult[T], error) {
	id := r.handlers.GetID(record)
	minted := id == ""
	if minted {
		id = r.handlers.NewID()
		r.handlers.SetID(&record, id)
	}

	entry := datasource.Entry[T]{ID: id, Payload: record, CachedAt: r.clock()}
	if err := r.local.Put(ctx, scope, entry); err != nil {
		return WriteResult[T]{}, datasource.NewCacheFailure("staging local write", err)
	}

	key := pendingKey{scope: scope, id: id}
	op := pendingOp{created: minted, stagedAt: r.clock()}
	if prev, ok := r.pending.Load(key); ok && !prev.deleted {
		// Re-staging an earlier staged write: keep its create-ness and its
		// place in the reconcile order.
		op.created = op.created || prev.created
		op.stagedAt = prev.stagedAt
	}
	r.pending.Store(key, op)
	return WriteResult[T]{Record: record, Sync: datasource.SyncPending}, nil
}

func (r *Repository[T]) stageDelete(ctx context.Context, scope, id string) (DeleteResult, error) {
	if err := r.local.Delete(ctx, scope, id); err != nil {
		return DeleteResult{}, datasource.NewCacheFailure("staging local delete", err)
	}

	key := pendingKey{scope: scope, id: id}
	if op, ok := r.pending.Load(key); ok && !op.deleted && op.created {
		// The record only ever existed locally; the remote has nothing to
		// delete, so the pair cancels out. A staged update of a record the
		// remote already knows does not qualify: its delete must be pushed.
		r.pending.Delete(key)
		return DeleteResult{Deleted: true, Sync: datasource.SyncSynced}, nil
	}

	r.pending.Store(key, pendingOp{deleted: true, stagedAt: r.clock()})
	return DeleteResult{Deleted: true, Sync: datasource.SyncPending}, nil
}

func (r *Repository[T]) readLocalCollection(ctx context.Context, scope string) ([]T, error) {
	entries, err := r.local.GetAll(ctx, scope)
	if err != nil {
		return nil, datasource.NewCacheFailure("reading cached collection", err)
	}

	now := r.clock()
	records := make([]T, 0, len(entries))
	for _, e := range entries {
		if r.tooStale(now, e.CachedAt) {
			continue
		}
		records = append(records, e.Payload)
	}
	if len(records) == 0 && len(entries) > 0 {
		return nil, datasource.NewCacheFailure("cached collection exceeded the staleness bound", nil)
	}
	return records, nil
}

func (r *Repository[T]) readLocalByID(ctx context.Context, scope, id string) (T, error) {
	var zero T
	entry, err := r.local.GetByID(ctx, scope, id)
	if err != nil {
		return zero, datasource.NewCacheFailure("reading cached record", err)
	}
	if r.tooStale(r.clock(), entry.CachedAt) {
		return zero, datasource.NewCacheFailure("cached record exceeded the staleness bound", nil)
	}
	return entry.Payload, nil
}

func (r *Repository[T]) tooStale(now, cachedAt time.Time) bool {
	return r.cfg.MaxStaleness > 0 && now.Sub(cachedAt) > r.cfg.MaxStaleness
}
