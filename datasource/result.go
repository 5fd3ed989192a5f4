package datasource

// Source reports which collaborator actually served a read.
type Source int

const (
	// SourceRemote: the value came from the system of record.
	SourceRemote Source = iota + 1

	// SourceCache: the value came from the local cache, either because the
	// device was offline or because the remote failed and the read degraded.
	SourceCache
)

// String returns the lowercase name of the source.
func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceCache:
		return "cache"
	default:
		return "unknown"
	}
}

// SyncState reports whether a successful write is committed on the remote or
// only staged locally. A pending write is durable on the device but not yet
// against the backend; callers surface it as "saved locally, will sync later"
// rather than pretending the commit happened.
type SyncState int

const (
	// SyncSynced: the remote accepted the operation.
	SyncSynced SyncState = iota + 1

	// SyncPending: the operation is staged in the local cache only.
	SyncPending
)

// String returns the lowercase name of the state.
func (s SyncState) String() string {
	switch s {
	case SyncSynced:
		return "synced"
	case SyncPending:
		return "pending"
	default:
		return "unknown"
	}
}
