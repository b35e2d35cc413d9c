// Package lock provides an advisory, per-path exclusive lock for the
// read-merge-write critical section of the document store.
//
// The lock is a sentinel file created next to the target with O_CREATE|O_EXCL,
// containing the PID of the owning process. Acquisition retries with backoff
// up to a bounded wait, and a sentinel left behind by a dead process is
// reclaimed once it is older than the stale threshold. The sentinel is only
// ever a coordination token between cooperating statekit processes; it offers
// no protection against writers that bypass the store.
package lock
