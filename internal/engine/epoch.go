package engine

import "sync/atomic"

// epoch is a monotonically increasing cancellation token. stop() bumps it;
// every stage compares a job's stamped epoch against the current value at
// its resumption points and silently drops stale work.
type epoch struct {
	value atomic.Int64
}

func (e *epoch) current() int64 {
	return e.value.Load()
}

func (e *epoch) bump() int64 {
	return e.value.Add(1)
}

func (e *epoch) stale(stamped int64) bool {
	return stamped != e.current()
}
