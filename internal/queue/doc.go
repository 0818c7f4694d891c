// Package queue provides BoundedQueue, an in-memory work queue that runs a
// caller-supplied worker over queued items with a fixed maximum parallelism.
//
// Items are started in the order they were enqueued, subject to slot
// availability; completion order is unordered when more than one slot exists.
// Each item's outcome is reported to an Observer. A failing or panicking
// worker affects only its own item: the queue keeps scheduling and never
// enters a failed state.
//
// The queue has no timeout mechanism. A worker that never returns holds its
// slot for the lifetime of the process.
package queue
