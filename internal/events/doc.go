// Package events carries queue lifecycle notifications as serialisable
// QueueEvent values.
//
// A queue.Observer is bridged onto an EventEmitter by QueueObserver, so that
// handlers such as History can consume queue activity without depending on
// the queue's type parameters.
//
// The primary components are:
// - QueueEvent: one lifecycle notification
// - EventHandler / EventEmitter: the publish side and the consume side
// - InMemoryEventEmitter: synchronous fan-out to registered handlers
// - History: a bounded buffer of the most recent events
package events
