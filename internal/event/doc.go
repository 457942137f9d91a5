// Package event provides a pub-sub event bus for decoupled inter-component
// communication in HotTake.
//
// The client keeps a single logically-current profile and debate cache that
// several independent views (browse list, session view, profile form) need
// to observe. Rather than aliasing one mutable object across views, changes
// are published on the bus and consumers receive immutable snapshots.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - profile.updated, profile.cleared
//   - debates.refreshed
//   - session.joined, session.left, session.fetch_failed
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously and protected against panics - a panicking handler will not
// prevent other handlers from being called.
package event
