// Package events provides entity lifecycle events and the emitter that
// dispatches them.
//
// Services emit an event after a lifecycle change has been committed:
// creation, update, soft deletion, restoration and purge. Handlers are
// registered at startup and never see an event for a change that was
// rolled back.
//
// The primary components are:
// - LifecycleEvent: a committed change to one entity
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
// - LogHandler: writes every event to the structured log
package events
