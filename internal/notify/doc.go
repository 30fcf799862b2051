// Package notify owns the lifecycle of transient notifications.
//
// A Scheduler creates notifications (Push, Success, Error, Info) by
// dispatching AddNotification actions and removes them again when their timer
// fires. It subscribes to the store, so a notification dismissed by the user
// or evicted from the bounded queue has its timer cancelled no matter which
// component removed it.
//
// Each notification expires after Delay(age, position): the base timeout
// minus its age, plus a stagger per queue position, never below MinTimeout.
// Timers are recomputed only when a new notification arrives, so dismissing
// one does not move the expiry of the others.
package notify
