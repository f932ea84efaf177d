// Package project models a video generation project: its lifecycle status,
// the script it owns, audio and visual artifacts, and the persisted JSON
// document that makes a project resumable.
//
// UpdateStatus is a ledger write: it always succeeds and stamps the
// modification time. Transition validity is policy owned by the pipeline; an
// explicit transition table backs the opt-in strict mode.
package project
