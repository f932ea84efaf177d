// Package pipeline sequences the generation phases over a project: drafting,
// synthesis, visuals, composition, and upload. The Manager runs phase
// handlers in lifecycle order, persists the project document after every
// status change, and mirrors each change into the catalog. Resumption follows
// the recorded status: drafts restart from scratch, ready-to-upload projects
// go straight to upload, and intermediate statuses are rejected with a typed
// error.
package pipeline
