// Package catalog maintains a SQLite index of projects so listing and
// lookup do not require walking the output directory. The project JSON
// document stays authoritative; the catalog is a queryable mirror kept
// current by the pipeline after every save.
package catalog
