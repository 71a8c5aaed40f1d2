// Package sqlite is the durable store of the content server: admin identities
// and site sections live in one SQLite file, opened through the pure Go
// modernc.org/sqlite driver.
package sqlite
