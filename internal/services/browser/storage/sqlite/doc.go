// Package sqlite provides the browser persistence adapter backed by SQLite.
package sqlite
