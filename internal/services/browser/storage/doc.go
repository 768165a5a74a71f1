// Package storage declares persistence interfaces for browser-owned data:
// console users, per-user settings and server groups.
package storage
