// Package repository defines the username store interface and its SQLite
// implementation.
package repository

import "context"

// Store provides read/write access to the taken-username table.
type Store interface {
	// Exists reports whether username is already taken (case-insensitive).
	Exists(ctx context.Context, username string) (bool, error)

	// Taken reports which of the given usernames already exist, keyed by
	// their lowercased form.
	Taken(ctx context.Context, usernames []string) (map[string]bool, error)

	// Add records username as taken. Adding an existing username is a no-op.
	Add(ctx context.Context, username string) error

	// Count returns the number of stored usernames.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}
