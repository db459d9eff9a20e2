package repository

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithSeedCount sets how many usernames a fresh database is seeded with
// (sample list plus generated fills). Zero disables generated seeding.
func WithSeedCount(count int) Option {
	return func(s *SQLiteStore) {
		if count >= 0 {
			s.seedCount = count
		}
	}
}
