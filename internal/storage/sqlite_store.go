package storage

import "github.com/julianstephens/habitrack/internal/storage/sqlite"

var _ Provider = (*sqlite.Store)(nil)

// NewSQLiteStore creates a store backed by the SQLite file at path
func NewSQLiteStore(path string, opts ...sqlite.Option) Provider {
	return sqlite.NewStore(path, opts...)
}
