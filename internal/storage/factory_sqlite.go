//go:build sqlite

package storage

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

// DefaultStoreKind is sqlite when the backend is compiled in.
func DefaultStoreKind() string { return "sqlite" }
