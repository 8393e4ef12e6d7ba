package storage

// NewTestMemoryLevelDBBackend opens an empty in-memory storage.
func NewTestMemoryLevelDBBackend() (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(&Config{Scheme: SchemeMemory}); err != nil {
		return nil, err
	}
	return st, nil
}
