package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

// Serializable values are stored by their own encoding instead of json.
type Serializable interface {
	Serialize() ([]byte, error)
}
