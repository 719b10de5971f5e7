package cart

// MemoryStore keeps the cart in memory only. It backs tests and serves as
// the fallback when the durable store cannot be opened.
type MemoryStore struct {
	items []LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *MemoryStore) Save(items []LineItem) {
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
}
