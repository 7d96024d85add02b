package repositories

import (
	"context"
	"sync"
)

// MemoryStateRepository je StateStore u procesu - više sesija deli jednu
// instancu, pa služi i kao transport za lokalni razvoj i testove.
type MemoryStateRepository struct {
	mu          sync.Mutex
	values      map[string][]byte
	subscribers map[int]func(StateEvent)
	nextID      int
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		values:      make(map[string][]byte),
		subscribers: make(map[int]func(StateEvent)),
	}
}

func (r *MemoryStateRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (r *MemoryStateRepository) Save(_ context.Context, key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	r.mu.Lock()
	r.values[key] = copied
	handlers := make([]func(StateEvent), 0, len(r.subscribers))
	for _, handler := range r.subscribers {
		handlers = append(handlers, handler)
	}
	r.mu.Unlock()

	event := StateEvent{Key: key, NewValue: copied}
	for _, handler := range handlers {
		handler(event)
	}
	return nil
}

func (r *MemoryStateRepository) Subscribe(ctx context.Context, handler func(StateEvent)) error {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subscribers[id] = handler
	r.mu.Unlock()

	go func() {
		<-ctx.Done()

		r.mu.Lock()
		delete(r.subscribers, id)
		r.mu.Unlock()
	}()

	return nil
}
