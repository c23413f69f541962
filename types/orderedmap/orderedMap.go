package orderedmap

/*
	Insertion-ordered map used wherever declaration order is load-bearing
	(child command registries, flag sets). Backed by
	github.com/wk8/go-ordered-map; this wrapper pins the API surface the
	rest of the module relies on.
*/
import (
	wk8 "github.com/wk8/go-ordered-map/v2"
)

// Iterator starting at OrderedMap.Front or OrderedMap.Back
type Iterator[K comparable, V any] struct {
	Key     *K
	Value   V
	forward bool
	pair    *wk8.Pair[K, V]
}

// OrderedMap definition data is stored in insertion order
type OrderedMap[K comparable, V any] struct {
	store *wk8.OrderedMap[K, V]
}

func newIterator[K comparable, V any](o *OrderedMap[K, V], forward bool) *Iterator[K, V] {
	if o == nil || o.store.Len() == 0 {
		return nil
	}

	iter := &Iterator[K, V]{
		forward: forward,
	}

	if forward {
		iter.pair = o.store.Oldest()
	} else {
		iter.pair = o.store.Newest()
	}
	iter.Key = &iter.pair.Key
	iter.Value = iter.pair.Value

	return iter
}

// Next advances in the iterator's direction or returns nil when exhausted
func (n *Iterator[K, V]) Next() *Iterator[K, V] {
	if n == nil || n.pair == nil {
		return nil
	}

	if n.forward {
		n.pair = n.pair.Next()
	} else {
		n.pair = n.pair.Prev()
	}

	if n.pair == nil {
		return nil
	}
	n.Key = &n.pair.Key
	n.Value = n.pair.Value

	return n
}

// Prev steps against the iterator's direction or returns nil when exhausted
func (n *Iterator[K, V]) Prev() *Iterator[K, V] {
	if n == nil || n.pair == nil {
		return nil
	}

	if n.forward {
		n.pair = n.pair.Prev()
	} else {
		n.pair = n.pair.Next()
	}

	if n.pair == nil {
		return nil
	}
	n.Key = &n.pair.Key
	n.Value = n.pair.Value

	return n
}

// NewOrderedMap creates a new OrderedMap of type K
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: wk8.New[K, V](),
	}
}

// Set will store a key-value pair. If the key already exists,
// it will overwrite the existing key-value pair without changing its position.
func (o *OrderedMap[K, V]) Set(key K, val V) {
	o.store.Set(key, val)
}

// Get will return the value associated with the key.
// If the key doesn't exist, the second return value will be false.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	return o.store.Get(key)
}

// Iterator is used to loop through the stored key-value pairs.
// The returned anonymous function returns the index, key and value.
func (o *OrderedMap[K, V]) Iterator() func() (*int, *K, V) {
	pair := o.store.Oldest()
	j := 0
	return func() (_ *int, _ *K, _ V) {
		if pair == nil {
			return
		}

		current := pair
		j++
		pair = pair.Next()

		return func() *int { v := j - 1; return &v }(), &current.Key, current.Value
	}
}

// Delete will remove the key and its associated value.
func (o *OrderedMap[K, V]) Delete(key K) {
	o.store.Delete(key)
}

// Count returns the count of keys in OrderedMap
func (o *OrderedMap[K, V]) Count() int {
	return o.store.Len()
}

// Front returns an iterator pointing to the oldest (inserted-first) pair
func (o *OrderedMap[K, V]) Front() *Iterator[K, V] {
	return newIterator[K, V](o, true)
}

// Back returns an Iterator pointing to the newest (inserted-last) pair
func (o *OrderedMap[K, V]) Back() *Iterator[K, V] {
	return newIterator[K, V](o, false)
}
