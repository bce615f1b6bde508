package query

import (
	"container/list"
	"time"
)

// store is an LRU map of successful results. It is not safe for concurrent
// use; Cache guards it with its own mutex.
type store struct {
	capacity int
	items    map[Key]*list.Element
	lru      *list.List
}

type storeItem struct {
	key       Key
	value     any
	fetchedAt time.Time
}

func newStore(capacity int) *store {
	return &store{
		capacity: capacity,
		items:    make(map[Key]*list.Element),
		lru:      list.New(),
	}
}

// get returns the stored item for key and marks it most recently used.
func (s *store) get(key Key) (*storeItem, bool) {
	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	s.lru.MoveToFront(elem)
	return elem.Value.(*storeItem), true
}

// set adds or replaces the value for key.
func (s *store) set(key Key, value any, at time.Time) {
	if elem, ok := s.items[key]; ok {
		s.lru.MoveToFront(elem)
		item := elem.Value.(*storeItem)
		item.value = value
		item.fetchedAt = at
		return
	}

	elem := s.lru.PushFront(&storeItem{key: key, value: value, fetchedAt: at})
	s.items[key] = elem

	if s.lru.Len() > s.capacity {
		s.evictOldest()
	}
}

func (s *store) remove(key Key) {
	if elem, ok := s.items[key]; ok {
		s.lru.Remove(elem)
		delete(s.items, key)
	}
}

// evictOldest removes the least recently used entry.
func (s *store) evictOldest() {
	elem := s.lru.Back()
	if elem == nil {
		return
	}
	s.lru.Remove(elem)
	delete(s.items, elem.Value.(*storeItem).key)
}

func (s *store) clear() {
	s.items = make(map[Key]*list.Element)
	s.lru = list.New()
}

func (s *store) len() int {
	return s.lru.Len()
}
