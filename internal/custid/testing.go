package custid

// SetFailing is a test helper that makes the in-memory allocator reject writes,
// simulating a persistence failure after the next value was computed.
func SetFailing(r Repository, fail bool) {
	if mem, ok := r.(*memoryRepository); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.failing = fail
	}
}
