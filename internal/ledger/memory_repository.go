package ledger

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	seq  int64
	txns []Transaction
}

// NewMemoryRepository builds an in-memory transaction store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Insert(_ context.Context, txn Transaction) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	txn.Seq = r.seq
	r.txns = append(r.txns, txn)
	return txn, nil
}

func (r *memoryRepository) ListByPhone(_ context.Context, phone string, limit int) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Transaction
	for _, txn := range r.txns {
		if txn.PhoneNumber == phone {
			matched = append(matched, txn)
		}
	}

	// Stable keeps insertion order among equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TransactionTime > matched[j].TransactionTime
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
