package custid

import "context"

// Service exposes customer id allocation.
type Service struct {
	repo Repository
}

// NewService creates a new allocator service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Next issues a fresh customer id. The returned id is the already-incremented
// value and is never handed out twice.
func (s *Service) Next(ctx context.Context) (string, error) {
	return s.repo.Next(ctx)
}
