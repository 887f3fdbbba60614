package handler

import (
	"context"
	"sync"

	"github.com/viasolenergia/leads-api/internal/mail"
)

// senderStub records every dispatch attempt and can be told to fail the n-th
// one (1-based).
type senderStub struct {
	mu       sync.Mutex
	attempts []mail.Message
	failOn   int
	err      error
}

func (s *senderStub) Send(ctx context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, msg)
	if s.failOn != 0 && len(s.attempts) == s.failOn {
		return s.err
	}
	return nil
}

func (s *senderStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func (s *senderStub) message(i int) mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[i]
}
