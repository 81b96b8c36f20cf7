package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Audit Publisher Test Suite
// =============================================================================
// Justification for unit tests: the publisher stamps IDs and timestamps and
// the worker provides the only decoupling between the sweep loop and the
// audit sink; both behaviors are invisible to end-to-end runs.

type PublisherSuite struct {
	suite.Suite
	store     *InMemoryStore
	publisher *Publisher
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.publisher = NewPublisher(s.store)
}

func (s *PublisherSuite) TestEmit() {
	ctx := context.Background()

	s.Run("stamps id and timestamp", func() {
		err := s.publisher.Emit(ctx, Event{
			RunID:     "run-1",
			Action:    ActionDisabled,
			Principal: "admin.jsmith",
		})
		s.NoError(err)

		events, err := s.store.ListByRun(ctx, "run-1")
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.NotEmpty(events[0].ID)
		s.False(events[0].Timestamp.IsZero())
	})

	s.Run("preserves caller timestamp", func() {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		err := s.publisher.Emit(ctx, Event{
			RunID:     "run-2",
			Action:    ActionNotified,
			Principal: "admin.mlopez",
			Timestamp: at,
		})
		s.NoError(err)

		events, _ := s.store.ListByRun(ctx, "run-2")
		s.Require().Len(events, 1)
		s.Equal(at, events[0].Timestamp)
	})

	s.Run("list filters by run", func() {
		_ = s.publisher.Emit(ctx, Event{RunID: "run-a", Action: ActionDeleted, Principal: "x"})
		_ = s.publisher.Emit(ctx, Event{RunID: "run-b", Action: ActionDeleted, Principal: "y"})

		events, err := s.publisher.List(ctx, "run-a")
		s.NoError(err)
		s.Len(events, 1)
		s.Equal("x", events[0].Principal)
	})
}

func (s *PublisherSuite) TestWorker() {
	s.Run("drains inbox into store and stops on close", func() {
		inbox := make(chan Event, 2)
		store := NewInMemoryStore()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		worker := NewWorker(store, inbox, logger)

		inbox <- Event{RunID: "run-w", Action: ActionDisabled, Principal: "a"}
		inbox <- Event{RunID: "run-w", Action: ActionDeleted, Principal: "b"}
		close(inbox)

		err := worker.Run(context.Background())
		s.NoError(err)

		events, _ := store.ListByRun(context.Background(), "run-w")
		s.Len(events, 2)
	})

	s.Run("stops on context cancellation", func() {
		inbox := make(chan Event)
		worker := NewWorker(NewInMemoryStore(), inbox, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := worker.Run(ctx)
		s.ErrorIs(err, context.Canceled)
	})
}
