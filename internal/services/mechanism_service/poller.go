package mechanism_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwtcode/mechanismAdapter/models"
)

type activePoll struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartPolling запускает цикл опроса механизмов. Каждый снимок сохраняется,
// публикуется в приемник телеметрии, после чего модель приводов продвигается на один такт.
func (s *mechanismService) StartPolling(_ context.Context) error {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	if s.poll != nil {
		return fmt.Errorf("polling already started")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	poll := &activePoll{cancel: cancel, done: make(chan struct{})}
	s.poll = poll

	results := s.client.StartPolling(runCtx, s.interval)
	s.logger.Info("Starting polling goroutine", "interval", s.interval, "runID", s.client.RunID())

	go func() {
		defer close(poll.done)
		defer s.logger.Info("Polling goroutine stopped")

		for snapshot := range results {
			s.store(snapshot)
			if err := s.publisher.Publish(runCtx, snapshot); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("Failed to publish telemetry", "sequence", snapshot.Sequence, "error", err)
			}
			s.sims.Step(s.interval)
		}
	}()
	return nil
}

// StopPolling останавливает цикл и ждет его завершения.
func (s *mechanismService) StopPolling(ctx context.Context) error {
	s.pollMu.Lock()
	poll := s.poll
	s.poll = nil
	s.pollMu.Unlock()

	if poll == nil {
		return nil
	}
	poll.cancel()

	select {
	case <-poll.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *mechanismService) store(snapshot *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snapshot
}

// Latest возвращает последний собранный снимок.
func (s *mechanismService) Latest() (*models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
