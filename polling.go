package mechanism

import (
	"context"
	"time"

	"github.com/iwtcode/mechanismAdapter/models"
)

// StartPolling запускает фоновый цикл, который с заданным периодом выполняет Periodic.
// Проходы выполняются строго последовательно: следующий начинается только после
// того, как предыдущий снимок забран из канала. Опрос прекращается при отмене контекста.
// Неположительный interval заменяется на Config.TickMs.
func (c *Client) StartPolling(ctx context.Context, interval time.Duration) <-chan *models.Snapshot {
	if interval <= 0 {
		interval = c.config.tick()
	}
	results := make(chan *models.Snapshot)

	go func() {
		defer close(results)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.logger.Info("polling stopped: context cancelled")
				return
			case <-ticker.C:
				snapshot := c.Periodic()
				select {
				case results <- snapshot:
				case <-ctx.Done():
					c.logger.Info("polling stopped: context cancelled")
					return
				}
			}
		}
	}()

	return results
}
