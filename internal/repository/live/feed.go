package live

import (
	"context"
	"encoding/json"

	"github.com/mover-dashboard/dispatch"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// Subscribe returns the stream of changes written by any process sharing the
// prefix. The channel is closed when ctx is done. Malformed messages are
// skipped.
func (s *Store) Subscribe(ctx context.Context) (<-chan ingest.Change, error) {
	const op = "RedisStore.Subscribe"

	ps := s.rdb.Subscribe(ctx, s.channel())
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, dispatch.OpError(op, err)
	}

	out := make(chan ingest.Change)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var c ingest.Change
				if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
					continue
				}

				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
