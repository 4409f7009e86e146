package service

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/totegamma/filmapi/internal/domain"
)

var tracer = otel.Tracer("signal")

// EventChannel is the redis channel catalog changes are published on.
const EventChannel = "filmapi:events"

// SignalService fans committed catalog changes out through redis pub/sub. A
// service built without a redis client drops every event.
type SignalService struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewSignalService(redisClient *redis.Client, log *zap.Logger) *SignalService {
	return &SignalService{
		rdb: redisClient,
		log: log.Named("signal"),
	}
}

// Enabled reports whether events leave the process.
func (s *SignalService) Enabled() bool {
	return s.rdb != nil
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {
	if s.rdb == nil {
		return nil
	}

	ctx, span := tracer.Start(ctx, "Signal.Service.Publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("type", string(event.Type)),
		attribute.String("kind", event.Kind.String()),
		attribute.Int64("id", event.ID),
	)

	jsonstr, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = s.rdb.Publish(ctx, EventChannel, jsonstr).Err()
	if err != nil {
		span.RecordError(err)
		s.log.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.String("kind", event.Kind.String()),
			zap.Int64("id", event.ID),
			zap.Error(err),
		)
		return errors.Wrap(err, "SignalService.Publish")
	}

	return nil
}

// Realtime relays published events to output until ctx is done. Only events
// whose kind was last sent on filter are relayed; nothing is relayed before the
// first filter arrives. An empty filter selects every kind.
func (s *SignalService) Realtime(ctx context.Context, filter <-chan []domain.Kind, output chan<- domain.Event) error {
	if s.rdb == nil {
		return errors.New("SignalService.Realtime: redis is not configured")
	}

	pubsub := s.rdb.Subscribe(ctx, EventChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "SignalService.Realtime: subscribe")
	}
	messages := pubsub.Channel()

	var kinds []domain.Kind
	listening := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-filter:
			if !ok {
				return nil
			}
			kinds = next
			listening = true
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if !listening {
				continue
			}

			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.log.Debug("dropping malformed event", zap.String("payload", msg.Payload), zap.Error(err))
				continue
			}
			if len(kinds) > 0 && !slices.Contains(kinds, event.Kind) {
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
