// Package kafkaconsumer consumes data-change events and purges the cached
// query results of the affected entry types.
package kafkaconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/openbiodata/beacon-api/internal/cache"
	obs "github.com/openbiodata/beacon-api/internal/core/observability"
	"github.com/openbiodata/beacon-api/internal/invalidation"
	mylog "github.com/openbiodata/beacon-api/internal/logger"
	"github.com/openbiodata/beacon-api/internal/service/cached"
)

type Consumer struct {
	cfg    Config
	logger *slog.Logger
	cache  cache.Interface
	dedupe *seqDedupe
	zlog   *zerolog.Logger
}

func New(cfg Config, logger *slog.Logger, c cache.Interface) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		cfg:    cfg,
		logger: logger,
		cache:  c,
		dedupe: newSeqDedupe(cfg.DedupeSize),
	}
}

// consumes data-change events from kafka and purges affected cache entries
func (c *Consumer) Start(ctx context.Context) error {
	if c.cache == nil {
		return errors.New("kafkaconsumer: missing cache dependency")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Group.Session.Timeout = c.cfg.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.cfg.Heartbeat
	cfg.Consumer.Group.Rebalance.Timeout = c.cfg.RebalanceTimeout
	if c.cfg.InitialOffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(c.cfg.Brokers, c.cfg.GroupID, cfg)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer func() { _ = group.Close() }()

	base := mylog.WithComponent(context.Background(), "kafka_consumer")
	zl := mylog.Build(mylog.Config{
		Level:     "info",
		Component: "kafka_consumer",
	}, nil)
	c.zlog = mylog.FromContext(base, &zl)

	handler := &groupHandler{process: c.ProcessOne}

	c.logger.Info("kafka invalidation consumer starting",
		"brokers", c.cfg.Brokers, "topic", c.cfg.Topic, "group", c.cfg.GroupID)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("kafka invalidation consumer shutting down")
			return nil
		default:
			if err := group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
				c.logger.Error("consumer error", "err", err)
				c.zlog.Error().Err(err).
					Strs("brokers", c.cfg.Brokers).
					Str("topic", c.cfg.Topic).
					Msg("kafka consumer error")
				time.Sleep(2 * time.Second)
			}
		}
	}
}

// process a single data-change message
func (c *Consumer) ProcessOne(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var ev invalidation.Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		obs.IncKafkaConsumerError("decode")

		mylog.FromContext(ctx, c.zlog).Error().
			Str("kind", "decode").
			Str("topic", msg.Topic).
			Int32("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("kafka error")

		return fmt.Errorf("json decode: %w", err)
	}

	if err := ev.Validate(); err != nil {
		// malformed events are counted and skipped, not retried
		obs.IncKafkaConsumerError("validate")
		c.logger.Warn("dropping invalid event",
			"err", err, "topic", msg.Topic, "offset", msg.Offset)
		return nil
	}

	if ev.Seq > 0 && !c.dedupe.shouldApply(ev.DedupeKey(), ev.Seq) {
		c.logger.Debug("stale event (skipping)",
			"entry_type", ev.EntryType, "record_id", ev.RecordID, "seq", ev.Seq)
		return nil
	}

	prefix := cached.KeyPrefix(ev.EntryType)
	deleted, err := c.cache.DelPrefix(ctx, prefix)
	if err != nil {
		obs.IncKafkaConsumerError("redis_del")
		obs.ObserveInvalidation(ev.Op, ev.EntryType, 0, err)

		mylog.FromContext(ctx, c.zlog).Error().
			Str("kind", "redis_del").
			Str("topic", msg.Topic).
			Int32("partition", msg.Partition).
			Str("prefix", prefix).
			Msg("kafka error")

		return fmt.Errorf("purge prefix %q: %w", prefix, err)
	}

	obs.ObserveInvalidation(ev.Op, ev.EntryType, deleted, nil)
	c.logger.Debug("invalidated cached queries",
		"entry_type", ev.EntryType, "op", ev.Op, "keys", deleted)

	mylog.FromContext(ctx, c.zlog).Info().
		Str("event", "invalidation").
		Str("op", ev.Op).Str("entry_type", ev.EntryType).
		Int("keys", deleted).
		Msg("invalidated cached queries")

	return nil
}
