package viewsync

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go_listar/internal/model"
)

const keyPrefix = "listar:views:"

// Counter buffers listing view counts in redis so a read never costs a
// MySQL write. A background worker flushes the buffered counts.
type Counter struct {
	rdb *redis.Client
}

// NewCounter creates a view counter on the given redis client
func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

// Bump records one view. Failures are ignored; a lost view count does
// not fail a read.
func (c *Counter) Bump(ctx context.Context, listingID int) {
	c.rdb.Incr(ctx, keyPrefix+strconv.Itoa(listingID))
}

// Worker periodically flushes buffered view counts into MySQL
type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	db       *gorm.DB
	rdb      *redis.Client
	logger   *logrus.Entry
	interval time.Duration
}

// Config holds the configuration for the view sync worker
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *logrus.Entry
	IntervalSec int
}

// NewWorker creates a view sync worker
func NewWorker(cfg *Config) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		ctx:      ctx,
		cancel:   cancel,
		db:       cfg.DB,
		rdb:      cfg.Redis,
		logger:   cfg.Logger.WithField("component", "view-sync-worker"),
		interval: time.Duration(cfg.IntervalSec) * time.Second,
	}
}

// Start runs the flush loop until Stop is called
func (w *Worker) Start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.WithField("interval", w.interval).Info("view sync worker started")
		for {
			select {
			case <-w.ctx.Done():
				// Final flush on shutdown
				if err := w.Flush(context.Background()); err != nil {
					w.logger.WithError(err).Warn("final flush failed")
				}
				w.logger.Info("view sync worker stopped")
				return
			case <-ticker.C:
				if err := w.Flush(w.ctx); err != nil {
					w.logger.WithError(err).Warn("flush failed")
				}
			}
		}
	}()
}

// Stop stops the worker
func (w *Worker) Stop() {
	w.cancel()
}

// Flush drains all buffered counters into the listings table. Each key
// is read-and-deleted atomically (GETDEL) so a crash between redis and
// MySQL loses at most one interval of views.
func (w *Worker) Flush(ctx context.Context) error {
	var cursor uint64
	flushed := 0
	for {
		keys, next, err := w.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan view keys: %w", err)
		}

		for _, key := range keys {
			val, err := w.rdb.GetDel(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return fmt.Errorf("drain %s: %w", key, err)
			}

			id, err := strconv.Atoi(strings.TrimPrefix(key, keyPrefix))
			if err != nil {
				w.logger.WithField("key", key).Warn("malformed view key dropped")
				continue
			}
			count, err := strconv.Atoi(val)
			if err != nil || count <= 0 {
				continue
			}

			err = w.db.Model(&model.Listing{}).
				Where("id = ?", id).
				UpdateColumn("view_count", gorm.Expr("view_count + ?", count)).Error
			if err != nil {
				return fmt.Errorf("apply views for listing %d: %w", id, err)
			}
			flushed++
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if flushed > 0 {
		w.logger.WithField("listings", flushed).Debug("view counts flushed")
	}
	return nil
}
