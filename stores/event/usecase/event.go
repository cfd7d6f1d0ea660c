package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/goroutine"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/base/metrics"
	"github.com/x-xyz/escrow/domain/listing"
)

const (
	defaultWorkers         = 32
	defaultQueueLength     = 1024
	defaultScheduleTimeout = 3 * time.Second
)

type EventUseCaseCfg struct {
	Repo listing.EventRepo
	// Workers bounds concurrent subscriber deliveries, 0 means the default
	Workers int
	// ScheduleTimeout is how long Publish waits for a free worker before dropping a delivery
	ScheduleTimeout time.Duration
}

type impl struct {
	repo            listing.EventRepo
	scheduleTimeout time.Duration

	mu   sync.RWMutex
	subs []listing.Subscriber

	pool      *goroutines.Pool
	wg        sync.WaitGroup
	closeOnce sync.Once
	met       metrics.Service
}

func New(cfg *EventUseCaseCfg) listing.EventUseCase {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	timeout := cfg.ScheduleTimeout
	if timeout <= 0 {
		timeout = defaultScheduleTimeout
	}
	preAlloc := workers / 4
	if preAlloc == 0 {
		preAlloc = 1
	}
	return &impl{
		repo:            cfg.Repo,
		scheduleTimeout: timeout,
		pool:            goroutines.NewPool(workers, goroutines.WithTaskQueueLength(defaultQueueLength), goroutines.WithPreAllocWorkers(preAlloc)),
		met:             metrics.New("event"),
	}
}

func (im *impl) Record(c ctx.Ctx, e *listing.Event) error {
	if e.EventId == "" {
		e.EventId = uuid.New().String()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if err := im.repo.Insert(c, e); err != nil {
		c.WithFields(log.Fields{"err": err, "type": e.Type}).Error("repo.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Subscribe(s listing.Subscriber) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.subs = append(im.subs, s)
}

// Publish hands the events of one operation to every subscriber. Each
// subscriber gets them in order on one worker.
func (im *impl) Publish(c ctx.Ctx, events ...listing.Event) {
	if len(events) == 0 {
		return
	}

	im.mu.RLock()
	subs := make([]listing.Subscriber, len(im.subs))
	copy(subs, im.subs)
	im.mu.RUnlock()

	for _, s := range subs {
		s := s
		im.wg.Add(1)
		err := im.pool.ScheduleWithTimeout(im.scheduleTimeout, func() {
			defer im.wg.Done()
			goroutine.Run(func() { im.deliver(c, s, events) }, goroutine.WithName(s.Name()))
		})
		if err != nil {
			im.wg.Done()
			c.WithFields(log.Fields{
				"err":        err,
				"subscriber": s.Name(),
				"events":     len(events),
			}).Error("failed to ScheduleWithTimeout")
			im.met.BumpSum("delivery.dropped", float64(len(events)), "subscriber", s.Name())
		}
	}
}

func (im *impl) deliver(c ctx.Ctx, s listing.Subscriber, events []listing.Event) {
	for _, e := range events {
		if err := s.Handle(c, e); err != nil {
			c.WithFields(log.Fields{
				"err":        err,
				"subscriber": s.Name(),
				"event":      e.EventId,
				"type":       e.Type,
			}).Warn("subscriber.Handle failed")
			im.met.BumpSum("delivery", 1, "subscriber", s.Name(), "result", "failed")
			continue
		}
		im.met.BumpSum("delivery", 1, "subscriber", s.Name(), "result", "ok")
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.EventFindAllOptionsFunc) ([]*listing.Event, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Close() {
	im.closeOnce.Do(func() {
		im.wg.Wait()
		im.pool.Release()
	})
}
