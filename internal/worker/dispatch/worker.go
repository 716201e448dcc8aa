package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/service"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/outbox"
	"github.com/safebite/safebite/internal/setup"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// maxAttempts is how many times a job is tried before it is dropped.
const maxAttempts = 5

// Notifier delivers nearby-user notifications. The engine only emits the
// payload; delivery belongs to an external system behind this interface.
type Notifier interface {
	NotifyNearby(ctx context.Context, notification types.NearbyNotification) error
}

// LogNotifier is the default notifier. It records the hand-off and drops
// it, for deployments without a delivery backend.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

// NotifyNearby logs the notification payload.
func (n *LogNotifier) NotifyNearby(_ context.Context, notification types.NearbyNotification) error {
	n.logger.Info("Nearby notification emitted",
		zap.Uint64("itemID", notification.ItemID),
		zap.String("itemName", notification.ItemName),
		zap.Float64("lat", notification.Latitude),
		zap.Float64("lng", notification.Longitude))
	return nil
}

// Worker consumes the outbox queue: it claims due jobs in batches, fans
// them out to handlers, and re-enqueues failures with exponential delay.
// Every handler is idempotent, so a job that was claimed but crashed
// mid-flight may be replayed without harm.
type Worker struct {
	queue       *outbox.Queue
	aggregation *service.AggregationService
	reputation  *service.ReputationService
	challenges  *service.ChallengeService
	notifier    Notifier
	metrics     *Metrics
	clock       clockwork.Clock
	batchSize   int
	poll        time.Duration
	logger      *zap.Logger
}

// New creates a dispatch worker wired from the app. Metrics are created
// once per process and shared: loops running side by side report into the
// same collectors, and registering twice would fail.
func New(app *setup.App, notifier Notifier, metrics *Metrics, logger *zap.Logger) *Worker {
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	return &Worker{
		queue:       app.Queue,
		aggregation: app.AggregationService,
		reputation:  app.ReputationService,
		challenges:  app.ChallengeService,
		notifier:    notifier,
		metrics:     metrics,
		clock:       app.Clock,
		batchSize:   app.Config.Worker.DispatchBatchSize,
		poll:        time.Duration(app.Config.Worker.DispatchPollMS) * time.Millisecond,
		logger:      logger.Named("dispatch"),
	}
}

// Start runs the dispatch loop until the context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Dispatch worker started",
		zap.Int("batchSize", w.batchSize),
		zap.Duration("pollInterval", w.poll))

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		handled, err := w.runBatch(ctx)
		if err != nil {
			w.logger.Error("Dispatch batch failed", zap.Error(err))
		}

		// Drain back-to-back while jobs are due; poll when the queue is
		// quiet.
		if handled > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Dispatch worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// runBatch claims and handles one batch of due jobs. Returns how many jobs
// were claimed.
func (w *Worker) runBatch(ctx context.Context) (int, error) {
	jobs, err := w.queue.Claim(ctx, w.batchSize, w.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to claim jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	if depth, err := w.queue.Size(ctx); err == nil {
		w.metrics.queueDepth.Set(float64(depth))
	}

	p := pool.New().WithContext(ctx)
	for _, job := range jobs {
		p.Go(func(ctx context.Context) error {
			w.handleJob(ctx, job)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return len(jobs), err
	}

	return len(jobs), nil
}

// handleJob runs one job and settles its outcome: success, retry with
// delay, or drop after the attempt budget is spent.
func (w *Worker) handleJob(ctx context.Context, job *outbox.Job) {
	start := w.clock.Now()
	err := w.dispatch(ctx, job)
	w.metrics.jobDuration.WithLabelValues(job.Type.String()).
		Observe(w.clock.Now().Sub(start).Seconds())

	if err == nil {
		w.metrics.jobsTotal.WithLabelValues(job.Type.String(), "ok").Inc()
		return
	}

	job.Attempts++

	if job.Attempts >= maxAttempts {
		w.metrics.jobsTotal.WithLabelValues(job.Type.String(), "dropped").Inc()
		w.logger.Error("Dropping job after repeated failures",
			zap.String("jobID", job.ID),
			zap.String("type", job.Type.String()),
			zap.Int("attempts", job.Attempts),
			zap.Error(err))
		return
	}

	delay := retryDelay(job.Attempts)
	if requeueErr := w.queue.EnqueueAt(ctx, job, w.clock.Now().Add(delay)); requeueErr != nil {
		w.metrics.jobsTotal.WithLabelValues(job.Type.String(), "lost").Inc()
		w.logger.Error("Failed to requeue job",
			zap.String("jobID", job.ID),
			zap.Error(requeueErr))
		return
	}

	w.metrics.jobsTotal.WithLabelValues(job.Type.String(), "retried").Inc()
	w.logger.Warn("Job failed, retrying",
		zap.String("jobID", job.ID),
		zap.String("type", job.Type.String()),
		zap.Int("attempts", job.Attempts),
		zap.Duration("delay", delay),
		zap.Error(err))
}

// dispatch decodes a job payload and routes it to its handler.
func (w *Worker) dispatch(ctx context.Context, job *outbox.Job) error {
	switch job.Type {
	case enum.JobTypeRecomputeItem:
		var payload outbox.RecomputeItemPayload
		if err := sonic.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode recompute payload: %w", err)
		}

		_, err := w.aggregation.RecomputeItem(ctx, payload.ItemID, service.RecomputeOptions{})

		return err

	case enum.JobTypeReputationUpdate:
		var payload outbox.ReputationUpdatePayload
		if err := sonic.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode reputation payload: %w", err)
		}

		return w.handleReputationUpdate(ctx, &payload)

	case enum.JobTypeNotifyNearby:
		var payload outbox.NotifyNearbyPayload
		if err := sonic.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode notification payload: %w", err)
		}

		return w.notifier.NotifyNearby(ctx, payload)

	default:
		return fmt.Errorf("unknown job type %q", job.Type)
	}
}

// handleReputationUpdate applies the vote event to the voter's profile and
// advances every challenge dimension the event touches.
func (w *Worker) handleReputationUpdate(ctx context.Context, payload *outbox.ReputationUpdatePayload) error {
	if _, err := w.reputation.ApplyVoteEvent(ctx, payload.UserID, payload.Event); err != nil {
		return err
	}

	if payload.Event.IsEdit {
		return nil
	}

	advances := []struct {
		challengeType enum.ChallengeType
		hit           bool
	}{
		{enum.ChallengeTypeVoteCount, true},
		{enum.ChallengeTypeGPSVotes, payload.Event.HasGPS},
		{enum.ChallengeTypeNewItems, payload.Event.IsNewItem},
		{enum.ChallengeTypeStoreVariety, payload.Event.HasStore},
	}

	for _, advance := range advances {
		if !advance.hit {
			continue
		}
		if err := w.challenges.Advance(ctx, payload.UserID, advance.challengeType, 1); err != nil {
			return err
		}
	}

	return nil
}

// retryDelay walks the exponential backoff schedule to the given attempt.
func retryDelay(attempts int) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 2 * time.Minute
	b.RandomizationFactor = 0.2

	delay := b.NextBackOff()
	for range attempts - 1 {
		delay = b.NextBackOff()
	}

	return delay
}
