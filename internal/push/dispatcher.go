package push

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// TokenSource resolves job recipients to device tokens and removes
// tokens the transport reported as dead.
type TokenSource interface {
	TokensForUsers(ctx context.Context, userIDs []int64) ([]string, error)
	TokensForAllExcept(ctx context.Context, userID int64) ([]string, error)
	DeleteTokens(ctx context.Context, tokens []string) (int64, error)
}

// Result summarizes one dispatched job.
type Result struct {
	Targets int // valid addresses attempted
	Sent    int // tickets confirming delivery
	Dropped int // addresses discarded for not matching the token format

	NoValidRecipients bool
	TicketErrors      int
	ChunkErrors       int
}

// OK reports full success: at least one recipient, every chunk
// exchanged, every ticket confirmed.
func (r Result) OK() bool {
	return !r.NoValidRecipients && r.TicketErrors == 0 && r.ChunkErrors == 0
}

// Dispatcher consumes the job queue and fans each job out to the push
// transport in concurrent fixed-size batches.
type Dispatcher struct {
	redisClient *redis.Client
	tokens      TokenSource
	transport   Transport
	logger      *logrus.Logger
	cfg         *config.Config
	summary     *summaryAggregator
}

func NewDispatcher(redisClient *redis.Client, tokens TokenSource, transport Transport, logger *logrus.Logger, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		redisClient: redisClient,
		tokens:      tokens,
		transport:   transport,
		logger:      logger,
		cfg:         cfg,
		summary:     newSummaryAggregator(cfg.PushSummaryWindow, logger),
	}
}

// Start launches the queue-consuming goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting push dispatcher...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				d.logger.Info("Stopping push dispatcher.")
				return
			default:
				// Blocking pop from the right side of the queue; 0 waits forever.
				result, err := d.redisClient.BRPop(ctx, 0, jobQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					d.logger.WithError(err).Error("Failed to pop push job from Redis")
					time.Sleep(time.Second)
					continue
				}

				var job Job
				if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
					d.logger.WithError(err).Error("Failed to unmarshal push job from Redis")
					continue
				}

				d.Dispatch(ctx, job)
			}
		}
	}()
}

// Dispatch resolves the job recipients and delivers the notification
// with best-effort semantics. It never returns an error: failures are
// counted in the Result and logged.
func (d *Dispatcher) Dispatch(ctx context.Context, job Job) Result {
	log := d.logger.WithFields(logrus.Fields{
		"component": "push",
		"kind":      job.Kind,
	})

	var (
		tokens []string
		err    error
	)
	if job.Broadcast {
		tokens, err = d.tokens.TokensForAllExcept(ctx, job.ExceptUserID)
	} else {
		tokens, err = d.tokens.TokensForUsers(ctx, job.Recipients)
	}
	if err != nil {
		log.WithError(err).Error("Failed to resolve device tokens")
		return Result{ChunkErrors: 1}
	}

	valid := tokens[:0:0]
	for _, token := range tokens {
		if ValidToken(token) {
			valid = append(valid, token)
		}
	}
	dropped := len(tokens) - len(valid)
	if dropped > 0 {
		metrics.PushDroppedTokens.Add(float64(dropped))
	}

	if len(valid) == 0 {
		log.Debug("No valid recipients for push job")
		return Result{Dropped: dropped, NoValidRecipients: true}
	}

	messages := make([]Message, len(valid))
	for i, token := range valid {
		sound := "default"
		if job.Silent {
			sound = ""
		}
		messages[i] = Message{
			To:       token,
			Title:    job.Title,
			Body:     job.Body,
			Data:     job.Data,
			Sound:    sound,
			Priority: "high",
		}
	}

	res := d.sendChunks(ctx, log, messages)
	res.Dropped = dropped

	d.summary.record(res.Targets, res.Sent)
	metrics.PushDelivered.Add(float64(res.Sent))
	metrics.PushFailed.Add(float64(res.TicketErrors))

	if !res.OK() {
		log.WithFields(logrus.Fields{
			"targets":       res.Targets,
			"sent":          res.Sent,
			"ticket_errors": res.TicketErrors,
			"chunk_errors":  res.ChunkErrors,
		}).Warn("Push job finished with errors")
	}
	return res
}

// sendChunks splits the messages into transport-sized batches, sends
// them concurrently and folds the per-ticket outcomes. One failing
// chunk never aborts its siblings.
func (d *Dispatcher) sendChunks(ctx context.Context, log *logrus.Entry, messages []Message) Result {
	size := d.cfg.PushBatchSize
	var chunks [][]Message
	for start := 0; start < len(messages); start += size {
		end := start + size
		if end > len(messages) {
			end = len(messages)
		}
		chunks = append(chunks, messages[start:end])
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		res     = Result{Targets: len(messages)}
		invalid = make(map[string]struct{})
	)

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []Message) {
			defer wg.Done()

			tickets, err := d.transport.SendBatch(ctx, chunk)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).Error("Push batch failed")
				res.ChunkErrors++
				return
			}
			for i, ticket := range tickets {
				switch {
				case ticket.OK():
					res.Sent++
				case ticket.DeviceNotRegistered():
					invalid[chunk[i].To] = struct{}{}
					res.TicketErrors++
				default:
					res.TicketErrors++
				}
			}
		}(chunk)
	}
	wg.Wait()

	if len(invalid) > 0 {
		stale := make([]string, 0, len(invalid))
		for token := range invalid {
			stale = append(stale, token)
		}
		// Detached: registry pruning must never block or fail a dispatch.
		go d.pruneTokens(context.WithoutCancel(ctx), stale)
	}

	return res
}

func (d *Dispatcher) pruneTokens(ctx context.Context, stale []string) {
	pruned, err := d.tokens.DeleteTokens(ctx, stale)
	if err != nil {
		d.logger.WithError(err).WithField("component", "push").Error("Failed to prune unregistered tokens")
		return
	}
	metrics.PushPrunedTokens.Add(float64(pruned))
	d.logger.WithFields(logrus.Fields{
		"component": "push",
		"pruned":    pruned,
	}).Info("Removed unregistered device tokens")
}
