package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/metrics"
	"github.com/umputun/newsdrop/pkg/recommend"
)

//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/recommender.go -pkg mocks -skip-ensure -fmt goimports . Recommender
//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher

// orchestrator defaults
const (
	DefaultMaxWorkers  = 5
	DefaultPerCategory = 3
	DefaultBatchSize   = 3
)

// UserStore provides users with their channel configuration and tracks the last notification time
type UserStore interface {
	GetAll(ctx context.Context) ([]domain.UserChannelConfig, error)
	GetUser(ctx context.Context, userID string) (*domain.UserChannelConfig, error)
	UpdateLastNotificationSent(ctx context.Context, userID string, sentAt time.Time) error
}

// Recommender selects ranked articles for a user
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]recommend.ScoredArticle, error)
}

// Ledger stores delivery records
type Ledger interface {
	CreateDelivery(ctx context.Context, rec *domain.DeliveryRecord) error
	CompleteDelivery(ctx context.Context, rec *domain.DeliveryRecord) error
}

// Dispatcher sends a record to the user's enabled channels
type Dispatcher interface {
	Dispatch(ctx context.Context, user domain.UserChannelConfig, rec domain.DeliveryRecord) dispatch.Outcome
}

// Orchestrator runs delivery cycles: for every due user it picks the best unseen articles,
// records them in the ledger and sends them to the user's channels.
type Orchestrator struct {
	users       UserStore
	recommender Recommender
	ledger      Ledger
	dispatcher  Dispatcher
	composer    *dispatch.Composer

	maxWorkers  int
	perCategory int
	batchSize   int
	now         func() time.Time

	running sync.Mutex
}

// OrchestratorConfig holds orchestrator dependencies and limits
type OrchestratorConfig struct {
	Users       UserStore
	Recommender Recommender
	Ledger      Ledger
	Dispatcher  Dispatcher
	MaxWorkers  int // users processed in parallel
	PerCategory int // candidates fetched per subscribed category
	BatchSize   int // articles sent to a user per cycle
	Now         func() time.Time
}

// CycleStats summarizes a delivery cycle
type CycleStats struct {
	Skipped    bool // another cycle was still running
	Users      int
	Eligible   int
	Notified   int // users with at least one attempted send
	Deliveries int
	Sent       int
	Failed     int
	Duration   time.Duration
}

// ManualMessage is a free-form notification sent to a user outside of the cycle
type ManualMessage struct {
	UserID  string
	Subject string
	Message string
}

// NewOrchestrator makes an orchestrator, zero limits are replaced by defaults
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.PerCategory <= 0 {
		cfg.PerCategory = DefaultPerCategory
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{
		users:       cfg.Users,
		recommender: cfg.Recommender,
		ledger:      cfg.Ledger,
		dispatcher:  cfg.Dispatcher,
		composer:    dispatch.NewComposer(),
		maxWorkers:  cfg.MaxWorkers,
		perCategory: cfg.PerCategory,
		batchSize:   cfg.BatchSize,
		now:         cfg.Now,
	}
}

// RunCycle processes all due users once. A call made while another cycle runs returns immediately
// with Skipped set. Per-user failures are logged and don't affect other users.
func (o *Orchestrator) RunCycle(ctx context.Context) CycleStats {
	if !o.running.TryLock() {
		lgr.Printf("[WARN] previous delivery cycle still running, skip")
		metrics.RecordCycle("skipped", 0)
		return CycleStats{Skipped: true}
	}
	defer o.running.Unlock()

	st := time.Now()
	stats := CycleStats{}
	users, err := o.users.GetAll(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to get users, cycle skipped: %v", err)
		stats.Duration = time.Since(st)
		metrics.RecordCycle("failed", stats.Duration.Seconds())
		return stats
	}
	stats.Users = len(users)

	now := o.now()
	var mu sync.Mutex
	g := errgroup.Group{}
	g.SetLimit(o.maxWorkers)
	for _, user := range users {
		if !user.IsDue(now) {
			continue
		}
		stats.Eligible++
		g.Go(func() error {
			res := o.processUser(ctx, user)
			mu.Lock()
			defer mu.Unlock()
			stats.Deliveries += res.deliveries
			stats.Sent += res.sent
			stats.Failed += res.failed
			if res.attempted > 0 {
				stats.Notified++
			}
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = time.Since(st)
	metrics.RecordCycle("completed", stats.Duration.Seconds())
	lgr.Printf("[INFO] delivery cycle done in %v: users %d, eligible %d, notified %d, sent %d, failed %d",
		stats.Duration.Truncate(time.Millisecond), stats.Users, stats.Eligible, stats.Notified, stats.Sent, stats.Failed)
	return stats
}

type userResult struct {
	deliveries int
	attempted  int
	sent       int
	failed     int
}

// processUser sends the batch of top recommendations to a single due user
func (o *Orchestrator) processUser(ctx context.Context, user domain.UserChannelConfig) userResult {
	res := userResult{}
	if len(user.Categories) == 0 {
		lgr.Printf("[DEBUG] user %s has no categories, skip", user.UserID)
		metrics.RecordUser("no_categories")
		return res
	}

	recs, err := o.recommender.Recommend(ctx, recommend.Request{
		UserID:      user.UserID,
		Categories:  user.Categories,
		PerCategory: o.perCategory,
		Limit:       o.batchSize,
	})
	if err != nil {
		lgr.Printf("[WARN] failed to get recommendations for %s: %v", user.UserID, err)
		metrics.RecordUser("error")
		return res
	}
	if len(recs) == 0 {
		lgr.Printf("[DEBUG] no new articles for %s", user.UserID)
		metrics.RecordUser("no_candidates")
		return res
	}

	for _, r := range recs {
		if ctx.Err() != nil {
			break
		}
		rec, err := o.deliver(ctx, user, r.Article)
		if errors.Is(err, domain.ErrDuplicate) {
			lgr.Printf("[DEBUG] %s already delivered to %s", r.Article.Fingerprint, user.UserID)
			continue
		}
		if err != nil {
			lgr.Printf("[WARN] failed to deliver %s to %s: %v", r.Article.Fingerprint, user.UserID, err)
		}
		if rec == nil {
			continue
		}
		res.deliveries++
		if len(rec.Channels) > 0 {
			res.attempted++
		}
		if rec.Status == domain.StatusSent {
			res.sent++
		} else {
			res.failed++
		}
	}

	if res.attempted == 0 {
		metrics.RecordUser("no_sends")
		return res
	}
	metrics.RecordUser("delivered")
	if err := o.users.UpdateLastNotificationSent(ctx, user.UserID, o.now()); err != nil {
		lgr.Printf("[WARN] failed to update last notification time of %s: %v", user.UserID, err)
	}
	return res
}

// deliver records the article as pending, dispatches it and completes the record.
// Returns nil record if nothing was dispatched.
func (o *Orchestrator) deliver(ctx context.Context, user domain.UserChannelConfig, a domain.Article) (*domain.DeliveryRecord, error) {
	subject, body := o.composer.Compose(a)
	rec := &domain.DeliveryRecord{
		UserID:             user.UserID,
		ArticleFingerprint: a.Fingerprint,
		Category:           a.Category,
		Source:             a.Source,
		Title:              a.Title,
		Subject:            subject,
		Message:            body,
	}
	if err := o.ledger.CreateDelivery(ctx, rec); err != nil {
		return nil, fmt.Errorf("create pending record: %w", err)
	}
	return rec, o.complete(ctx, user, rec)
}

// complete dispatches a pending record and stores the outcome
func (o *Orchestrator) complete(ctx context.Context, user domain.UserChannelConfig, rec *domain.DeliveryRecord) error {
	out := o.dispatcher.Dispatch(ctx, user, *rec)
	rec.Status = out.Status()
	rec.Channels = out.Attempted()
	rec.ChannelMessageRef = out.MessageRef()
	rec.ChannelRefs = out.Refs()
	if rec.Status == domain.StatusSent {
		sentAt := o.now()
		rec.SentAt = &sentAt
	}
	for _, r := range out.Results {
		if r.Err != nil {
			lgr.Printf("[WARN] %s send of %s to %s failed: %v", r.Channel, rec.ID, rec.UserID, r.Err)
		}
	}
	metrics.RecordDelivery(string(rec.Status))

	// the dispatch already happened, the record must not stay pending even if the caller is canceled
	if err := o.ledger.CompleteDelivery(context.WithoutCancel(ctx), rec); err != nil {
		return fmt.Errorf("complete record %s: %w", rec.ID, err)
	}
	return nil
}

// Send delivers a manual message to a registered user. The record has no article fingerprint
// and doesn't affect the user's notification schedule.
func (o *Orchestrator) Send(ctx context.Context, msg ManualMessage) (*domain.DeliveryRecord, error) {
	if msg.UserID == "" || msg.Message == "" {
		return nil, fmt.Errorf("user id and message are required: %w", domain.ErrValidation)
	}
	user, err := o.users.GetUser(ctx, msg.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", msg.UserID, err)
	}
	rec, err := o.sendManual(ctx, *user, msg.Subject, msg.Message)
	if err != nil {
		return rec, err
	}
	lgr.Printf("[INFO] manual notification %s to %s: %s", rec.ID, rec.UserID, rec.Status)
	return rec, nil
}

// BroadcastMessage is a manual notification for many users, all registered users if UserIDs is empty
type BroadcastMessage struct {
	UserIDs []string
	Subject string
	Message string
}

// BroadcastResult summarizes a broadcast
type BroadcastResult struct {
	Total   int                     `json:"total"`
	Sent    int                     `json:"sent"`
	Failed  int                     `json:"failed"`
	Unknown []string                `json:"unknown,omitempty"` // requested user ids not registered
	Records []domain.DeliveryRecord `json:"records"`
}

// Broadcast sends the same manual message to every selected user, up to MaxWorkers users in parallel.
// A failed user doesn't stop the others, the error is returned only if users can't be loaded.
func (o *Orchestrator) Broadcast(ctx context.Context, msg BroadcastMessage) (BroadcastResult, error) {
	res := BroadcastResult{Records: []domain.DeliveryRecord{}}
	if msg.Message == "" {
		return res, fmt.Errorf("message is required: %w", domain.ErrValidation)
	}
	users, err := o.users.GetAll(ctx)
	if err != nil {
		return res, fmt.Errorf("get users: %w", err)
	}
	if len(msg.UserIDs) > 0 {
		users, res.Unknown = selectUsers(users, msg.UserIDs)
	}
	res.Total = len(users)

	var mu sync.Mutex
	g := errgroup.Group{}
	g.SetLimit(o.maxWorkers)
	for _, user := range users {
		g.Go(func() error {
			rec, err := o.sendManual(ctx, user, msg.Subject, msg.Message)
			if err != nil {
				lgr.Printf("[WARN] broadcast to %s: %v", user.UserID, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if rec == nil || rec.Status != domain.StatusSent {
				res.Failed++
			} else {
				res.Sent++
			}
			if rec != nil {
				res.Records = append(res.Records, *rec)
			}
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] broadcast %q to %d users, sent: %d, failed: %d, unknown: %d",
		msg.Subject, res.Total, res.Sent, res.Failed, len(res.Unknown))
	return res, nil
}

// sendManual records and dispatches a free-form message to the user
func (o *Orchestrator) sendManual(ctx context.Context, user domain.UserChannelConfig, subject, message string) (*domain.DeliveryRecord, error) {
	if subject == "" {
		subject = "Notification"
	}
	rec := &domain.DeliveryRecord{UserID: user.UserID, Subject: subject, Message: message}
	if err := o.ledger.CreateDelivery(ctx, rec); err != nil {
		return nil, fmt.Errorf("create pending record: %w", err)
	}
	if err := o.complete(ctx, user, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// selectUsers keeps users with the requested ids and reports ids without a user
func selectUsers(users []domain.UserChannelConfig, ids []string) (selected []domain.UserChannelConfig, unknown []string) {
	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}
	found := map[string]bool{}
	for _, u := range users {
		if requested[u.UserID] {
			selected = append(selected, u)
			found[u.UserID] = true
		}
	}
	for _, id := range ids {
		if !found[id] {
			unknown = append(unknown, id)
			found[id] = true
		}
	}
	return selected, unknown
}
