package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdrop/pkg/domain"
)

// DeliveryRepository is the delivery ledger, an append-only record of delivery attempts.
// The unique (user_id, article_fingerprint) index guarantees at most one record per user and article.
type DeliveryRepository struct {
	db *sqlx.DB
}

// deliverySQL represents a delivery record for SQL operations
type deliverySQL struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	ArticleFingerprint string     `db:"article_fingerprint"`
	Category           string     `db:"category"`
	Source             string     `db:"source"`
	Title              string     `db:"title"`
	Subject            string     `db:"subject"`
	Message            string     `db:"message"`
	Channels           stringsSQL `db:"channels"`
	Status             string     `db:"status"`
	CreatedAt          time.Time  `db:"created_at"`
	SentAt             *time.Time `db:"sent_at"`
	ChannelMessageRef  string     `db:"channel_message_ref"`
	ChannelRefs        refsSQL    `db:"channel_refs"`
	Reaction           string     `db:"reaction"`
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// CreateDelivery inserts a new PENDING record, assigning id and creation time if missing.
// Returns domain.ErrDuplicate if the user already has a record for the same article.
func (r *DeliveryRepository) CreateDelivery(ctx context.Context, rec *domain.DeliveryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.Status == "" {
		rec.Status = domain.StatusPending
	}

	query := `
		INSERT INTO deliveries (
			id, user_id, article_fingerprint, category, source, title, subject, message,
			channels, status, created_at, sent_at, channel_message_ref, channel_refs, reaction
		) VALUES (
			:id, :user_id, :article_fingerprint, :category, :source, :title, :subject, :message,
			:channels, :status, :created_at, :sent_at, :channel_message_ref, :channel_refs, :reaction
		)
	`
	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, fromDomainDelivery(rec))
		return err
	})
	if isUniqueError(err) {
		return fmt.Errorf("delivery of %s to %s: %w", rec.ArticleFingerprint, rec.UserID, domain.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// CompleteDelivery moves a PENDING record to its terminal status with the dispatch results.
// Terminal records are never changed again.
func (r *DeliveryRepository) CompleteDelivery(ctx context.Context, rec *domain.DeliveryRecord) error {
	if !rec.Status.IsTerminal() {
		return fmt.Errorf("complete delivery %s with status %s: %w", rec.ID, rec.Status, domain.ErrValidation)
	}

	query := `
		UPDATE deliveries
		SET status = :status, channels = :channels, sent_at = :sent_at,
		    channel_message_ref = :channel_message_ref, channel_refs = :channel_refs
		WHERE id = :id AND status = 'PENDING'
	`
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, fromDomainDelivery(rec))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("complete delivery %s: %w", rec.ID, err)
	}
	if affected == 0 {
		if _, err := r.GetDelivery(ctx, rec.ID); err != nil {
			return err
		}
		return fmt.Errorf("delivery %s is not pending", rec.ID)
	}
	return nil
}

// GetDelivery returns a record by id or domain.ErrNotFound
func (r *DeliveryRepository) GetDelivery(ctx context.Context, id string) (*domain.DeliveryRecord, error) {
	var rec deliverySQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM deliveries WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery %s: %w", id, err)
	}
	return rec.toDomain(), nil
}

// GetDeliveryByRef returns the user's record correlated to ref. The ref matches the record id,
// the primary channel message reference or the reference returned by any of the record's channels.
func (r *DeliveryRepository) GetDeliveryByRef(ctx context.Context, userID, ref string) (*domain.DeliveryRecord, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty delivery ref: %w", domain.ErrNotFound)
	}
	query := `
		SELECT * FROM deliveries
		WHERE user_id = :user_id AND (
			id = :ref OR channel_message_ref = :ref OR
			EXISTS (SELECT 1 FROM json_each(deliveries.channel_refs) WHERE json_each.value = :ref)
		)
		ORDER BY (id = :ref) DESC, created_at DESC
		LIMIT 1
	`
	stmt, args, err := sqlx.Named(query, map[string]any{"user_id": userID, "ref": ref})
	if err != nil {
		return nil, fmt.Errorf("build delivery ref query: %w", err)
	}
	var rec deliverySQL
	err = r.db.GetContext(ctx, &rec, r.db.Rebind(stmt), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delivery ref %s: %w", ref, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery by ref %s: %w", ref, err)
	}
	return rec.toDomain(), nil
}

// ListDeliveries returns the most recent records of all users
func (r *DeliveryRepository) ListDeliveries(ctx context.Context, limit int) ([]domain.DeliveryRecord, error) {
	var recs []deliverySQL
	err := r.db.SelectContext(ctx, &recs, "SELECT * FROM deliveries ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return toDomainDeliveries(recs), nil
}

// ListUserDeliveries returns the most recent records of a user
func (r *DeliveryRepository) ListUserDeliveries(ctx context.Context, userID string, limit int) ([]domain.DeliveryRecord, error) {
	var recs []deliverySQL
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM deliveries WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?", userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries of %s: %w", userID, err)
	}
	return toDomainDeliveries(recs), nil
}

// DeleteDelivery removes a record, domain.ErrNotFound if it doesn't exist
func (r *DeliveryRepository) DeleteDelivery(ctx context.Context, id string) error {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM deliveries WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete delivery %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delivered returns the subset of fingerprints the user already has records for
func (r *DeliveryRepository) Delivered(ctx context.Context, userID string, fingerprints []string) (map[string]bool, error) {
	res := make(map[string]bool, len(fingerprints))
	if len(fingerprints) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(
		"SELECT article_fingerprint FROM deliveries WHERE user_id = ? AND article_fingerprint IN (?)",
		userID, fingerprints)
	if err != nil {
		return nil, fmt.Errorf("build delivered query: %w", err)
	}

	var found []string
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("check delivered for %s: %w", userID, err)
	}
	for _, fp := range found {
		res[fp] = true
	}
	return res, nil
}

// SetReaction stores the user's reaction on a record, domain.ReactionNone clears it
func (r *DeliveryRepository) SetReaction(ctx context.Context, id string, reaction domain.ReactionType) error {
	var affected int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE deliveries SET reaction = ? WHERE id = ?", string(reaction), id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("set reaction on %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delivery %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// recentActivity is the number of records returned in DeliveryStats.Recent
const recentActivity = 10

// DeliveryStats aggregates the ledger: counts by status, channel and reaction, sends in the last
// day and week relative to now, a per-day breakdown of the last 7 days and the most recent records
func (r *DeliveryRepository) DeliveryStats(ctx context.Context, now time.Time) (*domain.DeliveryStats, error) {
	now = now.UTC()
	res := &domain.DeliveryStats{ByStatus: map[domain.DeliveryStatus]int{}, ByChannel: map[domain.Channel]int{}}

	var totals struct {
		Total       int `db:"total"`
		UniqueUsers int `db:"unique_users"`
		Likes       int `db:"likes"`
		Dislikes    int `db:"dislikes"`
		Sent24h     int `db:"sent_24h"`
		Sent7d      int `db:"sent_7d"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT COUNT(*) AS total,
		       COUNT(DISTINCT user_id) AS unique_users,
		       COALESCE(SUM(reaction = 'like'), 0) AS likes,
		       COALESCE(SUM(reaction = 'dislike'), 0) AS dislikes,
		       COALESCE(SUM(sent_at IS NOT NULL AND sent_at > ?), 0) AS sent_24h,
		       COALESCE(SUM(sent_at IS NOT NULL AND sent_at > ?), 0) AS sent_7d
		FROM deliveries`, now.Add(-24*time.Hour), now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("get delivery totals: %w", err)
	}
	res.Total, res.UniqueUsers = totals.Total, totals.UniqueUsers
	res.Likes, res.Dislikes = totals.Likes, totals.Dislikes
	res.SentLast24h, res.SentLast7d = totals.Sent24h, totals.Sent7d

	var byStatus []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &byStatus, "SELECT status, COUNT(*) AS cnt FROM deliveries GROUP BY status"); err != nil {
		return nil, fmt.Errorf("count deliveries by status: %w", err)
	}
	for _, s := range byStatus {
		res.ByStatus[domain.DeliveryStatus(s.Status)] = s.Count
	}

	var byChannel []struct {
		Channel string `db:"channel"`
		Count   int    `db:"cnt"`
	}
	err = r.db.SelectContext(ctx, &byChannel, `
		SELECT je.value AS channel, COUNT(*) AS cnt
		FROM deliveries, json_each(deliveries.channels) AS je
		GROUP BY je.value`)
	if err != nil {
		return nil, fmt.Errorf("count deliveries by channel: %w", err)
	}
	for _, c := range byChannel {
		res.ByChannel[domain.Channel(c.Channel)] = c.Count
	}

	// sent_at is stored in UTC, days are counted in UTC as well
	today := now.Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -6)
	var sentTimes []time.Time
	err = r.db.SelectContext(ctx, &sentTimes,
		"SELECT sent_at FROM deliveries WHERE sent_at IS NOT NULL AND sent_at >= ? AND sent_at < ?",
		from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get daily deliveries: %w", err)
	}
	perDay := map[string]int{}
	for _, ts := range sentTimes {
		perDay[ts.UTC().Format(time.DateOnly)]++
	}
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := d.Format(time.DateOnly)
		res.DailyBreakdown = append(res.DailyBreakdown, domain.DailyCount{Date: day, Sent: perDay[day]})
	}

	if res.Recent, err = r.ListDeliveries(ctx, recentActivity); err != nil {
		return nil, err
	}
	return res, nil
}

func (d *deliverySQL) toDomain() *domain.DeliveryRecord {
	channels := make([]domain.Channel, len(d.Channels))
	for i, ch := range d.Channels {
		channels[i] = domain.Channel(ch)
	}
	var refs map[domain.Channel]string
	if len(d.ChannelRefs) > 0 {
		refs = make(map[domain.Channel]string, len(d.ChannelRefs))
		for ch, ref := range d.ChannelRefs {
			refs[domain.Channel(ch)] = ref
		}
	}
	return &domain.DeliveryRecord{
		ID:                 d.ID,
		UserID:             d.UserID,
		ArticleFingerprint: d.ArticleFingerprint,
		Category:           d.Category,
		Source:             d.Source,
		Title:              d.Title,
		Subject:            d.Subject,
		Message:            d.Message,
		Channels:           channels,
		Status:             domain.DeliveryStatus(d.Status),
		CreatedAt:          d.CreatedAt,
		SentAt:             d.SentAt,
		ChannelMessageRef:  d.ChannelMessageRef,
		ChannelRefs:        refs,
		Reaction:           domain.ReactionType(d.Reaction),
	}
}

func toDomainDeliveries(recs []deliverySQL) []domain.DeliveryRecord {
	res := make([]domain.DeliveryRecord, len(recs))
	for i := range recs {
		res[i] = *recs[i].toDomain()
	}
	return res
}

func fromDomainDelivery(rec *domain.DeliveryRecord) *deliverySQL {
	channels := make(stringsSQL, len(rec.Channels))
	for i, ch := range rec.Channels {
		channels[i] = string(ch)
	}
	res := &deliverySQL{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		ArticleFingerprint: rec.ArticleFingerprint,
		Category:           rec.Category,
		Source:             rec.Source,
		Title:              rec.Title,
		Subject:            rec.Subject,
		Message:            rec.Message,
		Channels:           channels,
		Status:             string(rec.Status),
		CreatedAt:          rec.CreatedAt.UTC(),
		ChannelMessageRef:  rec.ChannelMessageRef,
		ChannelRefs:        refsSQL{},
		Reaction:           string(rec.Reaction),
	}
	for ch, ref := range rec.ChannelRefs {
		res.ChannelRefs[string(ch)] = ref
	}
	if rec.SentAt != nil {
		sent := rec.SentAt.UTC()
		res.SentAt = &sent
	}
	return res
}
