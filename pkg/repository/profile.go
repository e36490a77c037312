package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdrop/pkg/domain"
)

// ProfileRepository stores learned preference profiles keyed by user id
type ProfileRepository struct {
	db *sqlx.DB
}

// profileSQL represents a preference profile for SQL operations
type profileSQL struct {
	UserID         string    `db:"user_id"`
	CategoryScores scoresSQL `db:"category_scores"`
	SourceScores   scoresSQL `db:"source_scores"`
	KeywordScores  scoresSQL `db:"keyword_scores"`
	TotalLikes     int       `db:"total_likes"`
	TotalDislikes  int       `db:"total_dislikes"`
	DecayFactor    float64   `db:"decay_factor"`
	LastUpdatedAt  time.Time `db:"last_updated_at"`
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile returns the profile of a user or domain.ErrNotFound
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.PreferenceProfile, error) {
	var rec profileSQL
	err := r.db.GetContext(ctx, &rec, profileSelect+" WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return rec.toDomain(), nil
}

// ListUserIDs returns ids of all users with a stored profile
func (r *ProfileRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT user_id FROM profiles ORDER BY user_id"); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return ids, nil
}

// UpdateProfile runs an atomic read-modify-write of a single profile.
// A missing profile is created empty before fn is called. Concurrent updates of the same
// user are serialized by the immediate write transaction, so no update is lost.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, fn func(p *domain.PreferenceProfile) error) error {
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		profile := domain.NewPreferenceProfile(userID)
		var rec profileSQL
		err = tx.GetContext(ctx, &rec, profileSelect+" WHERE user_id = ?", userID)
		switch {
		case err == nil:
			profile = rec.toDomain()
		case errors.Is(err, sql.ErrNoRows):
		default:
			return err
		}

		if err := fn(profile); err != nil {
			return err
		}

		if _, err := tx.NamedExecContext(ctx, profileUpsert, fromDomainProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("update profile %s: %w", userID, err)
	}
	return nil
}

// SaveProfile stores a profile as is, replacing any existing one
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *domain.PreferenceProfile) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, profileUpsert, fromDomainProfile(profile))
		return err
	})
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profile.UserID, err)
	}
	return nil
}

const profileSelect = `
	SELECT user_id, category_scores, source_scores, keyword_scores,
	       total_likes, total_dislikes, decay_factor, last_updated_at
	FROM profiles`

const profileUpsert = `
	INSERT INTO profiles (user_id, category_scores, source_scores, keyword_scores,
	                      total_likes, total_dislikes, decay_factor, last_updated_at)
	VALUES (:user_id, :category_scores, :source_scores, :keyword_scores,
	        :total_likes, :total_dislikes, :decay_factor, :last_updated_at)
	ON CONFLICT(user_id) DO UPDATE SET
		category_scores = excluded.category_scores,
		source_scores = excluded.source_scores,
		keyword_scores = excluded.keyword_scores,
		total_likes = excluded.total_likes,
		total_dislikes = excluded.total_dislikes,
		decay_factor = excluded.decay_factor,
		last_updated_at = excluded.last_updated_at`

func (p *profileSQL) toDomain() *domain.PreferenceProfile {
	res := &domain.PreferenceProfile{
		UserID:         p.UserID,
		CategoryScores: map[string]float64(p.CategoryScores),
		SourceScores:   map[string]float64(p.SourceScores),
		KeywordScores:  map[string]float64(p.KeywordScores),
		TotalLikes:     p.TotalLikes,
		TotalDislikes:  p.TotalDislikes,
		DecayFactor:    p.DecayFactor,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
	if res.DecayFactor <= 0 || res.DecayFactor > 1 {
		res.DecayFactor = domain.DefaultDecayFactor
	}
	return res
}

func fromDomainProfile(p *domain.PreferenceProfile) *profileSQL {
	updated := p.LastUpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return &profileSQL{
		UserID:         p.UserID,
		CategoryScores: scoresSQL(p.CategoryScores),
		SourceScores:   scoresSQL(p.SourceScores),
		KeywordScores:  scoresSQL(p.KeywordScores),
		TotalLikes:     p.TotalLikes,
		TotalDislikes:  p.TotalDislikes,
		DecayFactor:    p.DecayFactor,
		LastUpdatedAt:  updated.UTC(),
	}
}
