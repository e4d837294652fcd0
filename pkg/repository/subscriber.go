package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cybernews-agent/cybernews/pkg/notify"
)

// SubscriberRepository keeps notification subscribers
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Add stores a normalized email, returns false if it is already subscribed
func (r *SubscriberRepository) Add(ctx context.Context, email string) (bool, error) {
	email, err := notify.ValidateEmail(email)
	if err != nil {
		return false, err
	}

	var added bool
	err = withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO subscribers (email) VALUES (?) ON CONFLICT(email) DO NOTHING`, email)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		added = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("add subscriber: %w", err)
	}
	return added, nil
}

// Remove deletes a subscriber, returns false if it wasn't subscribed
func (r *SubscriberRepository) Remove(ctx context.Context, email string) (bool, error) {
	email = notify.NormalizeEmail(email)

	var removed bool
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE email = ?`, email)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("remove subscriber: %w", err)
	}
	return removed, nil
}

// List returns all subscribers sorted by email
func (r *SubscriberRepository) List(ctx context.Context) ([]string, error) {
	emails := []string{}
	if err := r.db.SelectContext(ctx, &emails, `SELECT email FROM subscribers ORDER BY email`); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return emails, nil
}

// Count returns the number of subscribers
func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscribers`); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
