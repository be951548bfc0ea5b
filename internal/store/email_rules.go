// Package store persists the loadable email classification rule set.
// The rule lists are operator configuration, not user-submitted data; the
// service itself never writes user input here.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secura-scan/securascan/internal/email"
)

// querier is the subset of pgxpool.Pool the store uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Rule list kinds, mirroring the email_rules.list CHECK constraint.
const (
	ListKnownBreached  = "known_breached"
	ListKnownSafe      = "known_safe"
	ListCommonBreached = "common_breached"
	ListSafePattern    = "safe_pattern"
)

// EmailRule is one entry of one rule list.
type EmailRule struct {
	ID        uuid.UUID `json:"id" db:"id"`
	List      string    `json:"list" db:"list"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailRuleStore handles database operations for email rules.
type EmailRuleStore struct {
	pool querier
}

// NewEmailRuleStore creates a new EmailRuleStore.
func NewEmailRuleStore(pool *pgxpool.Pool) *EmailRuleStore {
	return &EmailRuleStore{pool: pool}
}

// LoadRuleSet reads every rule row and assembles a RuleSet. An empty table
// yields an empty set; the caller decides whether to fall through to another
// source.
func (s *EmailRuleStore) LoadRuleSet(ctx context.Context) (email.RuleSet, error) {
	query := `
		SELECT list, value
		FROM email_rules
		ORDER BY list, created_at ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return email.RuleSet{}, fmt.Errorf("loading email rules: %w", err)
	}
	defer rows.Close()

	var rs email.RuleSet
	for rows.Next() {
		var list, value string
		if err := rows.Scan(&list, &value); err != nil {
			return email.RuleSet{}, fmt.Errorf("scanning email rule: %w", err)
		}
		switch list {
		case ListKnownBreached:
			rs.KnownBreached = append(rs.KnownBreached, value)
		case ListKnownSafe:
			rs.KnownSafe = append(rs.KnownSafe, value)
		case ListCommonBreached:
			rs.CommonBreached = append(rs.CommonBreached, value)
		case ListSafePattern:
			rs.SafePatterns = append(rs.SafePatterns, value)
		default:
			return email.RuleSet{}, fmt.Errorf("unknown email rule list %q", list)
		}
	}
	if err := rows.Err(); err != nil {
		return email.RuleSet{}, fmt.Errorf("iterating email rules: %w", err)
	}

	return rs, nil
}

// Add inserts one rule entry. Adding a value already on the list is a no-op.
func (s *EmailRuleStore) Add(ctx context.Context, rule *EmailRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	query := `
		INSERT INTO email_rules (id, list, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (list, value) DO NOTHING`

	if _, err := s.pool.Exec(ctx, query, rule.ID, rule.List, rule.Value); err != nil {
		return fmt.Errorf("inserting email rule: %w", err)
	}
	return nil
}

// Remove deletes one rule entry by list and value.
func (s *EmailRuleStore) Remove(ctx context.Context, list, value string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM email_rules WHERE list = $1 AND value = $2`, list, value)
	if err != nil {
		return fmt.Errorf("deleting email rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("email rule %s/%s not found", list, value)
	}
	return nil
}
