package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/claimsift/claimsift/internal/model"
)

// PostgresStore persists claims and verdicts in Postgres. Schema
// management is external; the store assumes the claim and verdict tables
// exist, with a unique index on verdict.claim_id.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool against the configured DSN
func NewPostgresStore(cfg model.DatabaseConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) CreateClaim(ctx context.Context, claim *model.Claim) error {
	now := time.Now().UTC()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO claim(id, debate_id, speaker_id, text, timestamp, status, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`, claim.ID, claim.DebateID, nullString(claim.SpeakerID), claim.Text, claim.Timestamp,
		string(claim.Status), claim.CreatedAt, claim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetClaim(ctx context.Context, id string) (*model.Claim, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, debate_id, speaker_id, text, timestamp, status, created_at, updated_at
		FROM claim WHERE id = $1
	`, id)
	return scanClaim(row)
}

func (s *PostgresStore) UpdateClaimStatus(ctx context.Context, id string, to model.ClaimStatus) error {
	allowed := make([]string, 0, 3)
	for _, from := range to.AllowedFrom() {
		allowed = append(allowed, string(from))
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE claim SET status = $2, updated_at = $3
		WHERE id = $1 AND status = ANY($4)
	`, id, string(to), time.Now().UTC(), pq.Array(allowed))
	if err != nil {
		return fmt.Errorf("update claim status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update claim status: %w", err)
	}
	if n == 0 {
		// Distinguish a missing claim from a guarded transition
		if _, err := s.GetClaim(ctx, id); err != nil {
			return err
		}
		return ErrStaleStatus
	}
	return nil
}

func (s *PostgresStore) ListClaimsByStatus(ctx context.Context, debateID string, status model.ClaimStatus) ([]model.Claim, error) {
	query := `
		SELECT id, debate_id, speaker_id, text, timestamp, status, created_at, updated_at
		FROM claim WHERE status = $1`
	args := []interface{}{string(status)}
	if debateID != "" {
		query += ` AND debate_id = $2`
		args = append(args, debateID)
	}
	query += ` ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()
	return scanClaims(rows)
}

func (s *PostgresStore) StaleVerifying(ctx context.Context, cutoff time.Time) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, debate_id, speaker_id, text, timestamp, status, created_at, updated_at
		FROM claim WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC
	`, string(model.StatusVerifying), cutoff)
	if err != nil {
		return nil, fmt.Errorf("stale verifying: %w", err)
	}
	defer rows.Close()
	return scanClaims(rows)
}

func (s *PostgresStore) InsertVerdict(ctx context.Context, verdict *model.Verdict) error {
	if verdict.CreatedAt.IsZero() {
		verdict.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO verdict(id, claim_id, verdict, confidence, evidence, reasoning, sources, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`, verdict.ID, verdict.ClaimID, string(verdict.Verdict), verdict.Confidence,
		verdict.Evidence, verdict.Reasoning, pq.Array(verdict.Sources), verdict.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateVerdict
		}
		return fmt.Errorf("insert verdict: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetVerdictByClaim(ctx context.Context, claimID string) (*model.Verdict, error) {
	var (
		v          model.Verdict
		rawVerdict string
		sources    pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, claim_id, verdict, confidence, evidence, reasoning, sources, created_at
		FROM verdict WHERE claim_id = $1
	`, claimID).Scan(&v.ID, &v.ClaimID, &rawVerdict, &v.Confidence, &v.Evidence, &v.Reasoning, &sources, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verdict: %w", err)
	}

	v.Verdict, err = model.ParseVerdictType(rawVerdict)
	if err != nil {
		return nil, fmt.Errorf("verdict for claim %s: %w", claimID, err)
	}
	v.Sources = []string(sources)
	return &v, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*model.Claim, error) {
	var (
		c         model.Claim
		speakerID sql.NullString
		rawStatus string
	)
	err := row.Scan(&c.ID, &c.DebateID, &speakerID, &c.Text, &c.Timestamp, &rawStatus, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan claim: %w", err)
	}

	c.Status, err = model.ParseClaimStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("claim %s: %w", c.ID, err)
	}
	c.SpeakerID = speakerID.String
	return &c, nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, *claim)
	}
	return claims, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
