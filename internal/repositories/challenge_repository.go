package repositories

import (
	"database/sql"
	"fmt"

	"dermacare/internal/models"
)

// ChallengeRepository holds at most one registration challenge per email.
// Upsert rotates the row in place instead of appending a row per send.
type ChallengeRepository interface {
	Upsert(ch *models.RegistrationChallenge) error
	Get(email string) (*models.RegistrationChallenge, error)
	IncrementAttempts(email string) error
	MarkVerified(email string) error
	Delete(email string) error
}

type challengeRepository struct {
	DB *sql.DB
}

func NewChallengeRepository(db *sql.DB) ChallengeRepository {
	return &challengeRepository{DB: db}
}

func (r *challengeRepository) Upsert(ch *models.RegistrationChallenge) error {
	const q = `
		INSERT INTO registration_challenges
			(email, code_hash, created_at, last_sent_at, resend_count, attempts, verified)
		VALUES ($1,$2,$3,$4,$5,0,FALSE)
		ON CONFLICT (email) DO UPDATE SET
			code_hash=EXCLUDED.code_hash,
			created_at=EXCLUDED.created_at,
			last_sent_at=EXCLUDED.last_sent_at,
			resend_count=EXCLUDED.resend_count,
			attempts=0,
			verified=FALSE
	`
	_, err := r.DB.Exec(q, ch.Email, ch.CodeHash, ch.CreatedAt, ch.LastSentAt, ch.ResendCount)
	if err != nil {
		return fmt.Errorf("challenge upsert: %w", err)
	}
	return nil
}

func (r *challengeRepository) Get(email string) (*models.RegistrationChallenge, error) {
	const q = `
		SELECT email, code_hash, created_at, last_sent_at, resend_count, attempts, verified
		FROM registration_challenges
		WHERE email = $1
	`
	ch := &models.RegistrationChallenge{}
	err := r.DB.QueryRow(q, email).Scan(
		&ch.Email, &ch.CodeHash, &ch.CreatedAt, &ch.LastSentAt,
		&ch.ResendCount, &ch.Attempts, &ch.Verified,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("challenge get: %w", err)
	}
	return ch, nil
}

func (r *challengeRepository) IncrementAttempts(email string) error {
	_, err := r.DB.Exec(`UPDATE registration_challenges SET attempts = attempts + 1 WHERE email=$1`, email)
	if err != nil {
		return fmt.Errorf("challenge increment attempts: %w", err)
	}
	return nil
}

func (r *challengeRepository) MarkVerified(email string) error {
	_, err := r.DB.Exec(`UPDATE registration_challenges SET verified=TRUE WHERE email=$1`, email)
	if err != nil {
		return fmt.Errorf("challenge mark verified: %w", err)
	}
	return nil
}

func (r *challengeRepository) Delete(email string) error {
	_, err := r.DB.Exec(`DELETE FROM registration_challenges WHERE email=$1`, email)
	if err != nil {
		return fmt.Errorf("challenge delete: %w", err)
	}
	return nil
}
