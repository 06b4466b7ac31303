package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dermacare/internal/models"
	"dermacare/internal/repositories"
)

var (
	ErrResendThrottled = errors.New("resend throttled")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
	ErrCodeNotFound    = errors.New("code not found")
)

const (
	maxResendsPerWindow = 3
	resendWindow        = 30 * time.Minute
	challengeTTL        = 5 * time.Minute
)

// OTPService issues, checks and clears registration challenges. Only a
// bcrypt hash of the code is ever persisted; the plaintext exists solely for
// the out-of-band delivery.
type OTPService struct {
	Repo repositories.ChallengeRepository

	// now is swappable for tests
	now func() time.Time
}

func NewOTPService(repo repositories.ChallengeRepository) *OTPService {
	return &OTPService{Repo: repo, now: time.Now}
}

// generateCode draws a uniform 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue rotates (or creates) the challenge for the email and returns the
// plaintext code for delivery. Expired rows are replaced; the resend counter
// resets once 30 minutes have passed since the last send, and the 4th send
// inside a window fails with ErrResendThrottled.
func (s *OTPService) Issue(email string) (string, error) {
	existing, err := s.Repo.Get(email)
	if err != nil {
		return "", err
	}

	now := s.now()
	resendCount := 0
	if existing != nil {
		// the resend window outlives code expiry: an expired code frees
		// the challenge slot (the upsert below replaces it) but not the
		// throttle budget
		resendCount = existing.ResendCount
		if now.Sub(existing.LastSentAt) >= resendWindow {
			resendCount = 0
		}
		if resendCount >= maxResendsPerWindow {
			return "", ErrResendThrottled
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("otp hash: %w", err)
	}

	ch := &models.RegistrationChallenge{
		Email:       email,
		CodeHash:    string(hash),
		CreatedAt:   now,
		LastSentAt:  now,
		ResendCount: resendCount + 1,
	}
	if err := s.Repo.Upsert(ch); err != nil {
		return "", err
	}
	return code, nil
}

// Check verifies a candidate code. Expiry detection deletes the record; a
// mismatch increments the attempt counter but keeps the record resendable.
// On success the challenge is marked verified.
func (s *OTPService) Check(email, candidate string) error {
	ch, err := s.Repo.Get(email)
	if err != nil {
		return err
	}
	if ch == nil {
		return ErrCodeNotFound
	}
	if ch.Verified {
		// the code is consumed by the first successful check
		return ErrCodeNotFound
	}

	if s.now().Sub(ch.CreatedAt) > challengeTTL {
		if err := s.Repo.Delete(email); err != nil {
			return err
		}
		return ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(candidate)); err != nil {
		if incErr := s.Repo.IncrementAttempts(email); incErr != nil {
			return incErr
		}
		return ErrCodeInvalid
	}

	return s.Repo.MarkVerified(email)
}

// Verified reports whether a live, confirmed challenge exists for the email.
func (s *OTPService) Verified(email string) (bool, error) {
	ch, err := s.Repo.Get(email)
	if err != nil {
		return false, err
	}
	if ch == nil {
		return false, nil
	}
	if s.now().Sub(ch.CreatedAt) > challengeTTL {
		if err := s.Repo.Delete(email); err != nil {
			return false, err
		}
		return false, nil
	}
	return ch.Verified, nil
}

// Clear drops the challenge; called after a successful finalize.
func (s *OTPService) Clear(email string) error {
	return s.Repo.Delete(email)
}
