package services

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermacare/internal/models"
)

// memChallengeRepo is an in-memory ChallengeRepository for service tests.
type memChallengeRepo struct {
	mu   sync.Mutex
	rows map[string]models.RegistrationChallenge
}

func newMemChallengeRepo() *memChallengeRepo {
	return &memChallengeRepo{rows: make(map[string]models.RegistrationChallenge)}
}

func (r *memChallengeRepo) Upsert(ch *models.RegistrationChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := *ch
	row.Attempts = 0
	row.Verified = false
	r.rows[ch.Email] = row
	return nil
}

func (r *memChallengeRepo) Get(email string) (*models.RegistrationChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[email]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *memChallengeRepo) IncrementAttempts(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[email]; ok {
		row.Attempts++
		r.rows[email] = row
	}
	return nil
}

func (r *memChallengeRepo) MarkVerified(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[email]; ok {
		row.Verified = true
		r.rows[email] = row
	}
	return nil
}

func (r *memChallengeRepo) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, email)
	return nil
}

// fakeClock drives the service's notion of time.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestOTPService() (*OTPService, *memChallengeRepo, *fakeClock) {
	repo := newMemChallengeRepo()
	clock := newFakeClock()
	svc := NewOTPService(repo)
	svc.now = clock.Now
	return svc, repo, clock
}

func TestOTPIssueProducesSixDigitCode(t *testing.T) {
	svc, repo, _ := newTestOTPService()

	code, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), code)

	ch, err := repo.Get("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.NotEqual(t, code, ch.CodeHash, "plaintext code must never be stored")
	assert.Equal(t, 1, ch.ResendCount)
}

func TestOTPCheckSucceedsExactlyOnce(t *testing.T) {
	svc, _, _ := newTestOTPService()

	code, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Check("a@example.com", code))

	verified, err := svc.Verified("a@example.com")
	require.NoError(t, err)
	assert.True(t, verified)

	// the code is consumed: a second check with the same code fails
	err = svc.Check("a@example.com", code)
	assert.True(t, errors.Is(err, ErrCodeNotFound))
}

func TestOTPCheckWrongCodeKeepsChallenge(t *testing.T) {
	svc, repo, _ := newTestOTPService()

	code, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	err = svc.Check("a@example.com", "000000")
	assert.True(t, errors.Is(err, ErrCodeInvalid))

	ch, err := repo.Get("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, 1, ch.Attempts)
	assert.False(t, ch.Verified)

	// the correct code still works after a mismatch
	require.NoError(t, svc.Check("a@example.com", code))
}

func TestOTPCheckUnknownEmail(t *testing.T) {
	svc, _, _ := newTestOTPService()
	err := svc.Check("nobody@example.com", "123456")
	assert.True(t, errors.Is(err, ErrCodeNotFound))
}

func TestOTPCodeExpiresAfterFiveMinutes(t *testing.T) {
	svc, repo, clock := newTestOTPService()

	code, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	clock.Advance(5*time.Minute - time.Second)
	require.NoError(t, svc.Check("a@example.com", code), "still valid just inside the TTL")

	_, err = svc.Issue("b@example.com")
	require.NoError(t, err)
	codeB, err := svc.Issue("b@example.com")
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)
	err = svc.Check("b@example.com", codeB)
	assert.True(t, errors.Is(err, ErrCodeExpired))

	// expiry removes the row
	ch, err := repo.Get("b@example.com")
	require.NoError(t, err)
	assert.Nil(t, ch)
}

func TestOTPVerifiedFalseAfterExpiry(t *testing.T) {
	svc, _, clock := newTestOTPService()

	code, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Check("a@example.com", code))

	clock.Advance(6 * time.Minute)
	verified, err := svc.Verified("a@example.com")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestOTPResendThrottle(t *testing.T) {
	svc, _, clock := newTestOTPService()

	for i := 0; i < 3; i++ {
		_, err := svc.Issue("a@example.com")
		require.NoError(t, err, "send %d", i+1)
		clock.Advance(time.Minute)
	}

	_, err := svc.Issue("a@example.com")
	assert.True(t, errors.Is(err, ErrResendThrottled), "4th send within the window")

	// the throttle is per email
	_, err = svc.Issue("other@example.com")
	assert.NoError(t, err)
}

func TestOTPResendWindowResets(t *testing.T) {
	svc, repo, clock := newTestOTPService()

	for i := 0; i < 3; i++ {
		_, err := svc.Issue("a@example.com")
		require.NoError(t, err)
	}
	_, err := svc.Issue("a@example.com")
	require.True(t, errors.Is(err, ErrResendThrottled))

	clock.Advance(30 * time.Minute)
	_, err = svc.Issue("a@example.com")
	require.NoError(t, err)

	ch, err := repo.Get("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, 1, ch.ResendCount, "counter restarts with the new window")
}

func TestOTPThrottleOutlivesCodeExpiry(t *testing.T) {
	svc, _, clock := newTestOTPService()

	for i := 0; i < 3; i++ {
		_, err := svc.Issue("a@example.com")
		require.NoError(t, err)
	}

	// the code is long expired but the 30-minute window is not
	clock.Advance(10 * time.Minute)
	_, err := svc.Issue("a@example.com")
	assert.True(t, errors.Is(err, ErrResendThrottled))
}

func TestOTPIssueRotatesCode(t *testing.T) {
	svc, _, _ := newTestOTPService()

	first, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	second, err := svc.Issue("a@example.com")
	require.NoError(t, err)

	// the superseded code no longer verifies
	if first != second {
		err = svc.Check("a@example.com", first)
		assert.True(t, errors.Is(err, ErrCodeInvalid))
	}
	require.NoError(t, svc.Check("a@example.com", second))
}

func TestOTPClear(t *testing.T) {
	svc, repo, _ := newTestOTPService()

	_, err := svc.Issue("a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Clear("a@example.com"))

	ch, err := repo.Get("a@example.com")
	require.NoError(t, err)
	assert.Nil(t, ch)
}
