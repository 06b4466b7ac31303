package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dermacare/internal/models"
	"dermacare/internal/repositories"
)

var (
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrNotVerified       = errors.New("email not verified")
)

// RegistrationService drives the two-phase registration flow:
// RequestCode -> ConfirmCode -> Finalize. The account is materialized only
// at Finalize, and uniqueness is enforced by the repository's conditional
// insert, never by a check-then-insert in this layer.
type RegistrationService struct {
	users  repositories.UserRepository
	otp    *OTPService
	emails EmailService
	auth   AuthService
}

func NewRegistrationService(users repositories.UserRepository, otp *OTPService, emails EmailService, auth AuthService) *RegistrationService {
	return &RegistrationService{users: users, otp: otp, emails: emails, auth: auth}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestCode issues a fresh challenge and dispatches it by mail. A delivery
// failure is logged but does not roll back issuance or refund the resend
// slot.
func (s *RegistrationService) RequestCode(email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}

	code, err := s.otp.Issue(email)
	if err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendOTPEmail(email, code); err != nil {
			log.Printf("[otp][send] warning: failed to deliver code to %s: %v", email, err)
		}
	}
	log.Printf("[otp][send] challenge issued for %s", email)
	return nil
}

// ConfirmCode checks the candidate against the pending challenge and, on
// success, moves it to the verified state.
func (s *RegistrationService) ConfirmCode(email, code string) error {
	return s.otp.Check(normalizeEmail(email), code)
}

type FinalizeRequest struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Age      int
	Gender   string
	SkinType string
}

// Finalize creates the account for a verified challenge. Two concurrent
// calls for the same email race on the conditional insert; exactly one wins
// and the loser gets ErrAlreadyRegistered.
func (s *RegistrationService) Finalize(req FinalizeRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	verified, err := s.otp.Verified(email)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrNotVerified
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         strings.TrimSpace(req.Phone),
		PasswordHash:  hash,
		EmailVerified: true,
		Age:           req.Age,
		Gender:        req.Gender,
		SkinType:      req.SkinType,
		IsActive:      true,
		DateJoined:    time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	if err := s.otp.Clear(email); err != nil {
		log.Printf("[register][finalize] warning: failed to clear challenge for %s: %v", email, err)
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[register][finalize] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	log.Printf("[register][finalize] account created id=%d email=%s", user.ID, user.Email)
	return user, nil
}
