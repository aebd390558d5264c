package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/greenmandi/storefront/internal/adapter/sms"
	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/domain/repository"
	pkgAuth "github.com/greenmandi/storefront/internal/pkg/auth"
)

// AuthOutcome reports which branch a successful verification took.
type AuthOutcome string

const (
	// AuthOutcomeExisting means an active account was signed in.
	AuthOutcomeExisting AuthOutcome = "existing"
	// AuthOutcomeReactivated means a deactivated account was restored and signed in.
	AuthOutcomeReactivated AuthOutcome = "reactivated"
	// AuthOutcomeNew means the phone has no account yet and registration
	// must be completed before a session is issued.
	AuthOutcomeNew AuthOutcome = "new"
)

// AuthResult is the outcome of a verified code. User and Token are nil/empty
// when Outcome is AuthOutcomeNew.
type AuthResult struct {
	Outcome AuthOutcome
	User    *model.User
	Token   string
}

// AuthConfig tunes the OTP challenge lifecycle.
type AuthConfig struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
}

// registrationWindow bounds how long a verified challenge stays usable for
// completing registration.
const registrationWindow = 10 * time.Minute

// AuthUseCase drives phone verification and session issuance.
type AuthUseCase struct {
	users      repository.UserRepository
	challenges repository.OTPRepository
	sender     sms.Client
	codes      pkgAuth.CodeGenerator
	hasher     pkgAuth.CodeHasher
	tokens     pkgAuth.Strategy
	cfg        AuthConfig
	now        func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	challenges repository.OTPRepository,
	sender sms.Client,
	codes pkgAuth.CodeGenerator,
	hasher pkgAuth.CodeHasher,
	strategy pkgAuth.Strategy,
	cfg AuthConfig,
) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		challenges: challenges,
		sender:     sender,
		codes:      codes,
		hasher:     hasher,
		tokens:     strategy,
		cfg:        cfg,
		now:        time.Now,
	}
}

// RequestCode generates a verification code for the phone and delivers it by
// SMS. A repeat request inside the resend cooldown is rejected.
func (u *AuthUseCase) RequestCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if !ValidatePhone(phone) {
		return domainErrors.ErrInvalidPhone
	}

	now := u.now()
	existing, err := u.challenges.Get(ctx, phone)
	switch {
	case err == nil:
		if now.Sub(existing.LastSentAt) < u.cfg.ResendCooldown {
			return domainErrors.ErrResendCooldown
		}
	case errors.Is(err, domainErrors.ErrNotFound):
	default:
		return err
	}

	code, err := u.codes.Generate()
	if err != nil {
		return err
	}
	hash, err := u.hasher.Hash(code)
	if err != nil {
		return err
	}

	challenge := &model.OTPChallenge{
		Phone:      phone,
		CodeHash:   hash,
		LastSentAt: now,
		ExpiresAt:  now.Add(u.cfg.CodeTTL),
	}
	if err := u.challenges.Upsert(ctx, challenge); err != nil {
		return err
	}

	if err := u.sender.Send(ctx, phone, code); err != nil {
		// The stored code is undeliverable; drop it so the user is not
		// locked behind the cooldown.
		_ = u.challenges.Delete(ctx, phone)
		return err
	}
	return nil
}

// VerifyCode checks the submitted code and signs the user in. An unknown
// phone yields AuthOutcomeNew with the challenge kept verified so the client
// can complete registration; a deactivated account is restored first.
func (u *AuthUseCase) VerifyCode(ctx context.Context, phone, code string) (*AuthResult, error) {
	phone = strings.TrimSpace(phone)
	if !ValidatePhone(phone) {
		return nil, domainErrors.ErrInvalidPhone
	}

	challenge, err := u.challenges.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCode
		}
		return nil, err
	}

	now := u.now()
	if now.After(challenge.ExpiresAt) {
		return nil, domainErrors.ErrCodeExpired
	}
	if challenge.Attempts >= u.cfg.MaxAttempts {
		return nil, domainErrors.ErrTooManyAttempts
	}

	if err := u.hasher.Compare(challenge.CodeHash, code); err != nil {
		if incErr := u.challenges.IncrementAttempts(ctx, phone); incErr != nil {
			return nil, incErr
		}
		return nil, domainErrors.ErrInvalidCode
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			if err := u.challenges.MarkVerified(ctx, phone, now); err != nil {
				return nil, err
			}
			return &AuthResult{Outcome: AuthOutcomeNew}, nil
		}
		return nil, err
	}

	outcome := AuthOutcomeExisting
	if usr.Deactivated {
		if err := u.users.SetDeactivated(ctx, usr.ID, false); err != nil {
			return nil, err
		}
		usr.Deactivated = false
		outcome = AuthOutcomeReactivated
	}

	if err := u.challenges.Delete(ctx, phone); err != nil {
		return nil, err
	}
	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Outcome: outcome, User: usr, Token: token}, nil
}

// CompleteRegistration creates the account for a phone that recently passed
// verification and returns a signed-in session.
func (u *AuthUseCase) CompleteRegistration(ctx context.Context, phone, name, email string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if !ValidatePhone(phone) {
		return nil, "", domainErrors.ErrInvalidPhone
	}
	if name == "" {
		return nil, "", domainErrors.ErrNotVerified
	}

	challenge, err := u.challenges.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrNotVerified
		}
		return nil, "", err
	}
	now := u.now()
	if challenge.VerifiedAt == nil || now.Sub(*challenge.VerifiedAt) > registrationWindow {
		return nil, "", domainErrors.ErrNotVerified
	}

	usr, err := u.users.Create(ctx, phone, name, strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if err := u.challenges.Delete(ctx, phone); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Deactivate soft-deletes the account. A later verified sign-in restores it.
func (u *AuthUseCase) Deactivate(ctx context.Context, userID int64) error {
	return u.users.SetDeactivated(ctx, userID, true)
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
