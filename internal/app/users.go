package app

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/domain"
)

// UserService owns the account verification lifecycle: registration
// creates an unverified row with a one-shot code, verification consumes
// the code, authentication refuses unverified accounts. The cleanup
// sweep may delete unverified rows concurrently with any of these.
type UserService struct {
	users  domain.UserRepository
	mailer domain.Mailer
}

func NewUserService(users domain.UserRepository, mailer domain.Mailer) *UserService {
	return &UserService{users: users, mailer: mailer}
}

func (s *UserService) Register(ctx context.Context, email, username, password string) error {
	taken, err := s.users.UserTaken(ctx, email, username)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict("email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code := verificationCode()
	u := domain.User{
		Email:            email,
		Username:         username,
		PasswordHash:     string(hash),
		VerificationCode: &code,
		Verified:         false,
		RegisteredAt:     time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return err
	}

	// Delivery is best-effort and outside the registration write; a mail
	// failure never fails the registration.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendVerificationCode(sendCtx, u.Email, code); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("verification mail failed")
		}
	}()

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	return nil
}

// Verify consumes the code. A missing user, a wrong code and a row swept
// away mid-flight all surface as the same auth failure so callers cannot
// probe for account existence.
func (s *UserService) Verify(ctx context.Context, email, code string) error {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Auth("invalid verification code")
		}
		return err
	}
	if u.VerificationCode == nil || *u.VerificationCode != code {
		return domain.Auth("invalid verification code")
	}
	ok, err := s.users.MarkVerified(ctx, u.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Auth("invalid verification code")
	}
	log.Info().Int64("user_id", u.ID).Msg("user verified")
	return nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.User{}, domain.Auth("invalid username or password")
		}
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.Auth("invalid username or password")
	}
	if !u.Verified {
		return domain.User{}, domain.Auth("user not verified")
	}
	return u, nil
}

// verificationCode draws uniformly from the full 6-digit space.
func verificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand reads cannot fail on supported platforms
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
