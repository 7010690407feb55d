package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/internal/domain/entity"
	repo "github.com/finledger/finledger/internal/domain/repository"
	"github.com/finledger/finledger/pkg/helpers"
	"github.com/finledger/finledger/pkg/mailer"
)

func keyResetToken(t string) string { return "pwd:reset:token:" + t }

// AuthService orchestrates registration and login. Registration writes one
// user record; login writes nothing and only issues a token.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
	Cfg    *config.Config
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, cfg *config.Config) *AuthService {
	return &AuthService{
		Repo:   repo,
		JWT:    jwt,
		Redis:  rdb,
		Logger: logger,
		Pub:    pub,
		Cfg:    cfg,
	}
}

// Register creates a new account with a bcrypt-hashed password. No token is
// issued; the client logs in as a separate step.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	exists, err := s.Repo.ExistsByEmail(email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateAccount
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}

	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(u); err != nil {
		return err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return nil
}

// Login verifies the credential and returns a signed token bound to the
// account email. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Issue(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ResetInit stores a one-time reset token in Redis and enqueues the reset
// email. It succeeds whether or not the email exists, so callers cannot probe
// for registered accounts; the returned link is empty for unknown emails.
func (s *AuthService) ResetInit(ctx context.Context, email string) (string, error) {
	u, _ := s.Repo.GetByEmail(email)
	if u == nil || s.Redis == nil {
		return "", nil
	}

	tok := uuid.NewString()
	if err := s.Redis.Set(ctx, keyResetToken(tok), u.ID, 30*time.Minute).Err(); err != nil {
		return "", err
	}
	link := s.Cfg.ResetPasswordURL + "?token=" + tok

	if s.Pub != nil && s.Cfg != nil && s.Cfg.MailSendEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateResetPassword,
			Data:     map[string]any{"ResetURL": link, "ExpiresIn": "30 minutes"},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue reset email failed")
		}
	}
	return link, nil
}

// ResetConfirm consumes a reset token and replaces the account password.
func (s *AuthService) ResetConfirm(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return errors.New("reset unavailable")
	}
	uid, err := s.Redis.Get(ctx, keyResetToken(token)).Result()
	if err != nil || uid == "" {
		return ErrInvalidCredentials
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(uid, hash); err != nil {
		return err
	}
	s.Redis.Del(ctx, keyResetToken(token))
	return nil
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
