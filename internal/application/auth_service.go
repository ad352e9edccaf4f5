package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
	"github.com/oksasatya/coursehub-user-service/pkg/mailer"
	tpl "github.com/oksasatya/coursehub-user-service/pkg/mailer/templates"
)

const resetTokenBytes = 32

// RegisterCommand is a validated registration request.
type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// ResetCommand is a validated forgot-password request plus request metadata
// shown in the email.
type ResetCommand struct {
	Email     string
	IP        string
	UserAgent string
}

type ChangePasswordCommand struct {
	CurrentPassword string
	NewPassword     string
}

// ResetOptions controls the password-reset flow.
type ResetOptions struct {
	TTL     time.Duration
	BaseURL string
	// HideUnknownEmail answers unknown emails like known ones.
	HideUnknownEmail bool
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      entity.AuthenticatedUser
}

type Service struct {
	Store    *CredentialStore
	JWT      *helpers.JWTManager
	Notifier mailer.Notifier
	Logger   logrus.FieldLogger
	Reset    ResetOptions
	AppName  string
	Now      func() time.Time

	// dummyHash is compared against when the email is unknown so that both
	// login failure paths cost one hash evaluation.
	dummyHash string
}

func NewService(store *CredentialStore, jwt *helpers.JWTManager, notifier mailer.Notifier, logger logrus.FieldLogger, reset ResetOptions) *Service {
	s := &Service{
		Store:    store,
		JWT:      jwt,
		Notifier: notifier,
		Logger:   logger,
		Reset:    reset,
		Now:      time.Now,
	}
	if h, err := store.Hasher.Hash("dummy-password-for-timing"); err == nil {
		s.dummyHash = h
	}
	return s
}

// Register creates a user. No token is issued; the caller logs in separately.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*entity.User, error) {
	role := cmd.Role
	if role == "" {
		role = entity.RoleStudent
	}
	u, err := s.Store.CreateUser(ctx, cmd.Name, cmd.Email, cmd.Password, role)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			s.Logger.WithField("email", cmd.Email).Warn("attempt to register with existing email")
			return nil, ErrDuplicateEmail
		}
		s.Logger.WithError(err).WithField("email", cmd.Email).Error("register user failed")
		return nil, err
	}
	statRegistrations.Add(1)
	s.Logger.WithFields(logrus.Fields{"email": u.Email, "user_id": u.ID, "role": u.Role}).Info("new user registered")
	return u, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		if s.dummyHash != "" {
			_, _ = s.Store.Hasher.Compare(s.dummyHash, password)
		}
		statLoginsFailed.Add(1)
		s.Logger.WithField("email", email).Warn("login attempt with non-existent email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.Store.VerifySecret(u, password)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("password verification failed")
		return nil, err
	}
	if !ok {
		statLoginsFailed.Add(1)
		s.Logger.WithField("email", email).Warn("invalid password attempt")
		return nil, ErrInvalidCredentials
	}

	id := u.Identity()
	token, exp, err := s.JWT.GenerateToken(id)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	statLoginsOK.Add(1)
	s.Logger.WithFields(logrus.Fields{"email": u.Email, "user_id": u.ID}).Info("user logged in")
	return &Session{Token: token, ExpiresAt: exp, User: id}, nil
}

// Authorize verifies a bearer token and resolves it to a live user.
func (s *Service) Authorize(ctx context.Context, token string) (entity.AuthenticatedUser, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return entity.AuthenticatedUser{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	u, err := s.Store.FindByID(ctx, claims.UserID)
	if err != nil {
		return entity.AuthenticatedUser{}, err
	}
	return u.Identity(), nil
}

// Profile returns the current record for id without secret material.
func (s *Service) Profile(ctx context.Context, id string) (entity.AuthenticatedUser, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return entity.AuthenticatedUser{}, err
	}
	return u.Identity(), nil
}

// UpdateProfile changes the display name. Email and role are not editable here.
func (s *Service) UpdateProfile(ctx context.Context, id, name string) (entity.AuthenticatedUser, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return entity.AuthenticatedUser{}, err
	}
	u.Name = name
	if err := s.Store.UpdateProfile(ctx, u); err != nil {
		return entity.AuthenticatedUser{}, err
	}
	s.Logger.WithField("user_id", id).Info("profile updated")
	return u.Identity(), nil
}

// ChangePassword re-verifies the current password before storing the new one.
func (s *Service) ChangePassword(ctx context.Context, id string, cmd ChangePasswordCommand) error {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.Store.VerifySecret(u, cmd.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		s.Logger.WithField("user_id", id).Warn("password change with wrong current password")
		return ErrIncorrectPassword
	}
	if err := s.Store.UpdateSecret(ctx, id, cmd.NewPassword); err != nil {
		return err
	}
	s.Logger.WithField("user_id", id).Info("password changed")
	return nil
}

// RequestReset stores a fresh reset token on the user and sends the link.
// A failed send leaves the token stored; the user has to ask again.
func (s *Service) RequestReset(ctx context.Context, cmd ResetCommand) error {
	u, err := s.Store.FindByEmail(ctx, cmd.Email)
	if errors.Is(err, ErrUserNotFound) {
		s.Logger.WithField("email", cmd.Email).Warn("forgot password attempt with non-existent email")
		if s.Reset.HideUnknownEmail {
			return nil
		}
		return ErrEmailNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	token, err := helpers.GenResetToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	now := s.Now()
	expiry := now.Add(s.Reset.TTL)
	if err := s.Store.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := strings.TrimRight(s.Reset.BaseURL, "/") + "/" + token
	data := tpl.NewForgotPasswordData(u.Name, u.Email, link, s.Reset.TTL,
		tpl.WithAppName(s.AppName),
		tpl.WithTime(now),
		tpl.WithExpiresAt(expiry),
		tpl.WithIP(cmd.IP),
		tpl.WithUserAgent(cmd.UserAgent),
	)
	subject, text, html, err := tpl.Render(tpl.ForgotPassword, data)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	job := mailer.EmailJob{To: u.Email, Subject: subject, Text: text, HTML: html}
	if err := s.Notifier.Send(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email dispatch failed")
		return fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}
	statResetRequested.Add(1)
	s.Logger.WithFields(logrus.Fields{"email": u.Email, "user_id": u.ID}).Info("password reset requested")
	return nil
}
