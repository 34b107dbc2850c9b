package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/pkg/auth"
	"github.com/dentware/clinicdesk/pkg/metrics"
)

// ErrInvalidCredentials deliberately does not distinguish unknown email
// from wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	directory  Directory
	store      *store.DataStore
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	log        *zap.Logger
	metrics    *metrics.Collector
}

func NewAuthService(directory Directory, st *store.DataStore, jwtManager *auth.JWTManager, auditSvc *AuditService, log *zap.Logger, m *metrics.Collector) *AuthService {
	return &AuthService{
		directory:  directory,
		store:      st,
		jwtManager: jwtManager,
		auditSvc:   auditSvc,
		log:        log,
		metrics:    m,
	}
}

// Login checks the credential directory and, on success, persists the
// matched identity as the durable session and issues a token pair for the
// HTTP surface.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (domain.User, *domain.TokenPair, error) {
	user, ok := s.directory.Verify(email, password)
	if !ok {
		s.log.Warn("failed login attempt", zap.String("ip", ip))
		s.loginOutcome("failure")
		return domain.User{}, nil, ErrInvalidCredentials
	}

	s.store.SaveSession(user)

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		PatientID: user.PatientID,
	})
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return domain.User{}, nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       user.ID,
		UserRole:     string(user.Role),
		Action:       string(domain.ActionLogin),
		ResourceType: "session",
		IPAddress:    ip,
	})
	s.loginOutcome("success")
	s.log.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return user, pair, nil
}

// Logout clears the persisted session identity.
func (s *AuthService) Logout(ctx context.Context, callerID string, callerRole domain.Role, ip string) {
	s.store.ClearSession()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     string(callerRole),
		Action:       string(domain.ActionLogout),
		ResourceType: "session",
		IPAddress:    ip,
	})
}

// Session returns the persisted identity, if any. It survives restarts and
// only ends on explicit logout.
func (s *AuthService) Session() (domain.User, bool) {
	return s.store.Session()
}

// Refresh issues a new token pair given a valid refresh token, provided
// the user still exists in the directory.
func (s *AuthService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, ok := s.directory.ByID(claims.UserID)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		PatientID: user.PatientID,
	})
}

func (s *AuthService) loginOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}
