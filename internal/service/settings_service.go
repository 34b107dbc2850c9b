package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/store"
)

// Settings holds the admin-tweakable preference flags.
type Settings struct {
	EmailSubscribed bool `json:"emailSubscribed"`
	PrivacyAccepted bool `json:"privacyAccepted"`
}

type SettingsService struct {
	store    *store.DataStore
	auditSvc *AuditService
	log      *zap.Logger
}

func NewSettingsService(st *store.DataStore, auditSvc *AuditService, log *zap.Logger) *SettingsService {
	return &SettingsService{store: st, auditSvc: auditSvc, log: log}
}

func (s *SettingsService) Get() Settings {
	return Settings{
		EmailSubscribed: s.store.Flag(store.KeyEmailSubscribed),
		PrivacyAccepted: s.store.Flag(store.KeyPrivacyAccepted),
	}
}

func (s *SettingsService) Update(ctx context.Context, in Settings, caller domain.User, ip string) Settings {
	s.store.SetFlag(store.KeyEmailSubscribed, in.EmailSubscribed)
	s.store.SetFlag(store.KeyPrivacyAccepted, in.PrivacyAccepted)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionUpdate),
		ResourceType: "settings",
		ResourceID:   "admin",
		IPAddress:    ip,
	})

	s.log.Info("settings updated",
		zap.Bool("email_subscribed", in.EmailSubscribed),
		zap.Bool("privacy_accepted", in.PrivacyAccepted),
	)
	return s.Get()
}
