package services

import (
	"context"
	"errors"
	"time"

	"gsep-planner/internal/auth"
	"gsep-planner/internal/logger"
	"gsep-planner/internal/store"

	"go.uber.org/zap"
)

// AdminService unlocks the admin panel. A successful unlock issues a signed
// admin session and opens the panel in the workspace UI state.
type AdminService struct {
	jwt          *auth.JWTManager
	ldap         *auth.LDAPAuthenticator
	planner      *PlannerService
	passcodeHash string
	ttl          time.Duration
	logr         *logger.Logger
}

func NewAdminService(jwt *auth.JWTManager, ldap *auth.LDAPAuthenticator, planner *PlannerService, passcodeHash string, ttl time.Duration, logr *logger.Logger) *AdminService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AdminService{
		jwt:          jwt,
		ldap:         ldap,
		planner:      planner,
		passcodeHash: passcodeHash,
		ttl:          ttl,
		logr:         logr,
	}
}

// Methods lists the configured unlock methods.
func (s *AdminService) Methods() []string {
	out := []string{}
	if s.passcodeHash != "" {
		out = append(out, "passcode")
	}
	if s.ldap.Enabled() {
		out = append(out, "ldap")
	}
	return out
}

func (s *AdminService) UnlockWithPasscode(passcode string) (*auth.AdminToken, error) {
	if err := auth.CheckPasscode(s.passcodeHash, passcode); err != nil {
		s.logr.Warn("passcode unlock failed", zap.Error(err))
		return nil, err
	}
	return s.unlock("planner", "passcode")
}

func (s *AdminService) UnlockWithLDAP(ctx context.Context, username, password string) (*auth.AdminToken, error) {
	if _, err := s.ldap.Authenticate(ctx, username, password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) && !errors.Is(err, auth.ErrMethodDisabled) {
			s.logr.Error("ldap unlock error", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}
	return s.unlock(username, "ldap")
}

func (s *AdminService) unlock(subject, method string) (*auth.AdminToken, error) {
	tok, err := s.jwt.IssueAdminToken(subject, method, s.ttl)
	if err != nil {
		return nil, err
	}
	if _, err := s.planner.CloseDialog(store.DialogPasscode); err != nil {
		return nil, err
	}
	if _, err := s.planner.OpenDialog(store.DialogAdminPanel); err != nil {
		return nil, err
	}
	s.logr.Info("admin panel unlocked", zap.String("subject", subject), zap.String("method", method))
	return tok, nil
}

// Lock closes the admin panel. Issued tokens stay valid until they expire.
func (s *AdminService) Lock() (store.UIState, error) {
	return s.planner.CloseDialog(store.DialogAdminPanel)
}
