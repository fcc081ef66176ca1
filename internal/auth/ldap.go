package auth

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"
)

type LDAPConfig struct {
	Server   string // ldap:// or ldaps:// URL; empty disables
	BindDN   string
	BindPass string
	BaseDN   string
	UserAttr string
	Timeout  time.Duration
}

// Directory is the subset of an LDAP connection the authenticator uses.
type Directory interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// LDAPAuthenticator binds as a service account, finds the user entry and
// rebinds as that user to check the password.
type LDAPAuthenticator struct {
	cfg  LDAPConfig
	dial func(url string) (Directory, error)
	logr *zap.Logger
}

func NewLDAPAuthenticator(cfg LDAPConfig, logr *zap.Logger) *LDAPAuthenticator {
	if cfg.UserAttr == "" {
		cfg.UserAttr = "sAMAccountName"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	a := &LDAPAuthenticator{cfg: cfg, logr: logr}
	a.dial = func(url string) (Directory, error) {
		conn, err := ldap.DialURL(url, ldap.DialWithDialer(&net.Dialer{Timeout: a.cfg.Timeout}))
		if err != nil {
			return nil, err
		}
		conn.SetTimeout(a.cfg.Timeout)
		return conn, nil
	}
	return a
}

func (a *LDAPAuthenticator) Enabled() bool {
	return a != nil && a.cfg.Server != ""
}

// Authenticate returns the entry's display name on success.
func (a *LDAPAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	if !a.Enabled() {
		return "", ErrMethodDisabled
	}
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l, err := a.dial(a.cfg.Server)
	if err != nil {
		a.logr.Error("LDAP dial failed", zap.Error(err), zap.String("server", a.cfg.Server))
		return "", fmt.Errorf("ldap connection failed: %w", err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			a.logr.Debug("LDAP close error", zap.Error(closeErr))
		}
	}()

	if a.cfg.BindDN != "" {
		if err := l.Bind(a.cfg.BindDN, a.cfg.BindPass); err != nil {
			a.logr.Error("LDAP service bind failed", zap.Error(err))
			return "", fmt.Errorf("ldap service bind: %w", err)
		}
	}

	searchReq := ldap.NewSearchRequest(
		a.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1,
		int(a.cfg.Timeout/time.Second),
		false,
		fmt.Sprintf("(%s=%s)", a.cfg.UserAttr, ldap.EscapeFilter(username)),
		[]string{"dn", "cn", "displayName"},
		nil,
	)
	sr, err := l.Search(searchReq)
	if err != nil {
		a.logr.Error("LDAP search failed", zap.Error(err), zap.String("username", username))
		return "", fmt.Errorf("ldap search: %w", err)
	}
	if len(sr.Entries) == 0 {
		a.logr.Warn("LDAP: no entry found", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	entry := sr.Entries[0]
	if err := l.Bind(entry.DN, password); err != nil {
		a.logr.Warn("LDAP bind failed", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	name := entry.GetAttributeValue("displayName")
	if name == "" {
		name = entry.GetAttributeValue("cn")
	}
	if name == "" {
		name = username
	}
	return name, nil
}
