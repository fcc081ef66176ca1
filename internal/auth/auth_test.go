package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"
)

func testManager(t *testing.T, issuer string) *JWTManager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return NewJWTManagerFromKey(key, issuer)
}

func TestIssueAndVerify(t *testing.T) {
	m := testManager(t, "gsep-planner")
	tok, err := m.IssueAdminToken("planner", "passcode", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.JTI == "" || tok.Token == "" {
		t.Fatalf("empty token: %+v", tok)
	}

	claims, err := m.VerifyToken(tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["role"] != RoleAdmin {
		t.Errorf("role = %v, want %v", claims["role"], RoleAdmin)
	}
	if claims["auth_method"] != "passcode" {
		t.Errorf("auth_method = %v, want passcode", claims["auth_method"])
	}
}

func TestVerifyRejectsForeignAndExpired(t *testing.T) {
	m := testManager(t, "gsep-planner")
	other := testManager(t, "gsep-planner")

	foreign, _ := other.IssueAdminToken("x", "passcode", time.Minute)
	if _, err := m.VerifyToken(foreign.Token); err == nil {
		t.Error("token signed by another key verified")
	}

	expired, _ := m.IssueAdminToken("x", "passcode", -time.Minute)
	if _, err := m.VerifyToken(expired.Token); err == nil {
		t.Error("expired token verified")
	}

	wrongIssuer := NewJWTManagerFromKey(m.privateKey, "someone-else")
	tok, _ := wrongIssuer.IssueAdminToken("x", "passcode", time.Minute)
	if _, err := m.VerifyToken(tok.Token); err == nil {
		t.Error("token from another issuer verified")
	}
}

func TestLoadOrGenerateWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	m, generated, err := LoadOrGenerate(filepath.Join(dir, "priv.pem"), filepath.Join(dir, "pub.pem"), "x")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !generated || m.PublicKey() == nil {
		t.Errorf("generated = %v, key = %v", generated, m.PublicKey())
	}
}

func TestCheckPasscode(t *testing.T) {
	hash, err := HashPasscode("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := CheckPasscode(hash, "1234"); err != nil {
		t.Errorf("correct passcode: %v", err)
	}
	if err := CheckPasscode(hash, "4321"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong passcode err = %v, want ErrInvalidCredentials", err)
	}
	if err := CheckPasscode("", "1234"); !errors.Is(err, ErrMethodDisabled) {
		t.Errorf("no hash err = %v, want ErrMethodDisabled", err)
	}
}

type fakeDirectory struct {
	users  map[string]string // dn -> password
	binds  []string
	closed bool
}

func (d *fakeDirectory) Bind(username, password string) error {
	d.binds = append(d.binds, username)
	if pw, ok := d.users[username]; ok && pw == password {
		return nil
	}
	return ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("bad bind"))
}

func (d *fakeDirectory) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	if req.Filter != "(uid=jdoe)" {
		return &ldap.SearchResult{}, nil
	}
	entry := ldap.NewEntry("uid=jdoe,ou=people,dc=example,dc=com", map[string][]string{
		"displayName": {"Jane Doe"},
	})
	return &ldap.SearchResult{Entries: []*ldap.Entry{entry}}, nil
}

func (d *fakeDirectory) Close() error {
	d.closed = true
	return nil
}

func newFakeLDAP(dir *fakeDirectory) *LDAPAuthenticator {
	a := NewLDAPAuthenticator(LDAPConfig{
		Server:   "ldap://directory.test",
		BindDN:   "cn=svc,dc=example,dc=com",
		BindPass: "svc",
		BaseDN:   "dc=example,dc=com",
		UserAttr: "uid",
	}, zap.NewNop())
	a.dial = func(string) (Directory, error) { return dir, nil }
	return a
}

func TestLDAPAuthenticate(t *testing.T) {
	dir := &fakeDirectory{users: map[string]string{
		"cn=svc,dc=example,dc=com":             "svc",
		"uid=jdoe,ou=people,dc=example,dc=com": "secret",
	}}
	a := newFakeLDAP(dir)

	name, err := a.Authenticate(context.Background(), "jdoe", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", name)
	}
	if len(dir.binds) != 2 || !dir.closed {
		t.Errorf("binds = %v closed = %v", dir.binds, dir.closed)
	}

	if _, err := a.Authenticate(context.Background(), "jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := a.Authenticate(context.Background(), "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}
}

func TestLDAPDisabled(t *testing.T) {
	a := NewLDAPAuthenticator(LDAPConfig{}, zap.NewNop())
	if a.Enabled() {
		t.Fatal("empty server should disable ldap")
	}
	if _, err := a.Authenticate(context.Background(), "u", "p"); !errors.Is(err, ErrMethodDisabled) {
		t.Errorf("err = %v, want ErrMethodDisabled", err)
	}
}
