package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/pkg/config"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

var cnPattern = regexp.MustCompile(`(?i)^CN=([^,]+)`)

// LDAPAuthenticator binds as the user against an LDAP/Active Directory server
// and reads displayName, mail and memberOf from the user entry.
type LDAPAuthenticator struct {
	cfg    config.LDAPConfig
	logger *zap.Logger
}

// NewLDAPAuthenticator constructs an LDAP-backed authenticator.
func NewLDAPAuthenticator(cfg config.LDAPConfig, logger *zap.Logger) *LDAPAuthenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LDAPAuthenticator{cfg: cfg, logger: logger}
}

// Authenticate performs a user bind followed by a sAMAccountName search.
func (a *LDAPAuthenticator) Authenticate(ctx context.Context, username, password string) (*Result, error) {
	conn, err := a.dial()
	if err != nil {
		a.logger.Warn("ldap dial failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDirectory.Code, appErrors.ErrDirectory.Status, "directory server unreachable")
	}
	defer conn.Close()

	conn.SetTimeout(a.cfg.ConnectTimeout)

	userDN := fmt.Sprintf("%s@%s", username, a.cfg.BindDomain)
	if err := conn.Bind(userDN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		a.logger.Warn("ldap bind failed", zap.String("user", username), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDirectory.Code, appErrors.ErrDirectory.Status, "directory bind failed")
	}

	result := &Result{
		User: models.DirectoryUser{Username: username, DisplayName: username},
	}

	search := ldap.NewSearchRequest(
		a.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
		[]string{"displayName", "mail", "memberOf", "sAMAccountName"},
		nil,
	)

	res, err := conn.Search(search)
	if err != nil || len(res.Entries) == 0 {
		// A bound user with a failed profile search still authenticates;
		// they just carry no groups.
		if err != nil {
			a.logger.Warn("ldap search failed", zap.String("user", username), zap.Error(err))
		}
		return result, nil
	}

	entry := res.Entries[0]
	if v := entry.GetAttributeValue("sAMAccountName"); v != "" {
		result.User.Username = v
	}
	if v := entry.GetAttributeValue("displayName"); v != "" {
		result.User.DisplayName = v
	}
	result.User.Email = entry.GetAttributeValue("mail")
	result.Groups = groupNamesFromMemberOf(entry.GetAttributeValues("memberOf"))

	return result, nil
}

func (a *LDAPAuthenticator) dial() (*ldap.Conn, error) {
	if a.cfg.UseTLS {
		url := fmt.Sprintf("ldaps://%s:%d", a.cfg.Host, a.cfg.Port)
		return ldap.DialURL(url, ldap.DialWithTLSConfig(&tls.Config{
			InsecureSkipVerify: a.cfg.SkipTLSVerify, //nolint:gosec
		}))
	}
	return ldap.DialURL(fmt.Sprintf("ldap://%s:%d", a.cfg.Host, a.cfg.Port))
}

// groupNamesFromMemberOf extracts lowercase CN values from memberOf DNs.
func groupNamesFromMemberOf(dns []string) []string {
	groups := make([]string, 0, len(dns))
	for _, dn := range dns {
		if m := cnPattern.FindStringSubmatch(dn); m != nil {
			groups = append(groups, strings.ToLower(m[1]))
		}
	}
	return groups
}
