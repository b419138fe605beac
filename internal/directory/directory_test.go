package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthenticatorSuccess(t *testing.T) {
	auth := NewTestAuthenticator()

	res, err := auth.Authenticate(context.Background(), "teacher", "teacher")
	require.NoError(t, err)
	assert.Equal(t, "teacher", res.User.Username)
	assert.Equal(t, "Test Teacher", res.User.DisplayName)
	assert.Equal(t, []string{"teaching-staff"}, res.Groups)
}

func TestStaticAuthenticatorCaseInsensitiveUsername(t *testing.T) {
	auth := NewTestAuthenticator()

	res, err := auth.Authenticate(context.Background(), "Admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)
	assert.Equal(t, []string{"system-admin"}, res.Groups)
}

func TestStaticAuthenticatorBadPassword(t *testing.T) {
	auth := NewTestAuthenticator()

	_, err := auth.Authenticate(context.Background(), "teacher", "wrong")
	require.Error(t, err)

	_, err = auth.Authenticate(context.Background(), "nobody", "nobody")
	require.Error(t, err)
}

func TestGroupNamesFromMemberOf(t *testing.T) {
	groups := groupNamesFromMemberOf([]string{
		"CN=Teaching-Staff,OU=Groups,DC=school,DC=local",
		"cn=Leadership,OU=Groups,DC=school,DC=local",
		"OU=Broken,DC=school,DC=local",
	})
	assert.Equal(t, []string{"teaching-staff", "leadership"}, groups)
}
