package contacts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datepicker/internal/contacts"
	"github.com/zalando/go-keyring"
)

func TestPasswordRoundTrip(t *testing.T) {
	keyring.MockInit()

	pass, err := contacts.PasswordFromKeyring("alice")
	require.NoError(t, err, "A missing entry is not an error")
	assert.Empty(t, pass)

	require.NoError(t, contacts.SavePassword("alice", "s3cret"))

	pass, err = contacts.PasswordFromKeyring("alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)
}
