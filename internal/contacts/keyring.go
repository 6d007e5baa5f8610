package contacts

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/zalando/go-keyring"
)

// PasswordFromKeyring returns the stored password of user, or "" when
// none has been saved.
func PasswordFromKeyring(user string) (string, error) {
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return pass, nil
}

// SavePassword stores the password of user in the OS keyring.
func SavePassword(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return nil
}
