package engine

import (
	"log/slog"

	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/zalando/go-keyring"
)

// LookupPassword returns the password stored in the OS keyring for user
// under config.KeyringService. A missing entry yields an empty password.
func LookupPassword(user string) string {
	if user == "" {
		return ""
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return pass
}
