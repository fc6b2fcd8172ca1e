package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/aussiebroadwan/hellosocial/pkg/jwtx"
)

// NewSealer loads the master key named by cfg and builds the credential
// sealer shared by the store and the login handler.
func NewSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	key, ephemeral, err := cryptox.LoadMasterKey(cfg.MasterKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load master key: %w", err)
	}

	switch {
	case ephemeral:
		logger.Warn("no master key configured, using an ephemeral key; stored credentials will be unreadable after restart")
	case cfg.MasterKeyPath != "":
		logger.Info("master key loaded", "path", cfg.MasterKeyPath)
	}

	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("credential sealer: %w", err)
	}
	return sealer, nil
}

// InitStateSigner builds the signer for login state cookies. Without an
// explicit STATE_SECRET the secret is derived from the master key, so it is
// stable across restarts whenever the master key is.
func InitStateSigner(cfg Config, sealer *cryptox.Sealer, logger *slog.Logger) (*jwtx.StateSigner, error) {
	secret := []byte(cfg.StateSecret)
	if len(secret) == 0 {
		secret = sealer.StateSecret()
		logger.Debug("login state secret derived from master key")
	}

	signer, err := jwtx.NewStateSigner(secret, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("state signer: %w", err)
	}
	return signer, nil
}
