package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider/facebook"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider/google"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider/twitter"
)

// InitProviders registers every provider whose credentials are configured.
// Unconfigured providers are absent from the registry and so from the home
// page.
func InitProviders(ctx context.Context, cfg Config, logger *slog.Logger) (*provider.Registry, error) {
	var list []provider.Provider

	if cfg.TwitterConsumerKey != "" && cfg.TwitterConsumerSecret != "" {
		p, err := twitter.New(twitter.Config{
			ConsumerKey:    cfg.TwitterConsumerKey,
			ConsumerSecret: cfg.TwitterConsumerSecret,
			CallbackURL:    cfg.CallbackURL(domain.ProviderTwitter),
		})
		if err != nil {
			return nil, fmt.Errorf("twitter provider: %w", err)
		}
		list = append(list, p)
	}

	if cfg.FacebookAppID != "" && cfg.FacebookAppSecret != "" {
		p, err := facebook.New(facebook.Config{
			AppID:       cfg.FacebookAppID,
			AppSecret:   cfg.FacebookAppSecret,
			CallbackURL: cfg.CallbackURL(domain.ProviderFacebook),
		})
		if err != nil {
			return nil, fmt.Errorf("facebook provider: %w", err)
		}
		list = append(list, p)
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		p, err := google.New(ctx, google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			CallbackURL:  cfg.CallbackURL(domain.ProviderGoogle),
		})
		if err != nil {
			return nil, fmt.Errorf("google provider: %w", err)
		}
		list = append(list, p)
	}

	registry := provider.NewRegistry(list...)
	names := registry.Names()
	if len(names) == 0 {
		logger.Warn("no identity providers configured, nobody can sign in")
	} else {
		logger.Info("identity providers configured", "providers", names)
	}
	return registry, nil
}
