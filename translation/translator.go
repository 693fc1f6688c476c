package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tubenotes/config"
)

// Translator renders text into the language identified by code
type Translator interface {
	Translate(ctx context.Context, text, code string) (string, error)
}

// ErrEmptyTranslation is returned when the service answers without any text
var ErrEmptyTranslation = errors.New("translation service returned no text")

// New selects the translation backend named in cfg
func New(ctx context.Context, cfg config.TranslatorConfig, logger *slog.Logger) (Translator, error) {
	switch cfg.Backend {
	case config.TranslatorWeb, "":
		return NewWebClient(nil, cfg.Endpoint, logger), nil
	case config.TranslatorCloud:
		return NewCloudClient(ctx, cfg.CloudAPIKey, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown translator backend %q", cfg.Backend)
	}
}
