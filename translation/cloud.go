package translation

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

const cloudTranslationScope = "https://www.googleapis.com/auth/cloud-translation"

// CloudClient calls Cloud Translation v2
type CloudClient struct {
	service *translate.Service
}

// NewCloudClient authenticates with apiKey, or with the service account JSON
// at credentialsFile when no key is given.
func NewCloudClient(ctx context.Context, apiKey, credentialsFile string, opts ...option.ClientOption) (*CloudClient, error) {
	switch {
	case apiKey != "":
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, cloudTranslationScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", err)
		}
		opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	default:
		return nil, errors.New("cloud translation needs GOOGLE_TRANSLATE_API_KEY or GOOGLE_APPLICATION_CREDENTIALS")
	}

	service, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Translation service: %w", err)
	}
	return &CloudClient{service: service}, nil
}

func (c *CloudClient) Translate(ctx context.Context, text, code string) (string, error) {
	resp, err := c.service.Translations.List([]string{text}, code).Format("text").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("cloud translate: %w", err)
	}
	return firstTranslation(resp)
}

func firstTranslation(resp *translate.TranslationsListResponse) (string, error) {
	if resp == nil || len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return "", ErrEmptyTranslation
	}
	text := html.UnescapeString(resp.Translations[0].TranslatedText)
	if text == "" {
		return "", ErrEmptyTranslation
	}
	return text, nil
}
