package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"viva/pkg/config"
	"viva/pkg/logger"
)

// Clients bundles the Firebase services the API talks to.
type Clients struct {
	App       *fbapp.App
	Auth      *auth.Client
	Firestore *firestore.Client
	Option    option.ClientOption
}

// CredentialsOption picks the inline service account JSON when set and falls
// back to the credentials file.
func CredentialsOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.FirebaseServiceAccount != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccount)), nil
	}

	if _, err := os.Stat(cfg.FirebaseCredentialPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account file does not exist: %s", cfg.FirebaseCredentialPath)
	}

	logger.Info("Using Firebase service account from file: %s", cfg.FirebaseCredentialPath)
	return option.WithCredentialsFile(cfg.FirebaseCredentialPath), nil
}

func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	opt, err := CredentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &Clients{
		App:       app,
		Auth:      authClient,
		Firestore: firestoreClient,
		Option:    opt,
	}, nil
}

func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
