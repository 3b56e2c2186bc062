package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shrawan0701/webanalytics/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrNoCredentials signals that no session is persisted locally.
	ErrNoCredentials = errors.New("no stored credentials")
)

// CredentialRepository persists the token+user pair in durable local storage.
// Save and Clear act on both halves at once; a partially written pair is never
// observable.
type CredentialRepository interface {
	Save(ctx context.Context, token string, user model.User) error
	Load(ctx context.Context) (string, *model.User, error)
	SaveUser(ctx context.Context, user model.User) error
	Clear(ctx context.Context) error
}

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository returns a GORM-backed CredentialRepository.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Save(ctx context.Context, token string, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	cred := model.Credential{ID: 1, Token: token, UserJSON: string(raw)}
	return r.db.WithContext(ctx).Save(&cred).Error
}

func (r *credentialRepository) Load(ctx context.Context) (string, *model.User, error) {
	var cred model.Credential
	if err := r.db.WithContext(ctx).First(&cred, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNoCredentials
		}
		return "", nil, err
	}

	if cred.Token == "" || cred.UserJSON == "" {
		return "", nil, ErrNoCredentials
	}

	var user model.User
	if err := json.Unmarshal([]byte(cred.UserJSON), &user); err != nil {
		return "", nil, fmt.Errorf("decode user: %w", err)
	}

	return cred.Token, &user, nil
}

// SaveUser replaces the stored user identity without touching the token.
func (r *credentialRepository) SaveUser(ctx context.Context, user model.User) error {
	token, _, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.Save(ctx, token, user)
}

func (r *credentialRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Delete(&model.Credential{}, 1)
	return result.Error
}
