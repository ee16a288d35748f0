package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"max.ks1230/budget-app/internal/model/customerr"
)

const registerPromptTemplate = "User '%s' does not exist. Register as a new user?"

type credentialStorage interface {
	Credentials(ctx context.Context) (map[string]string, error)
	SaveCredentials(ctx context.Context, creds map[string]string) error
}

type confirmer interface {
	Confirm(message string) bool
}

// Service is the credential store: a table of normalized usernames to
// one-way password digests, plus the login protocol that gates the app.
type Service struct {
	storage   credentialStorage
	confirmer confirmer
}

func NewService(storage credentialStorage, confirmer confirmer) *Service {
	return &Service{
		storage:   storage,
		confirmer: confirmer,
	}
}

// Lookup returns the stored digest for an already-normalized username.
func (s *Service) Lookup(ctx context.Context, username string) (string, bool, error) {
	creds, err := s.storage.Credentials(ctx)
	if err != nil {
		return "", false, errors.Wrap(err, "lookup")
	}
	hash, ok := creds[username]
	return hash, ok, nil
}

// Register stores the password digest for a new username. An existing
// entry is left untouched: there is no password change path.
func (s *Service) Register(ctx context.Context, username, rawPassword string) error {
	creds, err := s.storage.Credentials(ctx)
	if err != nil {
		return errors.Wrap(err, "register")
	}
	if _, ok := creds[username]; ok {
		return nil
	}
	creds[username] = hashPassword(rawPassword)
	return errors.Wrap(s.storage.SaveCredentials(ctx, creds), "register")
}

func (s *Service) Verify(ctx context.Context, username, rawPassword string) (bool, error) {
	hash, ok, err := s.Lookup(ctx, username)
	if err != nil {
		return false, errors.Wrap(err, "verify")
	}
	return ok && hash == hashPassword(rawPassword), nil
}

// Authenticate runs the confirm-to-create login flow. It returns the
// normalized username and whether the user was registered on this call.
// An unknown username is offered registration; declining aborts with a
// RegistrationDeclinedError, which callers render as a silent no-op.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, bool, error) {
	user := strings.ToUpper(strings.TrimSpace(username))
	pass := strings.TrimSpace(password)

	if user == "" || pass == "" {
		return "", false, &customerr.MissingCredentialsError{}
	}

	creds, err := s.storage.Credentials(ctx)
	if err != nil {
		return "", false, errors.Wrap(err, "authenticate")
	}

	if hash, known := creds[user]; known {
		if hash != hashPassword(pass) {
			return "", false, &customerr.InvalidPasswordError{User: user}
		}
		return user, false, nil
	}

	if !s.confirmer.Confirm(fmt.Sprintf(registerPromptTemplate, user)) {
		return "", false, &customerr.RegistrationDeclinedError{User: user}
	}

	creds[user] = hashPassword(pass)
	if err = s.storage.SaveCredentials(ctx, creds); err != nil {
		return "", false, errors.Wrap(err, "authenticate")
	}
	return user, true, nil
}

func hashPassword(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}
