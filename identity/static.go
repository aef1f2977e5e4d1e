package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Account is one login the static provider accepts.
type Account struct {
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"`
}

// StaticProvider verifies logins against a fixed account list and mints
// random bearer tokens for the storage API. It stands in for the corporate
// identity provider in deployments that do not have one.
type StaticProvider struct {
	accounts map[string]Account
}

// NewStaticProvider builds a provider from the given accounts. With no
// accounts configured it seeds a default admin login so a fresh deployment
// is reachable.
func NewStaticProvider(accounts []Account) (*StaticProvider, error) {
	p := &StaticProvider{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		p.accounts[a.Username] = a
	}

	if len(p.accounts) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		p.accounts["admin@example.com"] = Account{
			Username:     "admin@example.com",
			Name:         "Administrator",
			PasswordHash: string(hash),
		}
		log.Println("No accounts configured; default login created (admin@example.com / admin)")
	}
	return p, nil
}

// LoadAccounts reads the account list from a YAML file. An empty path
// yields no accounts, which makes NewStaticProvider seed the default admin.
func LoadAccounts(path string) ([]Account, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	var accounts []Account
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	return accounts, nil
}

func (p *StaticProvider) Authenticate(username, password string) (*Identity, error) {
	account, ok := p.accounts[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Identity{Username: account.Username, Name: account.Name}, nil
}

func (p *StaticProvider) AcquireCredential(ctx context.Context, scopes []string) (*Credential, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("acquire storage credential: %w", err)
	}
	return &Credential{Token: token, ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
}

func (p *StaticProvider) SignOut(username string) {
	// Stateless provider: the session cookie is the only thing to clear,
	// and the HTTP layer owns it.
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
