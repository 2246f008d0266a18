package account

import (
	"fmt"

	"storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Seed is the initialization record for one account
type Seed struct {
	ID       int64  `yaml:"id" db:"id"`
	Username string `yaml:"username" db:"username"`
	Password string `yaml:"password" db:"password"`
}

// MaxCredentialBytes is the longest credential bcrypt can hash
const MaxCredentialBytes = 72

// Options configures account construction
type Options struct {
	// HashCost is the bcrypt cost for seeded credentials. Zero means
	// bcrypt.DefaultCost.
	HashCost int

	// StrictMergeStock re-validates merged cart quantities against stock.
	StrictMergeStock bool
}

// Directory holds every account of a system instance. Accounts are created
// once from seeds and never added or removed afterwards.
type Directory struct {
	byID       map[int64]*Account
	byUsername map[string]*Account
}

// NewDirectory hashes seed credentials and builds the directory
func NewDirectory(seeds []Seed, opts Options) (*Directory, error) {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	d := &Directory{
		byID:       make(map[int64]*Account, len(seeds)),
		byUsername: make(map[string]*Account, len(seeds)),
	}

	for _, seed := range seeds {
		if seed.Username == "" {
			return nil, fmt.Errorf("account %d has empty username", seed.ID)
		}
		if _, exists := d.byID[seed.ID]; exists {
			return nil, fmt.Errorf("duplicate account id: %d", seed.ID)
		}
		if _, exists := d.byUsername[seed.Username]; exists {
			return nil, fmt.Errorf("duplicate username: %s", seed.Username)
		}
		if len(seed.Password) > MaxCredentialBytes {
			return nil, fmt.Errorf("account %s: credential longer than %d bytes", seed.Username, MaxCredentialBytes)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash credential for %s: %w", seed.Username, err)
		}

		acc := newAccount(seed.ID, seed.Username, hash, opts.StrictMergeStock)
		d.byID[acc.ID] = acc
		d.byUsername[acc.Username] = acc
	}

	return d, nil
}

// ByUsername looks up an account by exact, case-sensitive username
func (d *Directory) ByUsername(username string) (*Account, error) {
	acc, ok := d.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, username)
	}
	return acc, nil
}

// Authenticate returns the account matching username and credential.
// Unknown usernames and wrong credentials fail the same way.
func (d *Directory) Authenticate(username, credential string) (*Account, error) {
	acc, err := d.ByUsername(username)
	if err != nil {
		return nil, models.ErrAuthenticationFailed
	}
	if !acc.CheckPassword(credential) {
		return nil, models.ErrAuthenticationFailed
	}
	return acc, nil
}
