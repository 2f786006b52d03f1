package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/model"
)

// DefaultPath is the catalog location relative to a project root.
const DefaultPath = "accounts/chart-of-accounts.csv"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. When a code occurs
// more than once the first account wins lookups; All still returns every
// input account.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, ok := byCode[a.Code]; !ok {
			byCode[a.Code] = a
		}
	}
	return &Service{accounts: accounts, byCode: byCode}
}

// Load reads accounts/chart-of-accounts.csv from a project root.
func Load(repoRoot string) (*Service, error) {
	return LoadFile(filepath.Join(repoRoot, DefaultPath))
}

// LoadFile reads a catalog CSV at an explicit path.
func LoadFile(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByIdentifier returns the accounts carrying a secondary identifier, in
// code order. The first is the one a flip into that identifier lands on.
func (s *Service) ByIdentifier(rgs string) []model.Account {
	var result []model.Account
	for _, a := range s.byCode {
		if rgs != "" && a.Identifiers.RGS == rgs {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// ByClass returns all accounts the classifier assigns to class.
func (s *Service) ByClass(classifier *classify.Classifier, class model.AccountClass) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if classifier.Classify(a) == class {
			result = append(result, a)
		}
	}
	return result
}

// ApplicableTo returns the accounts used by an entity type.
func (s *Service) ApplicableTo(entity model.EntityType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Applicability.AppliesTo(entity) {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	return s.SaveFile(filepath.Join(repoRoot, DefaultPath))
}

// SaveFile writes the chart of accounts to path, creating its directory.
func (s *Service) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
