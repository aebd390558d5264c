package test

import (
	"errors"

	pkgAuth "github.com/greenmandi/storefront/internal/pkg/auth"
)

// CodeGeneratorStub yields a fixed verification code.
type CodeGeneratorStub struct {
	Code string
	Err  error
}

// Generate returns the configured code.
func (s CodeGeneratorStub) Generate() (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Code != "" {
		return s.Code, nil
	}
	return "123456", nil
}

// HasherStub provides deterministic code hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied code.
func (h HasherStub) Hash(code string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(code)
	}
	return "hash:" + code, nil
}

// Compare validates code against stored hash.
func (h HasherStub) Compare(hash string, code string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, code)
	}
	if hash != "hash:"+code {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

var _ pkgAuth.CodeGenerator = CodeGeneratorStub{}
var _ pkgAuth.CodeHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
