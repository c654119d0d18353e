package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"finderid-api/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenCacheTTL = 30 * time.Second

type tokenCacheEntry struct {
	user      *domain.SupabaseUser
	expiresAt time.Time
}

type authService struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
	clock          domain.Clock
	verifier       *TokenVerifier

	tokenCacheMu sync.RWMutex
	tokenCache   map[string]tokenCacheEntry
}

func NewAuthService(
	supabaseClient domain.SupabaseClient,
	clock domain.Clock,
	logger domain.Logger,
) *authService {
	return &authService{
		supabaseClient: supabaseClient,
		logger:         logger,
		clock:          clock,
		tokenCache:     make(map[string]tokenCacheEntry),
	}
}

// WithLocalVerification makes ValidateToken check signatures in process
// instead of calling GoTrue.
func (s *authService) WithLocalVerification(verifier *TokenVerifier) *authService {
	s.verifier = verifier
	return s
}

// ValidateToken validates a token locally when a JWT secret is configured and
// with GoTrue otherwise. GoTrue lookups are cached briefly so a burst of
// requests from one client costs a single round trip.
func (s *authService) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	if s.verifier != nil {
		user, err := s.verifier.Verify(token)
		if err != nil {
			s.logger.Debug("Local token verification failed", "error", err.Error())
			return nil, fmt.Errorf("invalid token: %w", err)
		}
		return user, nil
	}

	now := s.clock.Now()
	key := tokenKey(token)

	s.tokenCacheMu.RLock()
	entry, ok := s.tokenCache[key]
	s.tokenCacheMu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.user, nil
	}

	user, err := s.supabaseClient.ValidateToken(token)
	if err != nil {
		s.logger.Error("Failed to validate token with Supabase", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	s.tokenCacheMu.Lock()
	for k, e := range s.tokenCache {
		if !now.Before(e.expiresAt) {
			delete(s.tokenCache, k)
		}
	}
	if expiresAt := cacheDeadline(token, now); now.Before(expiresAt) {
		s.tokenCache[key] = tokenCacheEntry{user: user, expiresAt: expiresAt}
	}
	s.tokenCacheMu.Unlock()

	return user, nil
}

// cacheDeadline caps a cache entry at the token's own exp claim. GoTrue has
// already checked the signature, so the claims are only read here.
func cacheDeadline(token string, now time.Time) time.Time {
	deadline := now.Add(tokenCacheTTL)
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return deadline
	}
	if exp := claims.ExpiresAt.Time; exp.Before(deadline) {
		return exp
	}
	return deadline
}

// tokenKey avoids keeping raw bearer tokens in memory.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

var _ domain.AuthService = (*authService)(nil)
