package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const shareIssuer = "league-skinset-finder"

type shareClaims struct {
	jwt.RegisteredClaims
	Roster      RosterSpec `json:"roster"`
	Fingerprint string     `json:"fp"`
}

type ShareLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// ShareService signs rosters into self-contained links. Nothing is stored:
// the token carries the roster and the fingerprint of the catalog it was made
// against.
type ShareService struct {
	catalog    *catalog.Catalog
	resolve    *ResolveService
	secret     []byte
	expiration time.Duration
	baseURL    string
}

func NewShareService(cat *catalog.Catalog, resolve *ResolveService, secret string, expiration time.Duration, baseURL string) *ShareService {
	return &ShareService{
		catalog:    cat,
		resolve:    resolve,
		secret:     []byte(secret),
		expiration: expiration,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Create validates spec and signs its canonical form.
func (s *ShareService) Create(spec RosterSpec) (*ShareLink, error) {
	r, err := s.resolve.BuildRoster(spec)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := shareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Issuer:   shareIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Roster:      SpecFromRoster(r),
		Fingerprint: s.catalog.Fingerprint(),
	}
	if s.expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign share token: %w", err)
	}
	return &ShareLink{Token: token, URL: s.URL(token)}, nil
}

// Parse verifies a token and returns the roster it carries.
func (s *ShareService) Parse(token string) (RosterSpec, error) {
	var claims shareClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(shareIssuer))
	if err != nil {
		return RosterSpec{}, fmt.Errorf("%w: %v", domain.ErrInvalidShareToken, err)
	}
	if claims.Fingerprint != s.catalog.Fingerprint() {
		return RosterSpec{}, domain.ErrStaleShareToken
	}
	return claims.Roster, nil
}

func (s *ShareService) URL(token string) string {
	return fmt.Sprintf("%s/share/%s", s.baseURL, token)
}

// QRCode renders the share URL of a valid token as a PNG.
func (s *ShareService) QRCode(token string, size int) ([]byte, error) {
	if _, err := s.Parse(token); err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.URL(token), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
