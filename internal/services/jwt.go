package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"solana-casino-backend/internal/errs"
)

// JWTService issues and validates the bearer tokens that bind a request
// to a wallet address. The wallet is the only identity the settlement
// layer knows.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

type WalletClaims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

func NewJWTService(secret string, expiryMinutes int) *JWTService {
	if expiryMinutes <= 0 {
		expiryMinutes = 60 * 24
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (s *JWTService) GenerateToken(wallet string) (string, error) {
	now := time.Now()
	claims := WalletClaims{
		Wallet: wallet,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wallet,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(errs.KindInternal, "sign token", err)
	}
	return signed, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*WalletClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WalletClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.Newf(errs.KindAuthenticationFailed, "unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindAuthenticationFailed, "invalid or expired token", err)
	}
	claims, ok := token.Claims.(*WalletClaims)
	if !ok || !token.Valid || claims.Wallet == "" {
		return nil, errs.New(errs.KindAuthenticationFailed, "invalid token claims")
	}
	return claims, nil
}
