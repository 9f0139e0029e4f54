package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long both the signed token and its session row stay valid.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// RejectReason says why a bearer token was refused.
type RejectReason string

const (
	RejectBadSignature RejectReason = "bad_signature"
	RejectExpired      RejectReason = "expired"
	RejectRevoked      RejectReason = "revoked"
)

// Verdict is the outcome of token verification. VerifyToken only ever
// produces the offline outcomes (accepted, bad signature, expired); the
// middleware downgrades an accepted verdict to RejectRevoked when the
// session row is gone.
type Verdict struct {
	Accepted bool
	UserID   uuid.UUID
	Reason   RejectReason
}

func Accepted(userID uuid.UUID) Verdict {
	return Verdict{Accepted: true, UserID: userID}
}

func Rejected(reason RejectReason) Verdict {
	return Verdict{Reason: reason}
}

// GenerateToken signs an HS256 bearer token carrying the user's id, email
// and name, expiring after TokenTTL.
func GenerateToken(userID uuid.UUID, email, name string, secret []byte) (string, time.Time, error) {
	expiresAt := time.Now().Add(TokenTTL)
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken runs the offline stage of verification: signature, then
// expiry. It never touches the session store, so a forged or expired token
// is rejected before any lookup happens.
func VerifyToken(tokenStr string, secret []byte) Verdict {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Rejected(RejectExpired)
		}
		return Rejected(RejectBadSignature)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Rejected(RejectBadSignature)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Rejected(RejectBadSignature)
	}
	return Accepted(userID)
}
