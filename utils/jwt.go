package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

const issuer = "QRMenuApp"

// SessionTokenLifetime -> token sesi meja sengaja pendek (QR scan ulang
// saja kalau kadaluarsa)
const SessionTokenLifetime = 30 * time.Minute

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default secret untuk development saja
		secret = "TestSecretKeyAUTH1945"
	}
	JWTSecret = []byte(secret)
}

// StaffClaims -> token panjang untuk staff (login email+password)
type StaffClaims struct {
	UserID   uint   `json:"user_id"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionClaims -> token pendek hasil scan QR, terikat ke satu sesi meja
type SessionClaims struct {
	TenantID     uint   `json:"tenant_id"`
	RestaurantID uint   `json:"restaurant_id"`
	TableID      uint   `json:"table_id"`
	SessionToken string `json:"jti_session"`
	jwt.RegisteredClaims
}

// StaffTokenLifetime -> default 7 hari, bisa dioverride lewat env
// TOKEN_LIFETIME_HOURS
func StaffTokenLifetime() time.Duration {
	if v := os.Getenv("TOKEN_LIFETIME_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 7 * 24 * time.Hour
}

func GenerateStaffToken(userID, tenantID uint, role string) (string, error) {
	claims := &StaffClaims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(StaffTokenLifetime())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseStaffToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || claims.UserID == 0 {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func GenerateSessionToken(tenantID, restaurantID, tableID uint, sessionToken string) (string, error) {
	claims := &SessionClaims{
		TenantID:     tenantID,
		RestaurantID: restaurantID,
		TableID:      tableID,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionToken == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
