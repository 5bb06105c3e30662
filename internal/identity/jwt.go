package identity

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/models"
)

// UserSource loads the live account record for a token's subject. The
// role always comes from here, never from token claims.
type UserSource interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// JWTResolver verifies HMAC-signed bearer tokens and loads the
// account they reference.
type JWTResolver struct {
	secret string
	users  UserSource
}

func NewJWTResolver(secret string, users UserSource) *JWTResolver {
	return &JWTResolver{secret: secret, users: users}
}

func (r *JWTResolver) Resolve(ctx context.Context, authHeader string) (*Identity, error) {
	userID, ok := parseBearer(authHeader, r.secret)
	if !ok {
		return nil, nil
	}

	user, err := r.users.UserByID(ctx, userID)
	if err != nil {
		// A valid token for a deleted account is anonymous, the same
		// as no token at all.
		if apperr.KindOf(err) == apperr.NotFound {
			log.Println("[AUTH] [INFO] token references missing user:", userID.Hex())
			return nil, nil
		}
		return nil, err
	}

	return &Identity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    user.Role,
	}, nil
}

// parseBearer extracts and verifies the token, returning the subject
// account id. Malformed, unsigned or expired tokens all report !ok.
func parseBearer(header, secret string) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return primitive.NilObjectID, false
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return primitive.NilObjectID, false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, false
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return userID, true
}

// IssueToken mints the access token handed out by the auth endpoints.
func IssueToken(secret string, userID primitive.ObjectID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
