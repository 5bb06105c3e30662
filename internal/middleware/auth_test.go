package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/identity"
	"pharmacy-backend/internal/models"
)

type stubResolver struct {
	id  *identity.Identity
	err error
}

func (s stubResolver) Resolve(_ context.Context, _ string) (*identity.Identity, error) {
	return s.id, s.err
}

func performRequest(handler gin.HandlerFunc, mw gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", mw, handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	return w
}

func echoIdentity(c *gin.Context) {
	id := IdentityFrom(c)
	if id == nil {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": id.Role})
}

func customerIdentity() *identity.Identity {
	return &identity.Identity{ID: primitive.NewObjectID(), Role: models.RoleCustomer}
}

func adminIdentity() *identity.Identity {
	return &identity.Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
}

func TestOptionalIdentityPassesAnonymous(t *testing.T) {
	w := performRequest(echoIdentity, OptionalIdentity(stubResolver{}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalIdentityToleratesResolverFailure(t *testing.T) {
	w := performRequest(echoIdentity, OptionalIdentity(stubResolver{err: errors.New("db down")}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalIdentitySetsIdentity(t *testing.T) {
	w := performRequest(echoIdentity, OptionalIdentity(stubResolver{id: customerIdentity()}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"role":"customer"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequireIdentityRejectsAnonymous(t *testing.T) {
	w := performRequest(echoIdentity, RequireIdentity(stubResolver{}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireIdentityAcceptsCustomer(t *testing.T) {
	w := performRequest(echoIdentity, RequireIdentity(stubResolver{id: customerIdentity()}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		resolver stubResolver
		want     int
	}{
		{"anonymous", stubResolver{}, http.StatusUnauthorized},
		{"customer", stubResolver{id: customerIdentity()}, http.StatusForbidden},
		{"admin", stubResolver{id: adminIdentity()}, http.StatusOK},
		{"resolver failure", stubResolver{err: errors.New("db down")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(echoIdentity, RequireAdmin(tt.resolver))
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
