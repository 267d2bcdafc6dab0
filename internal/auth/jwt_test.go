package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func initTestAuth(t *testing.T) {
	t.Helper()
	Init("test-secret")
}

func TestGenerateValidate_RoundTrip(t *testing.T) {
	initTestAuth(t)

	token, err := GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %q", claims.Username)
	}

	// Expiry sits 12 hours out.
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining > TokenTTL || remaining < TokenTTL-time.Minute {
		t.Errorf("expected expiry ~12h from now, got %v", remaining)
	}
}

// signWithExpiry builds a token with an arbitrary expiry using the same key.
func signWithExpiry(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestValidateJWT_ExpiryBoundary(t *testing.T) {
	initTestAuth(t)

	almostExpired := signWithExpiry(t, "alice", time.Now().Add(2*time.Second))
	if _, err := ValidateJWT(almostExpired); err != nil {
		t.Errorf("token just inside its lifetime rejected: %v", err)
	}

	expired := signWithExpiry(t, "alice", time.Now().Add(-2*time.Second))
	if _, err := ValidateJWT(expired); err == nil {
		t.Error("expired token accepted")
	}
}

func TestValidateJWT_WrongKey(t *testing.T) {
	initTestAuth(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("token signed with a different key accepted")
	}
}

func TestMiddleware(t *testing.T) {
	initTestAuth(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := UserFromContext(r.Context())
		if !ok {
			t.Error("username missing from context")
		}
		w.Write([]byte(username))
	})
	handler := Middleware()(next)

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "Token is missing!"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "Token is missing!"},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, "Token is invalid!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/presentations", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body not JSON: %v", err)
			}
			if body["message"] != tc.wantMsg {
				t.Errorf("message = %q, want %q", body["message"], tc.wantMsg)
			}
		})
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateJWT("alice")
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/presentations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "alice" {
			t.Errorf("expected username alice passed through, got %q", rec.Body.String())
		}
	})
}
