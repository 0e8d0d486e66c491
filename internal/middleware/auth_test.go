package middleware

import (
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"
  "go.uber.org/zap"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/requestdata"
)

func init() {
  gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func testAuth() *AuthMiddleware {
  return &AuthMiddleware{
    log:    &logger.Logger{SugaredLogger: zap.NewNop().Sugar()},
    secret: []byte(testSecret),
  }
}

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
  t.Helper()
  token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
  if err != nil {
    t.Fatalf("sign token: %v", err)
  }
  return token
}

func authRouter(am *AuthMiddleware, captured **requestdata.RequestData) *gin.Engine {
  r := gin.New()
  r.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
    *captured = requestdata.GetRequestData(c.Request.Context())
    c.String(http.StatusOK, "ok")
  })
  return r
}

func TestRequireAuthBearerHeader(t *testing.T) {
  token := signToken(t, testSecret, jwt.RegisteredClaims{
    Subject:   "user-1",
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
  })

  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
  }
  if rd == nil || rd.UserID != "user-1" {
    t.Fatalf("expected request data for user-1, got %+v", rd)
  }
}

func TestRequireAuthQueryToken(t *testing.T) {
  token := signToken(t, testSecret, jwt.RegisteredClaims{
    Subject:   "user-2",
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
  })

  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d", w.Code)
  }
  if rd == nil || rd.UserID != "user-2" {
    t.Fatalf("expected request data for user-2, got %+v", rd)
  }
}

func TestRequireAuthMissingToken(t *testing.T) {
  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusUnauthorized {
    t.Fatalf("expected 401, got %d", w.Code)
  }
  if rd != nil {
    t.Error("handler should not run without a token")
  }
}

func TestRequireAuthWrongSecret(t *testing.T) {
  token := signToken(t, "other-secret", jwt.RegisteredClaims{
    Subject:   "user-1",
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
  })

  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusUnauthorized {
    t.Fatalf("expected 401, got %d", w.Code)
  }
}

func TestRequireAuthExpiredToken(t *testing.T) {
  token := signToken(t, testSecret, jwt.RegisteredClaims{
    Subject:   "user-1",
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
  })

  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusUnauthorized {
    t.Fatalf("expected 401, got %d", w.Code)
  }
}

func TestRequireAuthMissingSubject(t *testing.T) {
  token := signToken(t, testSecret, jwt.RegisteredClaims{
    ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
  })

  var rd *requestdata.RequestData
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  authRouter(testAuth(), &rd).ServeHTTP(w, req)

  if w.Code != http.StatusUnauthorized {
    t.Fatalf("expected 401, got %d", w.Code)
  }
}
