package middleware

import (
  "fmt"
  "net/http"
  "os"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/requestdata"
)

type AuthMiddleware struct {
  log    *logger.Logger
  secret []byte
}

func NewAuthMiddleware(log *logger.Logger) *AuthMiddleware {
  return &AuthMiddleware{
    log:    log.With("Middleware", "AuthMiddleware"),
    secret: []byte(os.Getenv("JWT_SECRET")),
  }
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }

    userID, err := am.parseSubject(tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
      return
    }

    ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
      TokenString: tokenString,
      UserID:      userID,
    })
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func (am *AuthMiddleware) parseSubject(tokenString string) (string, error) {
  parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
    }
    return am.secret, nil
  })
  if err != nil {
    return "", fmt.Errorf("failed to parse token: %w", err)
  }
  claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
  if !ok || !parsed.Valid {
    return "", fmt.Errorf("invalid or expired token")
  }
  if claims.Subject == "" {
    return "", fmt.Errorf("missing subject in token")
  }
  return claims.Subject, nil
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}
