package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"venue-backend/config"
	"venue-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// RoleCustomer tags tokens from the self-service identity domain.
// Staff roles (models.RoleAdmin, models.RoleStaff) come from the users
// table; a customer id and a user id are never comparable, the role
// tag is what keeps the two spaces apart.
const RoleCustomer = "Customer"

const principalKey = "principal"

// Principal is the authenticated actor resolved by a guard and handed
// to the handlers through the gin context.
type Principal struct {
	ID   uint
	Role string
}

func (p Principal) IsCustomer() bool { return p.Role == RoleCustomer }
func (p Principal) IsStaff() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleStaff
}

type tokenClaims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware issues and verifies the bearer tokens for both
// identity domains. The secret and TTL come in at construction time.
type AuthMiddleware struct {
	DB       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthMiddleware(db *gorm.DB, cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{DB: db, secret: cfg.JWTSecret, tokenTTL: cfg.TokenTTL}
}

// IssueToken signs a credential carrying {id, role} with the
// configured lifetime (24h by default).
func (m *AuthMiddleware) IssueToken(id uint, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// parseBearer extracts and verifies the Authorization header. A missing
// header is a 403 ("no credential"), a bad or expired one a 401.
func (m *AuthMiddleware) parseBearer(c *gin.Context) (Principal, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "No token provided! Access denied."})
		return Principal{}, false
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized! Token is invalid."})
		return Principal{}, false
	}

	return Principal{ID: claims.ID, Role: claims.Role}, true
}

// Authenticate accepts a valid credential from either identity domain
// and attaches the principal. Used where staff and the owning customer
// share a route and the handler decides.
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	p, ok := m.parseBearer(c)
	if !ok {
		return
	}
	c.Set(principalKey, p)
	c.Next()
}

// VerifyToken is the staff/admin guard. It trusts the signed role and
// does not re-check the users table; a deleted account keeps access
// until its token expires (accepted risk on the back-office surface).
func (m *AuthMiddleware) VerifyToken(c *gin.Context) {
	p, ok := m.parseBearer(c)
	if !ok {
		return
	}
	if !p.IsStaff() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Requires a staff account."})
		return
	}
	c.Set(principalKey, p)
	c.Next()
}

// RequireAdmin composes after VerifyToken.
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	p, ok := PrincipalFrom(c)
	if !ok || p.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Requires Admin Role!"})
		return
	}
	c.Next()
}

// VerifyCustomerToken guards the self-service surface. Unlike the
// staff guard it re-validates the customer row on every request, so a
// deleted customer is locked out even with a still-valid token.
func (m *AuthMiddleware) VerifyCustomerToken(c *gin.Context) {
	p, ok := m.parseBearer(c)
	if !ok {
		return
	}
	if !p.IsCustomer() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access Denied. A customer account is required."})
		return
	}

	var customer models.Customer
	if err := m.DB.First(&customer, p.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized! Customer not found."})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error during authentication."})
		return
	}

	c.Set(principalKey, p)
	c.Next()
}

// PrincipalFrom returns the principal a guard attached, if any.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
