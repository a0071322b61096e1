package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	"github.com/mikiasgoitom/GlitchLab/internal/usecase"
)

const principalKey = "principal"

// AuthMiddleWare accepts session tokens only and stores the caller as an entity.Principal.
func AuthMiddleWare(jwtService usecase.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, domainerrors.ErrUnauthenticated.Error())
			return
		}

		claims, err := jwtService.ParseToken(token)
		if err != nil || claims.IsPending || claims.UserID == "" || !claims.Role.Valid() {
			abort(c, http.StatusUnauthorized, domainerrors.ErrInvalidToken.Error())
			return
		}
		SetPrincipal(c, entity.Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// BearerToken reads the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

// RequireInstructor must run after AuthMiddleWare.
func RequireInstructor() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abort(c, http.StatusUnauthorized, domainerrors.ErrUnauthenticated.Error())
			return
		}
		if !p.IsInstructor() {
			abort(c, http.StatusForbidden, domainerrors.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p entity.Principal) {
	c.Set(principalKey, p)
}

func GetPrincipal(c *gin.Context) (entity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return entity.Principal{}, false
	}
	p, ok := v.(entity.Principal)
	return p, ok
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}
