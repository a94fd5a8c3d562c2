package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return common.WithMessage(common.ErrorUnauthorized, "missing token")
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			return err
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func currentUser(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
