package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "admin" {
			return true
		}
	}
	return false
}

// GetActor builds the service actor for the authenticated user. It writes a
// 401 and returns false when the request carries no user.
func GetActor(c *gin.Context) (service.Actor, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return service.Actor{}, false
	}
	return service.Actor{UserID: *userID, Admin: IsAdmin(c)}, true
}

// parseID reads a UUID path parameter, writing a 400 when malformed
func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}
