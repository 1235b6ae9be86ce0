package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
	utils "github.com/ethvolunteer/volunteer-backend-go/utils"
)

// AuthMiddleware verifies the bearer token and attaches the identity id,
// email and role to the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied: No token provided"})
			return
		}

		tokenValue := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenValue = strings.TrimPrefix(authHeader, "Bearer ")
		}

		claims, err := utils.ParseAccessToken(cfg.JWTSecret, tokenValue)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route to a single role tag.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Only " + role + "s are allowed."})
			return
		}
		c.Next()
	}
}

// VerifyNGO resolves the token id to a live NGO document. The account must
// still exist and must not be blocked.
func VerifyNGO(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var ngo models.NGO
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("ngos").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&ngo)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "NGO not found"})
			return
		}
		if ngo.Status == models.NGOBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "NGO account is blocked"})
			return
		}

		c.Set("ngo", ngo)
		c.Next()
	}
}

// VerifyAdmin resolves the token id to a live Admin document.
func VerifyAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("admins").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&admin)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
			return
		}

		c.Next()
	}
}
