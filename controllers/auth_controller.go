package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
	utils "github.com/ethvolunteer/volunteer-backend-go/utils"
)

// ---------------- REGISTER ----------------

func RegisterVolunteer(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
			Location string `json:"location"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}

		user := models.User{
			Identity: models.Identity{
				ID:        primitive.NewObjectID(),
				Name:      input.Name,
				Email:     input.Email,
				Password:  hash,
				Role:      models.RoleVolunteer,
				CreatedAt: time.Now(),
			},
			Location:     input.Location,
			JoinedEvents: []primitive.ObjectID{},
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Volunteer registered successfully!"})
	}
}

func RegisterNGO(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name         string `json:"name" binding:"required"`
			Email        string `json:"email" binding:"required,email"`
			Password     string `json:"password" binding:"required,min=6"`
			Organization string `json:"organization" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("ngos")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// check email first so the duplicate case gets a clean message
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Err(); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "NGO with this email already exists"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}

		ngo := models.NGO{
			Identity: models.Identity{
				ID:        primitive.NewObjectID(),
				Name:      input.Name,
				Email:     input.Email,
				Password:  hash,
				Role:      models.RoleNGO,
				CreatedAt: time.Now(),
			},
			Organization: input.Organization,
			Status:       models.NGOActive,
		}

		if _, err := col.InsertOne(ctx, ngo); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "NGO with this email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error. Please try again later."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "NGO registered successfully!"})
	}
}

func RegisterAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("admins")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Err(); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Admin with this email already exists"})
			return
		}

		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}

		admin := models.Admin{
			Identity: models.Identity{
				ID:        primitive.NewObjectID(),
				Name:      input.Name,
				Email:     input.Email,
				Password:  hash,
				Role:      models.RoleAdmin,
				CreatedAt: time.Now(),
			},
		}

		if _, err := col.InsertOne(ctx, admin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error. Please try again later."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully!"})
	}
}

// ---------------- LOGIN ----------------

func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		if err := utils.CheckPassword(user.Password, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		if user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"message": "Account is blocked"})
			return
		}

		token, err := utils.NewAccessToken(cfg.JWTSecret, cfg.TokenTTL, user.ID.Hex(), user.Email, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"_id":       user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"location":  user.Location,
			"role":      user.Role,
			"isBlocked": user.IsBlocked,
			"createdAt": user.CreatedAt,
		})
	}
}

func LoginNGO(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("ngos")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var ngo models.NGO
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&ngo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		if err := utils.CheckPassword(ngo.Password, input.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		if ngo.Status == models.NGOBlocked {
			c.JSON(http.StatusForbidden, gin.H{"message": "NGO account is blocked"})
			return
		}

		token, err := utils.NewAccessToken(cfg.JWTSecret, cfg.TokenTTL, ngo.ID.Hex(), ngo.Email, ngo.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error. Please try again later."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"token":        token,
			"_id":          ngo.ID,
			"name":         ngo.Name,
			"email":        ngo.Email,
			"organization": ngo.Organization,
			"role":         ngo.Role,
			"status":       ngo.Status,
		})
	}
}

func LoginAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("admins")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		if err := col.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		if err := utils.CheckPassword(admin.Password, input.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
			return
		}

		token, err := utils.NewAccessToken(cfg.JWTSecret, cfg.TokenTTL, admin.ID.Hex(), admin.Email, admin.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error. Please try again later."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"role":    admin.Role,
		})
	}
}
