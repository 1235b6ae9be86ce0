package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
)

// ---------------- USERS (admin) ----------------

func ListUsers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// passwords never leave the store
		opts := options.Find().SetProjection(bson.M{"password": 0})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch users"})
			return
		}

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode users"})
			return
		}
		if users == nil {
			users = []models.User{}
		}

		c.JSON(http.StatusOK, users)
	}
}

func DeleteUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

func BlockUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		var input struct {
			IsBlocked *bool `json:"isBlocked" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body. 'isBlocked' must be a boolean."})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isBlocked": *input.IsBlocked}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		action := "unblocked"
		if *input.IsBlocked {
			action = "blocked"
		}
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("User %s successfully", action),
			"user":    user,
		})
	}
}

// ---------------- PROFILE ----------------

func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email parameter is required"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Name     string `json:"name"`
			Location string `json:"location"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		update := bson.M{}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"email": input.Email}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var user models.User
		if err := col.FindOne(ctx, bson.M{"email": input.Email}, options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// ---------------- NGOS (admin) ----------------

func ListNGOs(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("ngos")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetProjection(bson.M{"password": 0})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch NGOs"})
			return
		}

		var ngos []models.NGO
		if err := cursor.All(ctx, &ngos); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode NGOs"})
			return
		}
		if ngos == nil {
			ngos = []models.NGO{}
		}

		c.JSON(http.StatusOK, ngos)
	}
}

func DeleteNGO(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid NGO id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("ngos")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "NGO not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "NGO deleted successfully"})
	}
}

func UpdateNGOStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid NGO id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if input.Status != models.NGOActive && input.Status != models.NGOBlocked {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("ngos")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": input.Status}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "NGO not found"})
			return
		}

		var ngo models.NGO
		if err := col.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&ngo); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, ngo)
	}
}
