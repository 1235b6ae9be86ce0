package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
)

// ListNotifications returns the authenticated identity's notifications,
// newest first.
func ListNotifications(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("notifications")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.M{"createdAt": -1})
		cursor, err := col.Find(ctx, bson.M{"userId": uid}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch notifications"})
			return
		}

		var notifications []models.Notification
		if err := cursor.All(ctx, &notifications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode notifications"})
			return
		}
		if notifications == nil {
			notifications = []models.Notification{}
		}

		c.JSON(http.StatusOK, notifications)
	}
}

func MarkNotificationRead(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid notification id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("notifications")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": oid, "userId": uid},
			bson.M{"$set": bson.M{"read": true}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}
