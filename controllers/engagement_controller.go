package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
)

type engagementInput struct {
	EventID string `json:"eventId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

func (in engagementInput) objectIDs() (primitive.ObjectID, primitive.ObjectID, error) {
	eventID, err := primitive.ObjectIDFromHex(in.EventID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid event id")
	}
	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid user id")
	}
	return eventID, userID, nil
}

// ---------------- LIKE / UNLIKE ----------------

// LikeEvent adds the user to likedBy and bumps the counter in one guarded
// update, so two racing likes cannot double-count.
func LikeEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engagementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		eventID, userID, err := input.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": eventID, "likedBy": bson.M{"$ne": userID}},
			bson.M{
				"$addToSet": bson.M{"likedBy": userID},
				"$inc":      bson.M{"likes": 1},
				"$set":      bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if res.MatchedCount == 0 {
			var event models.Event
			if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
				return
			}
			if event.HasLiked(userID) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "You have already liked this event"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Liked successfully!", "event": updated})
	}
}

func UnlikeEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engagementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		eventID, userID, err := input.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": eventID, "likedBy": userID},
			bson.M{
				"$pull": bson.M{"likedBy": userID},
				"$inc":  bson.M{"likes": -1},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if res.MatchedCount == 0 {
			var event models.Event
			if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have not liked this event"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Unliked successfully!", "event": updated})
	}
}

// ---------------- COMMENT / REPLY ----------------

func CommentEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EventID string `json:"eventId" binding:"required"`
			UserID  string `json:"userId" binding:"required"`
			Text    string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		eventID, userID, err := engagementInput{EventID: input.EventID, UserID: input.UserID}.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		comment := models.Comment{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Text:      input.Text,
			Replies:   []models.Reply{},
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": eventID},
			bson.M{
				"$push": bson.M{"comments": comment},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully!", "comment": comment})
	}
}

// ReplyToComment appends an NGO reply to one comment of an event.
func ReplyToComment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ngo, ok := c.MustGet("ngo").(models.NGO)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
			return
		}
		commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid comment id"})
			return
		}

		var input struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		reply := models.Reply{
			ID:        primitive.NewObjectID(),
			UserID:    ngo.ID,
			Text:      input.Text,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": eventID, "comments._id": commentID},
			bson.M{
				"$push": bson.M{"comments.$.replies": reply},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if res.MatchedCount == 0 {
			// tell a missing event apart from a missing comment
			var event models.Event
			if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
				return
			}
			if event.FindComment(commentID) == nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Reply added successfully!", "reply": reply})
	}
}

// ---------------- FOLLOW ----------------

// FollowEvent is idempotent: following twice is a no-op, never an error.
func FollowEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engagementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		eventID, userID, err := input.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": eventID},
			bson.M{
				"$addToSet": bson.M{"followers": userID},
				"$set":      bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": eventID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Following event", "followers": updated.Followers})
	}
}

// ---------------- JOIN / UNJOIN ----------------

func JoinEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engagementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		eventID, userID, err := input.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		eventCol := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		userCol := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := eventCol.FindOne(ctx, bson.M{"_id": eventID}).Decode(&event); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		// membership guard in the filter keeps the duplicate-join race out
		res, err := userCol.UpdateOne(ctx,
			bson.M{"_id": userID, "joinedEvents": bson.M{"$ne": eventID}},
			bson.M{"$addToSet": bson.M{"joinedEvents": eventID}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			if err := userCol.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already joined this event"})
			return
		}

		_, _ = eventCol.UpdateOne(ctx,
			bson.M{"_id": eventID},
			bson.M{"$addToSet": bson.M{"participants": userID}},
		)

		recordNotification(cfg, userID, eventID, fmt.Sprintf("You have joined %s", event.Name))

		c.JSON(http.StatusOK, gin.H{"message": "Joined successfully!", "eventId": eventID.Hex()})
	}
}

func UnjoinEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input engagementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		eventID, userID, err := input.objectIDs()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		eventCol := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		userCol := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := userCol.UpdateOne(ctx,
			bson.M{"_id": userID, "joinedEvents": eventID},
			bson.M{"$pull": bson.M{"joinedEvents": eventID}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if res.MatchedCount == 0 {
			if err := userCol.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have not joined this event"})
			return
		}

		_, _ = eventCol.UpdateOne(ctx,
			bson.M{"_id": eventID},
			bson.M{"$pull": bson.M{"participants": userID}},
		)

		c.JSON(http.StatusOK, gin.H{"message": "Unjoined successfully!", "eventId": eventID.Hex()})
	}
}

// ---------------- JOINED / FOLLOWED LISTINGS ----------------

func ListJoinedEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Query("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		userCol := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		eventCol := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := userCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if len(user.JoinedEvents) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		cursor, err := eventCol.Find(ctx, bson.M{"_id": bson.M{"$in": user.JoinedEvents}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode events"})
			return
		}

		c.JSON(http.StatusOK, withImageURLs(cfg, events))
	}
}

func ListFollowedEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Query("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"followers": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode events"})
			return
		}
		if events == nil {
			events = []models.Event{}
		}

		c.JSON(http.StatusOK, withImageURLs(cfg, events))
	}
}
