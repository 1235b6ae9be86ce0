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
	utils "github.com/ethvolunteer/volunteer-backend-go/utils"
)

// setStatus performs a guarded moderation transition. The filter only
// matches statuses from which the target is reachable, so an illegal
// transition never touches the document; the existence check afterwards
// tells 404 apart from 400.
func setStatus(cfg *config.Config, c *gin.Context, to string) (*models.Event, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
		return nil, false
	}

	var from []string
	for _, s := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		if models.CanTransition(s, to) {
			from = append(from, s)
		}
	}

	col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$in": from}},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return nil, false
	}

	if res.MatchedCount == 0 {
		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("event is %s and cannot become %s", existing.Status, to),
		})
		return nil, false
	}

	var updated models.Event
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve updated event"})
		return nil, false
	}
	return &updated, true
}

// ---------------- APPROVE ----------------
func ApproveEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := setStatus(cfg, c, models.StatusApproved)
		if !ok {
			return
		}

		// Notify the creator in the background; approval never fails on mail.
		subject := fmt.Sprintf("Your event %q was approved", event.Name)
		body := fmt.Sprintf(
			"<p>Hello %s,</p><p>Your event <b>%s</b> on %s in %s has been approved and is now publicly visible.</p>",
			event.CreatorName, event.Name, event.Date.Format("2006-01-02"), event.Location,
		)
		utils.NotifyAsync(cfg.Mail, event.CreatorEmail, event.CreatorName, subject, body)

		recordNotification(cfg, event.CreatedBy, event.ID, fmt.Sprintf("Your event %s was approved", event.Name))

		c.JSON(http.StatusOK, gin.H{"message": "Event approved successfully!", "event": event})
	}
}

// ---------------- REJECT ----------------
func RejectEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := setStatus(cfg, c, models.StatusRejected)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event rejected successfully!", "event": event})
	}
}

// ---------------- DISAPPROVE / UNREJECT ----------------

// DisapproveEvent reverts an event to pending.
func DisapproveEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := setStatus(cfg, c, models.StatusPending)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// UnrejectEvent reverts a rejected event to pending.
func UnrejectEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := setStatus(cfg, c, models.StatusPending)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// recordNotification writes an in-app notification. Failures only get logged
// by the driver; the triggering request does not care.
func recordNotification(cfg *config.Config, userID, eventID primitive.ObjectID, message string) {
	col := cfg.MongoClient.Database(cfg.DBName).Collection("notifications")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _ = col.InsertOne(ctx, models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		EventID:   eventID,
		Message:   message,
		CreatedAt: time.Now(),
	})
}
