package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	models "github.com/ethvolunteer/volunteer-backend-go/models"
	utils "github.com/ethvolunteer/volunteer-backend-go/utils"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// parseEventDate accepts RFC3339 plus the date-only formats the frontends send.
func parseEventDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
		for _, layout := range layouts {
			if t, e := time.Parse(layout, value); e == nil {
				return t, nil
			}
		}
		return time.Time{}, err
	}
	return parsed, nil
}

// withImageURLs rewrites stored relative image paths into absolute URLs.
func withImageURLs(cfg *config.Config, events []models.Event) []models.Event {
	for i := range events {
		events[i].Image = utils.ImageURL(cfg, events[i].Image)
	}
	return events
}

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Authenticated NGO (resolved by middleware) ---
		ngo, ok := c.MustGet("ngo").(models.NGO)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		// --- Bind form fields ---
		var input struct {
			Name        string `form:"name" binding:"required"`
			Description string `form:"description" binding:"required"`
			Date        string `form:"date" binding:"required"`
			Location    string `form:"location" binding:"required"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		date, err := parseEventDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date format, use RFC3339 or YYYY-MM-DD"})
			return
		}

		if ngo.Name == "" || !isValidEmail(ngo.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "creator name or email is invalid"})
			return
		}

		// --- Handle optional image upload ---
		var imagePath string
		if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
			imagePath, err = utils.SaveEventImage(cfg, fileHeader)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "image upload failed"})
				return
			}
		}

		// --- Save event ---
		now := time.Now()
		event := models.Event{
			ID:           primitive.NewObjectID(),
			Name:         input.Name,
			Description:  input.Description,
			Date:         date,
			Location:     input.Location,
			Image:        imagePath,
			Status:       models.StatusPending,
			CreatedBy:    ngo.ID,
			CreatorEmail: ngo.Email,
			CreatorName:  ngo.Name,
			LikedBy:      []primitive.ObjectID{},
			Comments:     []models.Comment{},
			Followers:    []primitive.ObjectID{},
			Participants: []primitive.ObjectID{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error. Please try again later."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Event created successfully! Pending admin approval.",
			"event":   event,
		})
	}
}

// ---------------- LIST BY STATUS ----------------

func listEventsByStatus(cfg *config.Config, status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"status": status})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch events"})
			return
		}

		var events []models.Event
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		// --- Generate ETag from latest event ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, withImageURLs(cfg, events))
	}
}

// ListApprovedEvents serves both GET /events and GET /events/approved.
func ListApprovedEvents(cfg *config.Config) gin.HandlerFunc {
	return listEventsByStatus(cfg, models.StatusApproved)
}

func ListPendingEvents(cfg *config.Config) gin.HandlerFunc {
	return listEventsByStatus(cfg, models.StatusPending)
}

func ListRejectedEvents(cfg *config.Config) gin.HandlerFunc {
	return listEventsByStatus(cfg, models.StatusRejected)
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
			return
		}

		var event models.Event
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("events").
			FindOne(ctx, bson.M{"_id": eventID}).
			Decode(&event)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		event.Image = utils.ImageURL(cfg, event.Image)
		c.JSON(http.StatusOK, event)
	}
}

// ---------------- BY LOCATION ----------------
func EventsByLocation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		location := strings.TrimSpace(c.Query("location"))
		if location == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "location query parameter is required"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// case-insensitive substring match, approved events only
		filter := bson.M{
			"status":   models.StatusApproved,
			"location": bson.M{"$regex": regexp.QuoteMeta(location), "$options": "i"},
		}

		cursor, err := col.Find(ctx, filter)
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

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		requesterID := c.GetString("user_id")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		// Only the owning NGO or an admin may touch the event.
		if role != models.RoleAdmin && existing.CreatedBy.Hex() != requesterID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		var input struct {
			Name        string `form:"name"`
			Description string `form:"description"`
			Date        string `form:"date"`
			Location    string `form:"location"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.Date != "" {
			date, err := parseEventDate(input.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			update["date"] = date
		}

		// Optional replacement image.
		if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
			imagePath, err := utils.SaveEventImage(cfg, fileHeader)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "image upload failed"})
				return
			}
			if existing.Image != "" {
				// a stale file on disk is not worth failing the update
				_ = utils.RemoveEventImage(cfg, existing.Image)
			}
			update["image"] = imagePath
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update event"})
			return
		}

		var updated models.Event
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve updated event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		requesterID := c.GetString("user_id")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Event
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		if role != models.RoleAdmin && existing.CreatedBy.Hex() != requesterID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete event"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}

		if existing.Image != "" {
			utils.RemoveEventImage(cfg, existing.Image)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Event deleted successfully",
			"id":      oid.Hex(),
		})
	}
}
