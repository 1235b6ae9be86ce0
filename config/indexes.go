package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique email indexes the registration handlers
// rely on. Safe to call on every startup.
func (c *Config) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}

	db := c.MongoClient.Database(c.DBName)
	for _, name := range []string{"users", "ngos", "admins"} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, emailIndex); err != nil {
			return err
		}
	}
	return nil
}
