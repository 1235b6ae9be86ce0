package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MailConfig holds the ZeptoMail API settings used for approval notifications.
type MailConfig struct {
	APIURL   string // e.g. https://api.zeptomail.com/v1.1/email
	APIKey   string
	From     string
	FromName string
}

type Config struct {
	MongoClient *mongo.Client
	DBName      string

	JWTSecret string
	TokenTTL  time.Duration

	Port        string
	BaseURL     string
	UploadDir   string
	CORSOrigins []string

	// When set, event images go to Cloudinary instead of local disk.
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string

	Mail MailConfig
}

// Load builds the Config from the environment and connects to MongoDB.
// All configuration is read here, once; handlers only ever see the struct.
func Load() (*Config, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping error: %v", err)
	}

	cfg := &Config{
		MongoClient: client,
		DBName:      getEnv("DB_NAME", "volunteer"),
		JWTSecret:   secret,
		TokenTTL:    time.Hour,
		Port:        getEnv("PORT", "5000"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		Mail: MailConfig{
			APIURL:   os.Getenv("ZEPTO_API_URL"),
			APIKey:   os.Getenv("ZEPTO_API_KEY"),
			From:     os.Getenv("EMAIL_FROM"),
			FromName: getEnv("EMAIL_FROM_NAME", "Volunteer Connect"),
		},
	}

	cfg.BaseURL = getEnv("BACKEND_BASEURL", "http://localhost:"+cfg.Port)
	cfg.CloudinaryCloud = os.Getenv("CLOUDINARY_CLOUD_NAME")
	cfg.CloudinaryKey = os.Getenv("CLOUDINARY_API_KEY")
	cfg.CloudinarySecret = os.Getenv("CLOUDINARY_API_SECRET")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.CORSOrigins = append(cfg.CORSOrigins, strings.TrimSpace(o))
		}
	}

	return cfg, nil
}

// UseCloudinary reports whether image uploads should go to Cloudinary.
func (c *Config) UseCloudinary() bool {
	return c.CloudinaryCloud != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
