package database

import (
	"context"
	"log"
	"time"

	"oneq/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the shared MongoDB client backing the vendor catalog.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection. The catalog
// repositories expect MongoClient to be set before they are constructed.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo ping failed: %v", err)
	}
	MongoClient = client
	log.Println("connected to MongoDB")
}
