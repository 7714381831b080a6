package config

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoDatabase *mongo.Database

// InitMongo connects to the optional catalog mirror used by the knowledge
// graph view. Returns (false, nil) when MONGO_URI is not set; callers fall
// back to Postgres in that case.
func InitMongo() (bool, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(15 * time.Second).
		SetMaxPoolSize(10).
		SetMinPoolSize(1)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return false, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return false, err
	}

	name := os.Getenv("MONGO_DB_NAME")
	if name == "" {
		name = "skillatlas"
	}
	MongoDatabase = client.Database(name)
	return true, nil
}
