package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/justask/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/justask/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/justask/internal/config"
)

// Applies every pending postgres migration, or a single one when its name is
// given. With the mongo driver it creates the collection indexes.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var driver, dsn, mongoURI, mongoDB string
	var list bool

	flag.StringVar(&driver, "driver", envOr("STORE_DRIVER", config.DriverMongo), "Store driver (mongo or postgres)")
	flag.StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	flag.StringVar(&mongoURI, "mongodb-uri", os.Getenv("MONGODB_URI"), "MongoDB connection string")
	flag.StringVar(&mongoDB, "mongodb-database", envOr("MONGODB_DATABASE", "just_ask_v1"), "MongoDB database name")
	flag.BoolVar(&list, "list", false, "List embedded migrations and exit")
	flag.Parse()

	if list {
		names, err := postgres.Migrations()
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch driver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongoURI, mongoDB)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Disconnect(context.Background())

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Indexes created successfully.")

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if name := flag.Arg(0); name != "" {
			applied, err := postgres.MigrateOne(ctx, db, name)
			if err != nil {
				log.Fatalf("Failed to execute migration: %v", err)
			}
			fmt.Printf("Migration %s executed successfully.\n", applied)
			return
		}

		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			log.Fatalf("Failed to execute migrations: %v", err)
		}
		for _, name := range applied {
			fmt.Printf("Applied %s\n", name)
		}
		fmt.Println("Migrations executed successfully.")

	default:
		log.Fatalf("unknown driver %q", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
