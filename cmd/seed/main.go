package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kvassess/internal/model"
)

// Seeds one completed demo session so dashboards and exports have data to
// show on a fresh database.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("kvassess")
	sessionColl := db.Collection("sessions")

	started := time.Now().Add(-45 * time.Minute)
	completed := time.Now().Add(-5 * time.Minute)

	session := model.Session{
		ID: uuid.New().String(),
		User: model.UserInfo{
			Name:         "Demo Participant",
			Organization: "Example University",
			Role:         "Technology Transfer Officer",
			Email:        "demo@example.edu",
		},
		Status: model.SessionCompleted,
		Responses: map[string]model.Answer{
			"q_0": model.LikertAnswer(6),
			"q_1": model.YesNoAnswer(true),
			"q_2": model.LikertAnswer(5),
			"q_3": model.YesNoAnswer(false),
			"q_4": model.LikertAnswer(3),
			"q_5": model.YesNoAnswer(true),
		},
		Comments: map[string]string{
			"q_0": "Joint research projects with industry are well established here.",
			"q_3": "Budget constraints make staff exchanges difficult to sustain.",
		},
		StartedAt:   started,
		CompletedAt: &completed,
		LastUpdated: completed,
	}

	_, err = sessionColl.InsertOne(ctx, session)
	if err != nil {
		log.Fatalf("Failed to insert session: %v", err)
	}

	fmt.Printf("Successfully seeded completed session '%s' for '%s'\n", session.ID, session.User.Name)
}
