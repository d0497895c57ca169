package main

import (
	"log"

	"collab-relay-backend/internal/api"
	"collab-relay-backend/internal/api/router"
	"collab-relay-backend/internal/database"
	"collab-relay-backend/internal/env"
	"collab-relay-backend/internal/queue"
)

func main() {
	env.MustValidate(env.AWSRegion, env.AWSID, env.AWSSecret, env.CollabSecretKey)

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/snapshot/v1"),
		router.DocumentRoutes("/api/snapshot/v1"),
	)

	server.Run()
}
