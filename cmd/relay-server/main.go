package main

import (
	"collab-relay-backend/internal/api"
	"collab-relay-backend/internal/api/router"
	"collab-relay-backend/internal/env"
	"collab-relay-backend/internal/queue"
	"collab-relay-backend/internal/relay"
)

func main() {
	env.MustValidate(env.CollabSecretKey)

	queueManager := queue.NewRequestQueueManager(64, 16)

	handler := relay.Init(relay.Config{
		RedisAddr:     env.Get(env.RelayRedisURL),
		RedisPassword: env.Get(env.RelayRedisPass),
		TokenSecret:   env.Get(env.CollabSecretKey),
	})

	server := api.NewAPIServer(
		":83",
		queueManager,
		nil,
		handler,
		router.UtilsRoutes("/api/relay/v1"),
		router.RelayRoutes("/api/relay/v1"),
	)

	server.Run()
}
