package router

import (
	"net/http"

	"collab-relay-backend/internal/api"
	"collab-relay-backend/internal/api/endpoints"
)

func RelayRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		relayEndpoints := endpoints.NewRelayEndpoints(s.Relay())
		mux.HandleFunc(prefix+"/join", s.MakeHTTPHandleFunc(relayEndpoints.Join))
		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(relayEndpoints.Rooms))
	}
}
