package router

import (
	"net/http"
	"strings"

	"collab-relay-backend/internal/api"
	"collab-relay-backend/internal/api/endpoints"
	"collab-relay-backend/internal/api/middleware"
	documentservice "collab-relay-backend/internal/service/document"
)

func DocumentRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		repository := documentservice.NewRepository(s.Database())
		service := documentservice.New(repository)
		paths := endpoints.DocumentPaths{
			DocumentPrefix: strings.TrimRight(prefix, "/") + "/documents/",
		}
		docEndpoints := endpoints.NewDocumentEndpointsWithPaths(service, paths)

		mux.HandleFunc(prefix+"/documents/", s.MakeHTTPHandleFunc(docEndpoints.Documents, middleware.ValidateCollab))
	}
}
