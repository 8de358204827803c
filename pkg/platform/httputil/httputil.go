package httputil

import (
	"encoding/json"
	"net/http"

	graphqlErrors "secureid/pkg/graphql-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	// The response body may be incomplete, but headers are already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// GraphQLResponse is the response envelope of a GraphQL endpoint.
type GraphQLResponse struct {
	Data   any                          `json:"data"`
	Errors []graphqlErrors.AppSyncError `json:"errors,omitempty"`
}

// WriteGraphQLError writes a response carrying a single AppSync error and null data.
func WriteGraphQLError(w http.ResponseWriter, status int, errorType, message string) {
	WriteJSON(w, status, GraphQLResponse{
		Errors: []graphqlErrors.AppSyncError{{ErrorType: errorType, Message: message}},
	})
}
