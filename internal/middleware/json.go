package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}
