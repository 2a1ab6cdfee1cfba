package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

// pathInt reads a positive integer URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, validator.New(name, "must be a number")
	}
	if err := validator.PositiveInt(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

// queryInt reads an integer query parameter, falling back to def when absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func queryString(r *http.Request, name string) *string {
	if s := r.URL.Query().Get(name); s != "" {
		return &s
	}
	return nil
}
