package api

import (
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/service"
)

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getQueryInt parses the query parameter name as an integer. A missing or
// malformed value yields 0 so the service default applies.
func getQueryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// visitorFromRequest identifies the caller of r. The address is the one
// chi's RealIP middleware settled on.
func visitorFromRequest(r *http.Request, userAgent string) service.Visitor {
	if userAgent == "" {
		userAgent = r.UserAgent()
	}
	return service.Visitor{
		UserAgent: userAgent,
		IPAddress: clientIP(r.RemoteAddr),
	}
}

// clientIP strips the port from addr when it has one.
func clientIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
