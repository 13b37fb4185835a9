package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/ukane-philemon/students/internal/db"
	customerror "github.com/ukane-philemon/students/internal/errors"
)

// maxBodyBytes caps the size of request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// handleError writes the response for err. Errors that are not user facing
// are logged and replaced with a generic error.
func handleError(res http.ResponseWriter, err error) {
	var notFound *customerror.ErrorNotFound
	var unauthorized *customerror.ErrorUnauthorized
	switch {
	case errors.As(err, &notFound):
		writeError(res, http.StatusNotFound, notFound.Error())
	case errors.As(err, &unauthorized):
		writeError(res, http.StatusForbidden, unauthorized.Error())
	case errors.Is(err, db.ErrorInvalidRequest):
		writeError(res, http.StatusBadRequest, err.Error())
	default:
		log.Printf("SERVER ERROR: %v", err.Error())
		writeError(res, http.StatusInternalServerError, (&customerror.ErrorUnknown{}).Error())
	}
}

func writeError(res http.ResponseWriter, status int, msg string) {
	writeJSON(res, status, &errorResponse{Error: msg})
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(v); err != nil {
		log.Printf("json.Encode error: %v", err)
	}
}

// decodeBody decodes the JSON request body into v.
func decodeBody(res http.ResponseWriter, req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(res, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", db.ErrorInvalidRequest, err)
	}
	return nil
}

// pathParam returns the unescaped value of the URL parameter key. chi routes
// on the decoded path unless the request carries a RawPath, so the value is
// only unescaped in that case.
func pathParam(req *http.Request, key string) (string, error) {
	value := chi.URLParam(req, key)
	if req.URL.RawPath != "" {
		var err error
		value, err = url.PathUnescape(value)
		if err != nil {
			return "", fmt.Errorf("%w: invalid %s", db.ErrorInvalidRequest, key)
		}
	}

	if value == "" {
		return "", fmt.Errorf("%w: invalid %s", db.ErrorInvalidRequest, key)
	}
	return value, nil
}

func intPathParam(req *http.Request, key string, bitSize int) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(req, key), 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", db.ErrorInvalidRequest, key)
	}
	return value, nil
}
