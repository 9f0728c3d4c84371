// Package httpsift adapts the engine to net/http: it feeds request query
// parameters into a compiler, renders input errors as structured JSON, and
// plays the external-execution role for the compiled query.
package httpsift

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/theplant/sift"
	"github.com/theplant/sift/gormsift"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body rendered for rejected request input: one entry
// per parser failure or per batched coercion failure.
type ErrorResponse struct {
	Errors sift.InputErrors `json:"errors"`
}

// WriteError renders request-input failures as 422 with the structured error
// list. Anything else is a defect or a store failure: logged, not leaked.
func WriteError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if inputErrs, ok := sift.AsInputErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Errors: inputErrs})
		return
	}
	logger.Error().Err(err).Msg("list query failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// WritePage renders a response envelope as 200 JSON.
func WritePage(w http.ResponseWriter, page any) {
	writeJSON(w, http.StatusOK, page)
}

// ListHandler compiles the request's query parameters against schema, runs
// the full pipeline, executes the query, and writes the response envelope.
func ListHandler[T any](db *gorm.DB, schema *sift.Schema, logger zerolog.Logger, opts ...gormsift.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		compiler, err := gormsift.New[T](db.WithContext(r.Context()), schema, r.URL.Query(), opts...)
		if err != nil {
			WriteError(w, logger, err)
			return
		}

		query, err := compiler.Full().Query()
		if err != nil {
			WriteError(w, logger, err)
			return
		}

		var results []T
		if err := query.Find(&results).Error; err != nil {
			logger.Error().Err(err).Msg("list query failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		WritePage(w, compiler.Response(results))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here is unrecoverable.
	_ = json.NewEncoder(w).Encode(body)
}
