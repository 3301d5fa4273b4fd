package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/bloglist/internal/common"
)

const maxBodyBytes = 1 << 20

type envelope map[string]any

// writeJSON writes data as a compact JSON body. A nil data writes no body.
func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	if data == nil {
		w.WriteHeader(status)
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

// parseJSON decodes exactly one JSON object of at most maxBodyBytes into dst.
// Fields dst does not declare are rejected.
func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return describeJSONError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON value")
	}

	return nil
}

func describeJSONError(err error) error {
	var (
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		maxBytesErr   *http.MaxBytesError
		invalidDstErr *json.InvalidUnmarshalError
	)

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("request body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body contains badly-formed JSON")
	case errors.Is(err, io.EOF):
		return errors.New("request body must not be empty")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("request body contains an invalid value for the %q field", typeErr.Field)
	case errors.As(err, &typeErr):
		return fmt.Errorf("request body contains incorrect JSON type (at character %d)", typeErr.Offset)
	case errors.As(err, &maxBytesErr):
		return fmt.Errorf("request body must not be larger than %d bytes", maxBytesErr.Limit)
	case errors.As(err, &invalidDstErr):
		// a programming error, never the client's
		panic(err)
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return fmt.Errorf("request body contains unknown field %s", field)
	}

	return err
}

// readIDParam returns common.ErrMalformedID when the path id is not a UUID.
func (app *application) readIDParam(r *http.Request, key string) (uuid.UUID, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return common.ParseID(params.ByName(key))
}
