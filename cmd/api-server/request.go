package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/cadscreen/internal/model"
)

const _dateLayout = "2006-01-02"

func patientIDFromRequest(r *http.Request) (model.ID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "patientId"), 10, 64)
	return id, err
}

// defaultIntQueryParams falls back to the default on a missing or
// non-numeric value rather than failing the request.
func defaultIntQueryParams(r *http.Request, key string, def int) int {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}

func optionalStringQueryParams(r *http.Request, key string) *string {
	ref := new(string)
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok || val == "" {
		return nil
	}
	*ref = val
	return ref
}

func optionalDateQueryParams(r *http.Request, key string) (*time.Time, bool, error) {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok || val == "" {
		return nil, false, nil
	}
	t, err := time.Parse(_dateLayout, val)
	if err != nil {
		return nil, true, err
	}
	return &t, true, nil
}
