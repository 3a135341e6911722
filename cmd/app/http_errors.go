package main

import (
	"errors"
	"net/http"

	"CartStoreAPI/internal/model"
)

// httpStatusFromErr maps the domain error taxonomy onto HTTP.
// ValidationError -> 422 with the field message list, NotFoundError -> 404,
// anything else -> 500.
func httpStatusFromErr(err error) (int, interface{}) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, map[string]interface{}{"errors": ve.Errors}
	}
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, map[string]string{"error": nf.Error()}
	}
	return http.StatusInternalServerError, map[string]string{"error": "internal error"}
}
