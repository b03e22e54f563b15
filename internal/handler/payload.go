package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"ridehail/internal/middleware"
	"ridehail/internal/service"
)

var errInvalidBody = errors.New("invalid request body")

// bindChecked decodes the request body into dst after rejecting any field
// from the read-only list. Unknown keys that are merely not writable (such
// as an owner id) are ignored rather than rejected, so they can never leak
// into the stored record.
func bindChecked(c *gin.Context, dst any, readOnly ...string) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		return errInvalidBody
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return errInvalidBody
	}
	for _, field := range readOnly {
		if _, ok := keys[field]; ok {
			return fmt.Errorf("field %q is read-only", field)
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// requesterFrom extracts the authenticated requester placed by the auth
// middleware. Routes behind RequireAuth always have one.
func requesterFrom(c *gin.Context) service.Requester {
	req, _ := middleware.RequesterFrom(c)
	return req
}
