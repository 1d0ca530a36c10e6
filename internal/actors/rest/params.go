package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/query"
)

// managedKeys are the body keys a client may never send.
var managedKeys = []string{"id", "_id", "entityStatus", "deletedAt", "deletedBy", "createdAt", "updatedAt"}

// bindBody decodes the JSON body into dst. Bodies naming server-managed keys or unknown keys are rejected.
func bindBody(c *gin.Context, dst any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return model.Invalid("", "could not read request body")
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return model.Invalid("", "body must be a JSON object")
	}
	for _, k := range managedKeys {
		if _, ok := keys[k]; ok {
			return model.Invalid(k, "is managed by the server")
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return model.Invalid("", "malformed body: "+err.Error())
	}
	return nil
}

// filterRequest reads the listing parameters common to every resource.
func filterRequest(c *gin.Context) (model.FilterRequest, error) {
	req := model.FilterRequest{
		Sort:         c.Query("sort"),
		Order:        c.Query("order"),
		Search:       c.Query("search"),
		EntityStatus: c.Query("entityStatus"),
	}
	var err error
	if req.Page, err = intQuery(c, "page"); err != nil {
		return req, err
	}
	if req.Limit, err = intQuery(c, "limit"); err != nil {
		return req, err
	}
	if req.CreatedFrom, err = query.ParseDateBound("createdFrom", c.Query("createdFrom"), false); err != nil {
		return req, err
	}
	if req.CreatedTo, err = query.ParseDateBound("createdTo", c.Query("createdTo"), true); err != nil {
		return req, err
	}
	return req, nil
}

// intQuery returns the integer query parameter, 0 when absent.
func intQuery(c *gin.Context, name string) (int, error) {
	v, err := optionalInt(c, name)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, model.Invalid(name, "must be an integer")
	}
	return &v, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, model.Invalid(name, "must be a number")
	}
	return &v, nil
}

// includeDeleted honors ?includeDeleted=true for platform admins only.
func includeDeleted(c *gin.Context) bool {
	p, ok := principalOf(c)
	if !ok || !p.IsPlatformAdmin() {
		return false
	}
	v, _ := strconv.ParseBool(c.Query("includeDeleted"))
	return v
}
