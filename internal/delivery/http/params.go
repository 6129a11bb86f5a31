package http

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
)

func invalidParam(name, value string) error {
	return shared.InvalidDataf(i18n.KeyParameterInvalid, name, value)
}

func missingParam(name string) error {
	return shared.InvalidDataf(i18n.KeyParameterMissing, name)
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name, raw)
	}
	return id, nil
}

func requiredQuery(c *gin.Context, name string) (string, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return "", missingParam(name)
	}
	return value, nil
}

func requiredBoolQuery(c *gin.Context, name string) (bool, error) {
	raw, err := requiredQuery(c, name)
	if err != nil {
		return false, err
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidParam(name, raw)
	}
	return value, nil
}

func requiredIDQuery(c *gin.Context, name string) (int64, error) {
	raw, err := requiredQuery(c, name)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name, raw)
	}
	return id, nil
}

// maxPage keeps page*size within int for any accepted size.
const maxPage = math.MaxInt / shared.MaxPageSize

// pageRequest reads page, size and sort ("property" or "property,direction").
// Only the first sort parameter is honored. Range normalization and sort
// property checks happen in the domain filter.
func pageRequest(c *gin.Context) (shared.PageRequest, error) {
	var req shared.PageRequest

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil || page > maxPage {
			return req, invalidParam("page", raw)
		}
		req.Page = page
	}

	if raw, ok := c.GetQuery("size"); ok {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return req, invalidParam("size", raw)
		}
		req.Size = size
	}

	if raw := c.Query("sort"); raw != "" {
		property, dir, _ := strings.Cut(raw, ",")
		direction, err := shared.ParseSortDirection(strings.TrimSpace(dir))
		if err != nil {
			return req, shared.InvalidData(err)
		}
		req.Sort = shared.Sort{Property: strings.TrimSpace(property), Direction: direction}
	}

	return req, nil
}
