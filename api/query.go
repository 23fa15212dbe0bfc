package api

import (
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, invalidID()
	}
	return id, nil
}

// lookupID reports whether the list route was asked for a single entity
// through ?id=.
func lookupID(c *gin.Context) (int64, bool, error) {
	raw, ok := c.GetQuery("id")
	if !ok || raw == "" {
		return 0, false, nil
	}
	id, err := parseID(raw)
	return id, true, err
}

// pagination reads limit and offset. Absent values are left at zero for
// the service to default; negative or non-numeric values are rejected.
func pagination(c *gin.Context) (limit, offset int, err error) {
	limit, err = queryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err = queryInt(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("INVALID_PAGINATION", "Limit and offset must be non-negative integers")
	}
	return n, nil
}

// optionalID parses a numeric filter; anything non-numeric is ignored.
func optionalID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
