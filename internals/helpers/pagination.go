package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= & ?per_page= (alias ?limit=) and normalizes them.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	page := atoiDefault(strings.TrimSpace(c.Query("page", "1")), 1)
	if page < 1 {
		page = 1
	}

	perRaw := strings.TrimSpace(c.Query("per_page", c.Query("limit", "")))
	per := atoiDefault(perRaw, defaultPerPage)
	if per < 1 {
		per = defaultPerPage
	}
	if maxPerPage > 0 && per > maxPerPage {
		per = maxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: per,
		Offset:  (page - 1) * per,
		Limit:   per,
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
