package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Filter listing standar: ?search=, ?month=, ?year=.
// Batas di-validasi LOKAL sebelum ada panggilan remote — month [1,12],
// year [1970,2100]; di luar itu 422, prosedur tidak pernah dipanggil.

type ListFilters struct {
	Search string
	Month  *int
	Year   *int
}

func ResolveListFilters(c *fiber.Ctx) (ListFilters, []FieldIssue) {
	var (
		f      ListFilters
		issues []FieldIssue
	)

	f.Search = strings.TrimSpace(c.Query("search"))

	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			issues = append(issues, FieldIssue{
				Path:    []string{"month"},
				Message: "month harus angka 1-12",
			})
		} else {
			f.Month = &n
		}
	}

	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1970 || n > 2100 {
			issues = append(issues, FieldIssue{
				Path:    []string{"year"},
				Message: "year harus angka 1970-2100",
			})
		} else {
			f.Year = &n
		}
	}

	return f, issues
}
