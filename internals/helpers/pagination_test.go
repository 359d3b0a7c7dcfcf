package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// jalankan resolver di dalam handler fiber betulan supaya parsing query ikut teruji
func resolvePagingFor(t *testing.T, target string, def, max int) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, def, max)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return got
}

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"default", "/", 1, 25, 0},
		{"halaman dua", "/?page=2&per_page=10", 2, 10, 10},
		{"per_page di atas max di-clamp", "/?per_page=9999", 1, 100, 0},
		{"page nol jadi satu", "/?page=0", 1, 25, 0},
		{"page negatif jadi satu", "/?page=-3", 1, 25, 0},
		{"input bukan angka di-default", "/?page=abc&per_page=xyz", 1, 25, 0},
		{"alias limit dipakai", "/?limit=40", 1, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := resolvePagingFor(t, tt.target, 25, 100)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage || p.Offset != tt.wantOffset {
				t.Errorf("dapat page=%d per_page=%d offset=%d, mau page=%d per_page=%d offset=%d",
					p.Page, p.PerPage, p.Offset, tt.wantPage, tt.wantPerPage, tt.wantOffset)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/", 25},
		{"/?limit=50", 50},
		{"/?limit=0", 25},
		{"/?limit=-1", 25},
		{"/?limit=101", 100},
		{"/?limit=abc", 25},
	}
	for _, tt := range tests {
		var got int
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			got = ClampLimit(c, 25, 100)
			return c.SendStatus(fiber.StatusOK)
		})
		resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if got != tt.want {
			t.Errorf("%s: limit = %d, mau %d", tt.target, got, tt.want)
		}
	}
}

func TestBuildPagination(t *testing.T) {
	p := Paging{Page: 2, PerPage: 10, Offset: 10, Limit: 10}
	meta := BuildPagination(35, 10, p)
	if meta.TotalPages != 4 {
		t.Errorf("total_pages = %d, mau 4", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Errorf("has_next=%v has_prev=%v, mau keduanya true", meta.HasNext, meta.HasPrev)
	}

	empty := BuildPagination(0, 0, Paging{Page: 1, PerPage: 10})
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Errorf("listing kosong: %+v", empty)
	}
}
