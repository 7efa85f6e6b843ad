package bi

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCategoriesSortedAndDeduplicated(t *testing.T) {
	cats := Categories(Reports())

	if !sort.StringsAreSorted(cats) {
		t.Errorf("categories are not sorted: %v", cats)
	}

	seen := make(map[string]bool)
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category: %s", c)
		}
		seen[c] = true
	}

	// Executive and Operations both appear twice in the registry.
	if !seen["Executive"] || !seen["Operations"] {
		t.Errorf("expected Executive and Operations categories, got %v", cats)
	}
}

func TestCategoriesEmptyFallsBackToOther(t *testing.T) {
	cats := Categories([]Report{{Title: "Untitled"}})
	if len(cats) != 1 || cats[0] != "Other" {
		t.Errorf("expected [Other], got %v", cats)
	}
}

func TestPortfolioHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler().RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/tools/bi", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Business 360") {
		t.Error("expected registry entries in response")
	}
	if !strings.Contains(body, `"categories"`) {
		t.Error("expected categories in response")
	}
}
