package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"faceswapadmin/internal/domain"
)

func TestCategoryMoveDownSwapsAndRefetches(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedCategories(domain.Category{ID: 1, Name: "Alpha"}, domain.Category{ID: 2, Name: "Bravo"}, domain.Category{ID: 3, Name: "Charlie"})

	resp, body := cs.get(t, "/")
	if resp.StatusCode != http.StatusOK || !inOrder(body, "Alpha", "Bravo", "Charlie") {
		t.Fatalf("initial order wrong; status=%d body=%s", resp.StatusCode, body)
	}

	cs.be.Reset()
	resp = cs.post(t, "/categories/move", url.Values{"index": {"0"}, "dir": {"down"}})
	expectRedirect(t, resp, "/")

	swaps := cs.be.CallsTo("POST", "/categories/swap")
	if len(swaps) != 1 || swaps[0].Int("id1") != 1 || swaps[0].Int("id2") != 2 {
		t.Fatalf("unexpected swap calls %+v", swaps)
	}
	if n := len(cs.be.CallsTo("GET", "/categories")); n != 1 {
		t.Fatalf("want one re-fetch after swap, got %d", n)
	}

	_, body = cs.get(t, "/")
	if !inOrder(body, "Bravo", "Alpha", "Charlie") {
		t.Fatalf("order not updated; body=%s", body)
	}
	if !strings.Contains(body, "Category order updated.") {
		t.Fatal("success flash missing")
	}
	// flash is shown once
	if _, body = cs.get(t, "/"); strings.Contains(body, "Category order updated.") {
		t.Fatal("flash shown twice")
	}
}

func TestCategoryEdgeMoveIsRejectedWithoutCall(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedCategories(domain.Category{ID: 1, Name: "Alpha"}, domain.Category{ID: 2, Name: "Bravo"})
	_, _ = cs.get(t, "/")
	cs.be.Reset()

	for _, form := range []url.Values{
		{"index": {"0"}, "dir": {"up"}},
		{"index": {"1"}, "dir": {"down"}},
		{"index": {"-3"}, "dir": {"down"}},
		{"index": {"0"}, "dir": {"sideways"}},
	} {
		expectRedirect(t, cs.post(t, "/categories/move", form), "/")
	}
	if n := len(cs.be.Calls()); n != 0 {
		t.Fatalf("rejected moves reached the backend %d times", n)
	}
	if _, body := cs.get(t, "/"); !strings.Contains(body, "that move is not available") {
		t.Fatalf("validation flash missing; body=%s", body)
	}
}

func TestCategoryCreateRenameDelete(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedCategories(domain.Category{ID: 1, Name: "Alpha"})
	_, _ = cs.get(t, "/")

	expectRedirect(t, cs.post(t, "/categories", url.Values{"category": {"  Zulu  "}}), "/")
	ids := cs.be.CategoryIDs()
	if len(ids) != 2 {
		t.Fatalf("category not created: %v", ids)
	}
	created := ids[1]
	_, body := cs.get(t, "/")
	if !inOrder(body, "Alpha", "Zulu") || !strings.Contains(body, `Category &#34;Zulu&#34; added.`) {
		t.Fatalf("created category not listed; body=%s", body)
	}

	path := "/categories/" + itoa(created)
	expectRedirect(t, cs.post(t, path+"/rename", url.Values{"category": {"Yankee"}}), "/")
	if _, body = cs.get(t, "/"); !strings.Contains(body, "Yankee") {
		t.Fatalf("rename not shown; body=%s", body)
	}

	expectRedirect(t, cs.post(t, path+"/delete", nil), "/")
	if ids := cs.be.CategoryIDs(); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("delete not applied: %v", ids)
	}
	if _, body = cs.get(t, "/"); strings.Contains(body, "Yankee") {
		t.Fatalf("deleted category still listed; body=%s", body)
	}
}

func TestDeleteVanishedCategoryReloads(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedCategories(domain.Category{ID: 1, Name: "Alpha"}, domain.Category{ID: 2, Name: "Bravo"})
	_, _ = cs.get(t, "/")
	cs.be.Respond("DELETE", "/categories/2", http.StatusNotFound, `{"error":"not found"}`)

	expectRedirect(t, cs.post(t, "/categories/2/delete", nil), "/")
	cs.be.Reset()
	_, body := cs.get(t, "/")
	if !strings.Contains(body, "That item no longer exists") {
		t.Fatalf("not-found flash missing; body=%s", body)
	}
	if n := len(cs.be.CallsTo("GET", "/categories")); n != 1 {
		t.Fatalf("stale list not re-fetched, %d list calls", n)
	}
}

func TestCategoriesPageReloadFetchesServerState(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedCategories(domain.Category{ID: 1, Name: "Alpha"}, domain.Category{ID: 2, Name: "Bravo"})
	_, _ = cs.get(t, "/")

	cs.be.SeedCategories(domain.Category{ID: 3, Name: "Zulu"})
	cs.be.Reset()
	_, body := cs.get(t, "/")
	if n := len(cs.be.CallsTo("GET", "/categories")); n != 1 {
		t.Fatalf("want one list call on reload, got %d", n)
	}
	if !inOrder(body, "Alpha", "Bravo", "Zulu") {
		t.Fatalf("category added elsewhere not shown; body=%s", body)
	}

	// indexes posted from the reloaded page resolve against it
	cs.be.Reset()
	expectRedirect(t, cs.post(t, "/categories/move", url.Values{"index": {"2"}, "dir": {"up"}}), "/")
	swaps := cs.be.CallsTo("POST", "/categories/swap")
	if len(swaps) != 1 || swaps[0].Int("id1") != 2 || swaps[0].Int("id2") != 3 {
		t.Fatalf("unexpected swap calls %+v", swaps)
	}
}
