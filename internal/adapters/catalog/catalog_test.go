package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOFF_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "creatine" {
			t.Errorf("search_terms = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"code": "123", "product_name": "Creatine Monohydrate", "brands": "Optimum, ON",
				 "categories": "Supplements, Sports", "serving_size": "5 g",
				 "nutriments": {"proteins_100g": 0}},
				{"code": "456", "product_name": ""}
			]
		}`))
	}))
	defer srv.Close()

	src := NewOFF(OFFOptions{BaseURL: srv.URL})
	got := src.Search(context.Background(), "creatine", 10)
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1 (nameless hit dropped): %+v", len(got), got)
	}
	r := got[0]
	if r.ID != "123" || r.Name != "Creatine Monohydrate" || r.Brand != "Optimum" || r.Category != "Supplements" {
		t.Fatalf("result = %+v", r)
	}
}

func TestOFF_FailuresYieldEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewOFF(OFFOptions{BaseURL: srv.URL})
	if got := src.Search(context.Background(), "creatine", 10); got != nil {
		t.Fatalf("non-200 should yield empty, got %+v", got)
	}

	// unreachable host
	dead := NewOFF(OFFOptions{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if got := dead.Search(context.Background(), "creatine", 10); got != nil {
		t.Fatalf("connection failure should yield empty, got %+v", got)
	}
}

func TestNutritionix_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-app-id") != "id" || r.Header.Get("x-app-key") != "key" {
			t.Errorf("missing auth headers")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"branded": [
				{"nix_item_id": "n1", "food_name": "LMNT Citrus Salt", "brand_name": "LMNT",
				 "serving_unit": "packet", "serving_qty": 1, "nf_calories": 10}
			]
		}`))
	}))
	defer srv.Close()

	src := NewNutritionix(NutritionixOptions{BaseURL: srv.URL, AppID: "id", AppKey: "key"})
	got := src.Search(context.Background(), "lmnt citrus", 10)
	if len(got) != 1 {
		t.Fatalf("got %d results: %+v", len(got), got)
	}
	r := got[0]
	if r.Name != "LMNT Citrus Salt" || r.Brand != "LMNT" || r.ServingSize != "1 packet" {
		t.Fatalf("result = %+v", r)
	}
	if r.Nutrients["calories"] != 10 {
		t.Fatalf("nutrients = %+v", r.Nutrients)
	}
}

func TestNutritionix_NoCredentialsShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	src := NewNutritionix(NutritionixOptions{BaseURL: srv.URL})
	if got := src.Search(context.Background(), "creatine", 10); got != nil {
		t.Fatalf("expected empty, got %+v", got)
	}
	if called {
		t.Fatal("source must not call out without credentials")
	}
}
