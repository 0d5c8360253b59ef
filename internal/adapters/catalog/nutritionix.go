package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vitalog/internal/platform/logger"

	dom "vitalog/internal/services/catalog/domain"
)

const (
	nixBaseDefault = "https://trackapi.nutritionix.com"
	nixTimeout     = 8 * time.Second
)

// NutritionixOptions configures the Nutritionix source. AppID and AppKey are
// required, without them the source stays constructed but every search
// short-circuits to empty
type NutritionixOptions struct {
	BaseURL string
	AppID   string
	AppKey  string
	Timeout time.Duration
}

// Nutritionix searches the Nutritionix instant endpoint for branded products
type Nutritionix struct {
	http *http.Client
	opts NutritionixOptions
	log  logger.Logger
}

// NewNutritionix creates the source with sane defaults
func NewNutritionix(o NutritionixOptions) *Nutritionix {
	if o.BaseURL == "" {
		o.BaseURL = nixBaseDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = nixTimeout
	}
	return &Nutritionix{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("catalog.nutritionix"),
	}
}

// Name implements domain.Source
func (s *Nutritionix) Name() string { return "nutritionix" }

type nixEnvelope struct {
	Branded []struct {
		ID          string  `json:"nix_item_id"`
		FoodName    string  `json:"food_name"`
		BrandName   string  `json:"brand_name"`
		ServingUnit string  `json:"serving_unit"`
		ServingQty  float64 `json:"serving_qty"`
		Calories    float64 `json:"nf_calories"`
	} `json:"branded"`
}

// Search implements domain.Source. Never returns an error, any failure is
// logged and contributes zero results
func (s *Nutritionix) Search(ctx context.Context, query string, limit int) []dom.Result {
	if query == "" || s.opts.AppID == "" || s.opts.AppKey == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	u := s.opts.BaseURL + "/v2/search/instant?" + url.Values{
		"query":   {query},
		"branded": {"true"},
		"common":  {"false"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("nutritionix request build failed")
		return nil
	}
	req.Header.Set("x-app-id", s.opts.AppID)
	req.Header.Set("x-app-key", s.opts.AppKey)

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("nutritionix search failed")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("nutritionix search non-200")
		return nil
	}

	var env nixEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("nutritionix response decode failed")
		return nil
	}

	out := make([]dom.Result, 0, len(env.Branded))
	for _, b := range env.Branded {
		if b.FoodName == "" {
			continue
		}
		r := dom.Result{
			Source: s.Name(),
			ID:     b.ID,
			Name:   b.FoodName,
			Brand:  b.BrandName,
		}
		if b.ServingQty > 0 && b.ServingUnit != "" {
			r.ServingSize = trimFloat(b.ServingQty) + " " + b.ServingUnit
		}
		if b.Calories > 0 {
			r.Nutrients = map[string]float64{"calories": b.Calories}
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// firstCSV returns the first element of a comma separated list, trimmed
func firstCSV(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
