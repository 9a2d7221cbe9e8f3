package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// Matches embedded low-resolution size hints in image URLs, e.g. "=w200-h200-p"
	imageSizeHintRegex = regexp.MustCompile(`(?i)=w\d+-h\d+(-[a-z]+)?`)

	// Matches width/height/quality query parameters, e.g. "?w=120" or "&q=60"
	imageSizeParamRegex = regexp.MustCompile(`(?i)[?&](w|h|q)=\d+`)

	// Matches the first run of digits with thousand/decimal separators
	priceDigitsRegex = regexp.MustCompile(`[\d.,]+`)
)

// Normalization bounds
const (
	maxImages   = 6
	maxSpecs    = 8
	maxIDLen    = 128
	defaultName = "Product"
)

// NormalizeAll maps raw provider records into eligible Candidates.
// Records that fail the eligibility gate (no parseable price, no resolvable
// image, or no derivable id) are dropped and never reach later stages.
func NormalizeAll(raws []domain.RawRecord, src domain.Source) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(raws))
	for _, raw := range raws {
		c := Normalize(raw, src)
		if Eligible(c) {
			out = append(out, c)
		}
	}
	return out
}

// Normalize maps a single raw heterogeneous record into the canonical
// Candidate shape. Field names vary by provider, so each field is resolved
// from an ordered list of plausible keys.
func Normalize(raw domain.RawRecord, src domain.Source) domain.Candidate {
	name := firstString(raw, "title", "name")
	if name == "" {
		name = defaultName
	}

	images := resolveImages(raw)
	imageURL := ""
	if len(images) > 0 {
		imageURL = images[0]
	}

	c := domain.Candidate{
		ID:           resolveID(raw, name),
		Name:         name,
		Description:  firstString(raw, "description", "snippet"),
		Price:        resolvePrice(raw),
		ImageURL:     imageURL,
		Images:       images,
		MerchantName: resolveMerchant(raw),
		Tags:         resolveTags(raw),
		ExternalURL:  firstString(raw, "external_url", "product_link", "link"),
		Specs:        resolveSpecs(raw),
		Source:       src,
	}
	return c
}

// Eligible is the minimum-viability gate: priced, imaged, identifiable
func Eligible(c domain.Candidate) bool {
	return c.Price > 0 && c.ImageURL != "" && c.ID != ""
}

// resolveID derives a stable per-request id from source identifiers,
// falling back to the normalized name.
func resolveID(raw domain.RawRecord, name string) string {
	id := firstString(raw, "id", "product_id", "product_id_token", "position")
	if id == "" {
		id = strings.ToLower(strings.TrimSpace(name))
	}
	if len(id) > maxIDLen {
		id = id[:maxIDLen]
	}
	return id
}

// resolveImages collects every plausible image reference in priority order:
// primary singular fields, then array fields, then the thumbnail as last
// resort. Size hints embedded in URLs are stripped so higher-resolution
// variants are not discarded by incidental de-dup. Keeps at most maxImages.
func resolveImages(raw domain.RawRecord) []string {
	var cand []string
	cand = append(cand, stringOf(raw["image_url"]), stringOf(raw["image"]))

	for _, key := range []string{"product_images", "images"} {
		arr, ok := raw[key].([]any)
		if !ok {
			continue
		}
		for _, v := range arr {
			switch im := v.(type) {
			case string:
				cand = append(cand, im)
			case map[string]any:
				cand = append(cand, firstString(im, "link", "thumbnail"))
			}
		}
	}
	cand = append(cand, stringOf(raw["thumbnail"]))

	seen := make(map[string]bool)
	var out []string
	for _, url := range cand {
		url = imageSizeHintRegex.ReplaceAllString(url, "")
		url = imageSizeParamRegex.ReplaceAllString(url, "")
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, url)
		if len(out) >= maxImages {
			break
		}
	}
	return out
}

// resolvePrice prefers a numeric extracted price, then scans string-bearing
// price fields in order. Unparseable prices resolve to 0, which makes the
// candidate ineligible downstream.
func resolvePrice(raw domain.RawRecord) int {
	if n, ok := numberOf(raw["extracted_price"]); ok {
		return roundPrice(n)
	}
	for _, key := range []string{"price_nok", "price", "unit_price"} {
		if n, ok := numberOf(raw[key]); ok {
			return roundPrice(n)
		}
		if s := stringOf(raw[key]); s != "" {
			if n, ok := parsePriceString(s); ok {
				return roundPrice(n)
			}
		}
	}
	// SerpAPI sometimes nests prices in a list
	if prices, ok := raw["prices"].([]any); ok && len(prices) > 0 {
		if entry, ok := prices[0].(map[string]any); ok {
			if n, ok := numberOf(entry["extracted_price"]); ok {
				return roundPrice(n)
			}
			if n, ok := parsePriceString(stringOf(entry["price"])); ok {
				return roundPrice(n)
			}
		}
	}
	return 0
}

// parsePriceString extracts the first digit run from a display price like
// "1.299,50 kr" and normalizes separators. When both separators occur the
// European convention applies (dot = thousands, comma = decimal); otherwise
// the single separator present is treated as decimal.
func parsePriceString(s string) (float64, bool) {
	m := priceDigitsRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	hasDot := strings.Contains(m, ".")
	hasComma := strings.Contains(m, ",")
	switch {
	case hasDot && hasComma:
		m = strings.ReplaceAll(m, ".", "")
		m = strings.Replace(m, ",", ".", 1)
	case hasComma:
		m = strings.Replace(m, ",", ".", 1)
	}
	m = strings.Trim(m, ".")
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func roundPrice(n float64) int {
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(math.Round(n))
}

// resolveMerchant resolves the merchant name from singular fields, a nested
// seller object, or the first string entry of a SerpAPI extensions list.
func resolveMerchant(raw domain.RawRecord) string {
	if m := firstString(raw, "merchant_name", "source", "store", "merchant"); m != "" {
		return m
	}
	if seller, ok := raw["seller"].(map[string]any); ok {
		if name := stringOf(seller["name"]); name != "" {
			return name
		}
	}
	if exts, ok := raw["extensions"].([]any); ok {
		for _, e := range exts {
			if s, ok := e.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// resolveTags lowercases and splits comma-separated tag fields
func resolveTags(raw domain.RawRecord) []string {
	joined := firstString(raw, "tags", "category", "sub_title")
	if joined == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(strings.ToLower(joined), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// resolveSpecs retains at most maxSpecs ordered key/value attributes
func resolveSpecs(raw domain.RawRecord) []domain.Spec {
	arr, ok := raw["specs"].([]any)
	if !ok {
		return nil
	}
	var specs []domain.Spec
	for _, v := range arr {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		key := firstString(entry, "key", "name")
		val := stringOf(entry["value"])
		if key == "" || val == "" {
			continue
		}
		specs = append(specs, domain.Spec{Key: key, Value: val})
		if len(specs) >= maxSpecs {
			break
		}
	}
	return specs
}

// firstString returns the first non-empty string-convertible value among keys
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringOf(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

// stringOf converts scalar record values to a trimmed string.
// JSON decoding yields float64 for all numbers, so those are formatted
// without a trailing fraction when whole.
func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// numberOf extracts a positive numeric value from scalar record values
func numberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, t > 0
	case int:
		return float64(t), t > 0
	case int64:
		return float64(t), t > 0
	default:
		return 0, false
	}
}
