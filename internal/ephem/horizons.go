package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the default HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsProvider queries JPL Horizons for Neptune-barycentric state
// vectors. Fetched tables are cached on disk under fixed filenames so a
// repeated run with the same grid needs no network at all.
type HorizonsProvider struct {
	client   *http.Client
	url      string
	timeout  time.Duration
	cacheDir string
}

// HorizonsOption configures a HorizonsProvider.
type HorizonsOption func(*HorizonsProvider)

// WithURL sets a custom API endpoint (used by tests).
func WithURL(u string) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.client = client
	}
}

// WithCacheDir enables the on-disk vector table cache in the given directory.
// An empty dir disables caching.
func WithCacheDir(dir string) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.cacheDir = dir
	}
}

// NewHorizonsProvider creates a Horizons API client.
func NewHorizonsProvider(opts ...HorizonsOption) *HorizonsProvider {
	p := &HorizonsProvider{
		url:     HorizonsAPIURL,
		timeout: RequestTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = &http.Client{
			Timeout: p.timeout,
		}
	}

	return p
}

// Name implements PositionProvider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Positions implements PositionProvider. The whole grid is fetched in a
// single VECTORS query: Horizons divides the interval into Samples-1 equal
// steps, which matches the grid's linear spacing exactly.
func (p *HorizonsProvider) Positions(ctx context.Context, body BodyID, r Range) ([]astro.Vec3, error) {
	if r.Samples <= 0 {
		return nil, fmt.Errorf("invalid sample count %d", r.Samples)
	}

	if table, ok := p.loadCached(body, r); ok {
		return parseVectorTable(table, r.Samples)
	}

	table, err := p.queryVectors(ctx, body, r)
	if err != nil {
		return nil, err
	}

	positions, err := parseVectorTable(table, r.Samples)
	if err != nil {
		return nil, err
	}

	// Only valid tables are written to the cache.
	p.storeCached(body, r, table)

	return positions, nil
}

// queryVectors requests a state vector table from the Horizons API.
func (p *HorizonsProvider) queryVectors(ctx context.Context, body BodyID, r Range) (string, error) {
	// Values must be quoted with single quotes.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", body))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", fmt.Sprintf("'@%d'", NAIFNeptuneBarycenter))
	params.Set("REF_SYSTEM", "ICRF")
	// Horizons defaults to the ecliptic plane for VECTORS; FRAME selects
	// the ICRF/J2000 equatorial frame the rest of the pipeline uses.
	params.Set("REF_PLANE", "FRAME")
	params.Set("VEC_TABLE", "'1'") // Position only
	params.Set("VEC_LABELS", "NO")
	params.Set("CSV_FORMAT", "YES")
	params.Set("OUT_UNITS", "'KM-S'")
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(r.Start)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(r.End)))
	if r.Samples == 1 {
		params.Set("STEP_SIZE", "'1'")
	} else {
		// An integer step size divides the interval into that many steps.
		params.Set("STEP_SIZE", fmt.Sprintf("'%d'", r.Samples-1))
	}

	reqURL := p.url + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ls-flyby/1.0 (Neptune Flyby Visualization)")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var hr horizonsResponse
	if err := json.Unmarshal(respBody, &hr); err != nil {
		return "", fmt.Errorf("parse JSON: %w", err)
	}

	// Horizons reports missing coverage inside a 200 response.
	if strings.Contains(hr.Result, "No ephemeris for target") ||
		strings.Contains(hr.Result, "Cannot interpolate") {
		return "", fmt.Errorf("%w: %d over %s..%s", ErrNoData,
			body, formatHorizonsTime(r.Start), formatHorizonsTime(r.End))
	}

	return hr.Result, nil
}

// horizonsResponse represents the JSON API envelope.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
}

// parseVectorTable extracts position vectors from the text table between the
// $$SOE and $$EOE markers. With CSV_FORMAT=YES each record is a single line:
//
//	2447762.500000000, A.D. 1989-Aug-24 00:00:00.0000,  1.06E+06, -4.60E+05,  2.47E+05,
func parseVectorTable(result string, want int) ([]astro.Vec3, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find vector data markers")
	}

	var positions []astro.Vec3
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		v, err := parseVectorLine(line)
		if err != nil {
			return nil, err
		}
		positions = append(positions, v)
	}

	if len(positions) != want {
		return nil, fmt.Errorf("vector table has %d records, want %d", len(positions), want)
	}

	return positions, nil
}

// parseVectorLine parses one CSV vector record. Fields: JD, calendar date,
// X, Y, Z (km), with a trailing comma.
func parseVectorLine(line string) (astro.Vec3, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return astro.Vec3{}, fmt.Errorf("vector record has %d fields: %q", len(fields), line)
	}

	var xyz [3]float64
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(strings.TrimSpace(fields[2+i]), 64)
		if err != nil {
			return astro.Vec3{}, fmt.Errorf("parse component %d of %q: %w", i, line, err)
		}
		xyz[i] = val
	}

	return astro.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// cachePath returns the fixed cache filename for a body and grid.
func (p *HorizonsProvider) cachePath(body BodyID, r Range) string {
	name := fmt.Sprintf("vec_%d_%s_%s_%d.txt",
		body,
		r.Start.UTC().Format("20060102T1504"),
		r.End.UTC().Format("20060102T1504"),
		r.Samples)
	return filepath.Join(p.cacheDir, name)
}

// loadCached returns a previously fetched vector table, if present.
func (p *HorizonsProvider) loadCached(body BodyID, r Range) (string, bool) {
	if p.cacheDir == "" {
		return "", false
	}
	data, err := os.ReadFile(p.cachePath(body, r))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// storeCached writes a fetched vector table to the cache. Cache write
// failures are ignored: the data is already in memory.
func (p *HorizonsProvider) storeCached(body BodyID, r Range, table string) {
	if p.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(p.cachePath(body, r), []byte(table), 0o644)
}
