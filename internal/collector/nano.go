package collector

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NanoTracker/internal/model"
)

var (
	rawCamperDataRe = regexp.MustCompile(`var\s+rawCamperData\s*=\s*(\S+);`)
	parDataRe       = regexp.MustCompile(`var\s+parData\s*=\s*(\S+?);`)
)

// NanoFetcher implements Fetcher against the NaNoWriMo participant stats page.
type NanoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewNanoFetcher creates a fetcher with a 5-second timeout and optional proxy support.
func NewNanoFetcher(baseURL, proxyURL string) *NanoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NanoFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: transport,
		},
	}
}

func (f *NanoFetcher) Name() string { return "nanowrimo" }

// FetchStats retrieves and parses a user's stats page. The labeled stats
// table is required; the embedded chart arrays are added under the reserved
// raw keys when present.
func (f *NanoFetcher) FetchStats(user string) (model.StatsRecord, error) {
	pageURL := fmt.Sprintf("%s/participants/%s/stats", f.BaseURL, url.PathEscape(user))

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats for %s: %w", user, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stats for %s: status %d", user, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stats page for %s: %w", user, err)
	}

	record, err := parseStatsPage(body)
	if err != nil {
		return nil, fmt.Errorf("parse stats page for %s: %w", user, err)
	}
	return record, nil
}

// parseStatsPage extracts the labeled two-column table rows from the
// #novel_stats section, plus the inline per-day and goal arrays.
func parseStatsPage(body []byte) (model.StatsRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	record := model.StatsRecord{}
	doc.Find("#novel_stats").Children().Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 2 {
			return
		}
		key := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if key != "" {
			record[key] = value
		}
	})
	if len(record) == 0 {
		return nil, fmt.Errorf("stats section not found")
	}

	if m := rawCamperDataRe.FindSubmatch(body); m != nil {
		record[model.RawKeyChart] = string(m[1])
	}
	if m := parDataRe.FindSubmatch(body); m != nil {
		record[model.RawKeyWordGoal] = string(m[1])
	}
	return record, nil
}
