package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"inspectra_web/internal/adapters/observability"
)

// Default endpoints; tests point base at an httptest server.
const (
	GoogleBase = "https://translation.googleapis.com/language/translate/v2"
	DeepLBase  = "https://api-free.deepl.com/v2/translate"
)

var (
	ErrUnauthorized = errors.New("translator: unauthorized")
	ErrRateLimited  = errors.New("translator: rate limited")
)

// Google calls the Cloud Translation v2 REST endpoint. One request per
// string; a failed call is returned as-is and fallback stays with the caller.
type Google struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewGoogle(base, key string, rps int) *Google {
	if base == "" {
		base = GoogleBase
	}
	if rps <= 0 {
		rps = 5
	}
	return &Google{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 15 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body := map[string]any{
		"q":      text,
		"source": "en",
		"target": targetLang,
		"format": "text",
	}
	var out struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	url := g.base + "?key=" + g.key
	if err := postJSON(ctx, g.hc, g.rl, "google", url, nil, body, &out); err != nil {
		return "", err
	}
	if len(out.Data.Translations) == 0 {
		return "", fmt.Errorf("google: empty translation response")
	}
	return out.Data.Translations[0].TranslatedText, nil
}

// DeepL speaks the v2 JSON API. Target codes are upper-cased per DeepL's
// conventions.
type DeepL struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewDeepL(base, key string, rps int) *DeepL {
	if base == "" {
		base = DeepLBase
	}
	if rps <= 0 {
		rps = 5
	}
	return &DeepL{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 15 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (d *DeepL) Name() string { return "deepl" }

func (d *DeepL) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body := map[string]any{
		"text":        []string{text},
		"source_lang": "EN",
		"target_lang": strings.ToUpper(targetLang),
	}
	var out struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	hdr := map[string]string{"Authorization": "DeepL-Auth-Key " + d.key}
	if err := postJSON(ctx, d.hc, d.rl, "deepl", d.base, hdr, body, &out); err != nil {
		return "", err
	}
	if len(out.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty translation response")
	}
	return out.Translations[0].Text, nil
}

// Mock is the credential-less fallback: deterministic tag prefixing keeps
// local development working without provider accounts.
type Mock struct{}

func (Mock) Name() string { return "mock" }

func (Mock) Translate(_ context.Context, text, targetLang string) (string, error) {
	return "[" + targetLang + "] " + text, nil
}

// postJSON performs one rate-limited POST and decodes the response. There is
// deliberately no retry loop: a single upstream failure bubbles up and the
// resolver degrades to source language.
func postJSON(ctx context.Context, hc *http.Client, rl *rate.Limiter, service, url string, hdr map[string]string, in, out any) error {
	if err := rl.Wait(ctx); err != nil {
		return err
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "inspectra-web/1.0")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveExternal(service, "translate", 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, "translate", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: bad status %d: %s", service, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
