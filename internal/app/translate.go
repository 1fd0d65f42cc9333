package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"inspectra_web/internal/domain"
)

// keyTextWindow bounds how much of the source text feeds the cache key.
// Long strings identical in this window share a key; accepted tradeoff for
// bounded key size.
const keyTextWindow = 256

type Translator struct {
	provider domain.TranslationProvider
	cache    domain.Cache
	ttl      time.Duration
	sf       singleflight.Group
}

func NewTranslator(p domain.TranslationProvider, c domain.Cache, ttl time.Duration) *Translator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Translator{provider: p, cache: c, ttl: ttl}
}

func translationKey(text, lang string) string {
	t := text
	if len(t) > keyTextWindow {
		t = t[:keyTextWindow]
	}
	sum := sha1.Sum([]byte(t))
	return fmt.Sprintf("tr:%s:%s", lang, hex.EncodeToString(sum[:])[:16])
}

// TranslateText returns text unchanged for the source language and for
// targets outside the dynamic set, touching neither cache nor provider.
// On a cache miss, concurrent calls for the same key share one in-flight
// provider request. Provider errors propagate; fallback policy belongs to
// the caller.
func (t *Translator) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" || targetLang == domain.SourceLanguage || !domain.IsDynamic(targetLang) {
		return text, nil
	}
	key := translationKey(text, targetLang)
	var cached string
	if ok, _ := t.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	v, err, _ := t.sf.Do(key, func() (any, error) {
		out, err := t.provider.Translate(ctx, text, targetLang)
		if err != nil {
			return nil, err
		}
		_ = t.cache.Set(ctx, key, out, int(t.ttl.Seconds()))
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
