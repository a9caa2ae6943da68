package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
	"quran-daily-bot/internal/infra/metrics"
)

// Cache is an optional read-through store for provider responses.
// quran-daily-bot/internal/infra/redis.ContentCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

var _ adapter.ContentProvider = (*Client)(nil)

// Client talks to the quran.com v4 API. All lookups are by canonical
// "chapter:verse" key; translation and tafsir lookups additionally carry a
// provider edition id.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   Cache // nil disables caching
	log     *zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, cache Cache, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	compLog := logger.With().Str("component", "QuranClient").Logger()
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		cache:   cache,
		log:     &compLog,
	}
}

type verseResponse struct {
	Verse struct {
		VerseKey    string `json:"verse_key"`
		VerseNumber int    `json:"verse_number"`
		TextUthmani string `json:"text_uthmani"`
		Chapter     struct {
			NameArabic string `json:"name_arabic"`
			NameSimple string `json:"name_simple"`
		} `json:"chapter"`
	} `json:"verse"`
}

type translationResponse struct {
	Translation struct {
		Text string `json:"text"`
	} `json:"translation"`
}

type tafsirResponse struct {
	Tafsir struct {
		Text string `json:"text"`
	} `json:"tafsir"`
}

func (c *Client) VerseByKey(ctx context.Context, verseKey string) (*model.Verse, error) {
	reqURL := fmt.Sprintf("%s/verses/by_key/%s?fields=text_uthmani&words=false", c.baseURL, url.PathEscape(verseKey))
	cacheKey := "verse:" + verseKey

	var v model.Verse
	if c.fromCache(ctx, cacheKey, &v) {
		metrics.IncContentRequest("verse", "cached")
		return &v, nil
	}

	var resp verseResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		metrics.IncContentRequest("verse", "error")
		return nil, fmt.Errorf("fetch verse %s: %w", verseKey, err)
	}
	metrics.IncContentRequest("verse", "ok")

	v = model.Verse{
		VerseKey:          resp.Verse.VerseKey,
		VerseNumber:       resp.Verse.VerseNumber,
		TextUthmani:       resp.Verse.TextUthmani,
		ChapterNameArabic: resp.Verse.Chapter.NameArabic,
		ChapterNameSimple: resp.Verse.Chapter.NameSimple,
	}
	c.toCache(ctx, cacheKey, &v)
	return &v, nil
}

func (c *Client) Translation(ctx context.Context, editionID int, verseKey string) (*model.Translation, error) {
	reqURL := fmt.Sprintf("%s/translations/%d/by_key/%s", c.baseURL, editionID, url.PathEscape(verseKey))
	cacheKey := fmt.Sprintf("translation:%d:%s", editionID, verseKey)

	var t model.Translation
	if c.fromCache(ctx, cacheKey, &t) {
		metrics.IncContentRequest("translation", "cached")
		return &t, nil
	}

	var resp translationResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		metrics.IncContentRequest("translation", "error")
		return nil, fmt.Errorf("fetch translation %d/%s: %w", editionID, verseKey, err)
	}
	metrics.IncContentRequest("translation", "ok")

	t = model.Translation{Text: resp.Translation.Text}
	c.toCache(ctx, cacheKey, &t)
	return &t, nil
}

func (c *Client) Tafsir(ctx context.Context, editionID int, verseKey string) (*model.Tafsir, error) {
	reqURL := fmt.Sprintf("%s/tafsirs/%d/by_key/%s", c.baseURL, editionID, url.PathEscape(verseKey))
	cacheKey := fmt.Sprintf("tafsir:%d:%s", editionID, verseKey)

	var tf model.Tafsir
	if c.fromCache(ctx, cacheKey, &tf) {
		metrics.IncContentRequest("tafsir", "cached")
		return &tf, nil
	}

	var resp tafsirResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		metrics.IncContentRequest("tafsir", "error")
		return nil, fmt.Errorf("fetch tafsir %d/%s: %w", editionID, verseKey, err)
	}
	metrics.IncContentRequest("tafsir", "ok")

	tf = model.Tafsir{Text: resp.Tafsir.Text}
	c.toCache(ctx, cacheKey, &tf)
	return &tf, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// fromCache reports whether the key was present and decoded; errors are
// treated as misses.
func (c *Client) fromCache(ctx context.Context, key string, out interface{}) bool {
	if c.cache == nil {
		return false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("stale cache entry ignored")
		return false
	}
	return true
}

func (c *Client) toCache(ctx context.Context, key string, val interface{}) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(data)); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
