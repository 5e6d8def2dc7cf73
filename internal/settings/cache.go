package settings

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/models"
)

// Fetcher is the slice of the upstream client the cache needs.
type Fetcher interface {
	FeatureSettings(ctx context.Context) (map[string]any, error)
}

// Cache holds the in-memory feature-settings record for the process lifetime.
// It starts fully populated from the defaults; a successful fetch replaces it
// with the backend record shallow-merged over those defaults, so every known
// key always has a value. The record is never persisted anywhere.
type Cache struct {
	api Fetcher
	ttl time.Duration

	mu          sync.Mutex
	values      map[string]any
	lastFetched time.Time
	lastErr     error
	inFlight    bool
	generation  uint64
}

// NewCache creates a Cache seeded with the default record. A zero ttl means
// every Fetch goes to the backend.
func NewCache(api Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		api:    api,
		ttl:    ttl,
		values: models.DefaultFeatureSettings(),
	}
}

// Fetch refreshes the record from the backend. It no-ops while a fetch is in
// flight or while the cache window is still fresh. Responses carry the
// generation they were issued under; a response that lost to a newer
// generation is discarded instead of overwriting fresher data. On failure the
// previous record is kept and the error is both recorded and returned.
func (c *Cache) Fetch(ctx context.Context) error {
	return c.fetch(ctx, false)
}

// Refresh is Fetch with the cache window bypassed.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.fetch(ctx, true)
}

func (c *Cache) fetch(ctx context.Context, force bool) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil
	}
	if !force && c.ttl > 0 && !c.lastFetched.IsZero() && time.Since(c.lastFetched) < c.ttl {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	fetched, err := c.api.FeatureSettings(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if gen != c.generation {
		return nil
	}
	if err != nil {
		c.lastErr = err
		return err
	}

	merged := models.DefaultFeatureSettings()
	for key, value := range fetched {
		merged[key] = value
	}
	c.values = merged
	c.lastFetched = time.Now()
	c.lastErr = nil
	return nil
}

// Values returns a copy of the current record.
func (c *Cache) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}

// LastError returns the error recorded by the most recent failed fetch, if
// the record has not been refreshed successfully since.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ShouldShow reports the boolean setting for key; unknown or non-boolean
// values read as false.
func (c *Cache) ShouldShow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key].(bool)
	return ok && value
}

func (c *Cache) stringSetting(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, _ := c.values[key].(string)
	return value
}

// FormatPrice renders an amount with thousands separators and the configured
// currency symbol placed per currency_position. No locale rules apply beyond
// the separators.
func (c *Cache) FormatPrice(amount float64) string {
	symbol := c.stringSetting(models.SettingCurrencySymbol)
	position := c.stringSetting(models.SettingCurrencyPosition)

	number := groupThousands(strconv.FormatFloat(amount, 'f', -1, 64))
	if position == "after" {
		return number + " " + symbol
	}
	return symbol + " " + number
}

// groupThousands inserts comma separators into the integer part of a decimal
// number string, leaving any sign and fraction untouched.
func groupThousands(number string) string {
	sign := ""
	if strings.HasPrefix(number, "-") {
		sign = "-"
		number = number[1:]
	}
	intPart := number
	fraction := ""
	if i := strings.IndexByte(number, '.'); i >= 0 {
		intPart = number[:i]
		fraction = number[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + fraction
}
