// Package revalidation asks the storefront to rebuild its cached pages
// after catalog mutations.
package revalidation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

type Revalidator struct {
	c      *Config
	client *http.Client
}

type Config struct {
	// StorefrontURL is the base URL of the deployed storefront.
	StorefrontURL string `mapstructure:"storefront_url"`
	// RevalidateSecret gates the storefront's revalidate hook.
	RevalidateSecret string        `mapstructure:"revalidate_secret"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
}

func New(c *Config) *Revalidator {
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Revalidator{
		c:      c,
		client: &http.Client{Timeout: timeout},
	}
}

// RevalidatePath hits the storefront's revalidate hook for the given page
// path. A misconfigured or absent storefront URL is a no-op.
func (v *Revalidator) RevalidatePath(ctx context.Context, path string) error {
	if v.c.StorefrontURL == "" {
		return nil
	}

	base, err := url.Parse(v.c.StorefrontURL)
	if err != nil {
		return fmt.Errorf("bad storefront url %q: %w", v.c.StorefrontURL, err)
	}
	base.Path = "/api/revalidate"
	q := base.Query()
	q.Set("secret", v.c.RevalidateSecret)
	q.Set("path", path)
	base.RawQuery = q.Encode()
	apiUrl := base.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiUrl, nil)
	if err != nil {
		return fmt.Errorf("failed to create POST request to %s: %w", apiUrl, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to POST to %s: %w", apiUrl, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body from %s: %w", apiUrl, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revalidate failed for %s (status %d): %s", path, resp.StatusCode, string(body))
	}

	slog.Default().InfoContext(ctx, "revalidated storefront path",
		slog.String("path", path),
	)
	return nil
}
