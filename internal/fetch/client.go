package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alnah/go-tex2speech/internal/fileutil"
)

// Sentinel errors for downloads.
var (
	ErrDownload = errors.New("downloading source bundle failed")
	ErrTooLarge = errors.New("source bundle exceeds size limit")
)

// Client downloads and unpacks arXiv e-prints.
type Client struct {
	BaseURL       string
	LegacyArchive string
	UserAgent     string
	MaxBytes      int64 // 0 = unlimited
	HTTP          *http.Client
}

// Fetch downloads the source bundle for id and extracts it into dest.
// A bundle that is a single file is written as "<id>.tex".
func (c *Client) Fetch(ctx context.Context, id, dest string) error {
	url, err := EPrintURL(c.BaseURL, c.LegacyArchive, id)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", ErrDownload, url, resp.Status)
	}

	var body io.Reader = resp.Body
	if c.MaxBytes > 0 {
		body = &capReader{r: resp.Body, remaining: c.MaxBytes}
	}

	return Extract(body, dest, fileutil.SanitizeName(id)+".tex")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// capReader fails with ErrTooLarge once more than remaining bytes are read.
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}
