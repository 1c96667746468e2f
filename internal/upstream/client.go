package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rzbill/rolo/internal/store"
)

// Options configures the user directory client.
type Options struct {
	// BaseURL is the directory endpoint; ids are appended as a path segment.
	BaseURL string
	// UserAgent identifies this process to the directory. Empty uses a default.
	UserAgent string
	// Timeout bounds each request. Zero or negative uses a default.
	Timeout time.Duration
}

// Client fetches user records from the upstream directory API.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewClient validates opts and builds a directory client.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errors.New("BaseURL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid BaseURL: %w", err)
	}
	to := opts.Timeout
	if to <= 0 {
		to = 30 * time.Second
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "rolo/0.1"
	}
	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		client:    &http.Client{Timeout: to},
		userAgent: ua,
	}, nil
}

// userPayload mirrors the directory's user shape. Country can arrive nested
// under location or at the top level depending on the profile.
type userPayload struct {
	Username string `json:"username"`
	Location struct {
		Country struct {
			Name string `json:"name"`
		} `json:"country"`
	} `json:"location"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// nowFn stamps CreatedAt at fetch time. Swapped in tests.
var nowFn = time.Now

// Fetch resolves one user. ok reports false for every non-retryable miss:
// a non-200 response, an empty result set, or a body that does not parse.
// err is reserved for transport-level failure.
func (c *Client) Fetch(ctx context.Context, id int64) (store.Record, bool, error) {
	u := c.baseURL + "/" + strconv.FormatInt(id, 10)
	body, status, err := c.doGET(ctx, u)
	if err != nil {
		if status != 0 {
			// The directory answered; a non-200 profile is a miss, not a
			// transport failure.
			return store.Record{}, false, nil
		}
		return store.Record{}, false, err
	}

	var parsed struct {
		Result struct {
			Users []userPayload `json:"users"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return store.Record{}, false, nil
	}
	if len(parsed.Result.Users) == 0 {
		return store.Record{}, false, nil
	}

	user := parsed.Result.Users[0]
	region := user.Location.Country.Name
	if region == "" {
		region = user.Country.Name
	}

	rec := store.Record{
		ID:          id,
		DisplayName: user.Username,
		Region:      region,
		CreatedAt:   nowFn().UTC().Truncate(time.Millisecond),
	}
	return rec, true, nil
}

func (c *Client) doGET(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	status := resp.StatusCode
	b, _ := io.ReadAll(resp.Body)
	if status < 200 || status >= 300 {
		return nil, status, fmt.Errorf("http status %d", status)
	}
	return b, status, nil
}
