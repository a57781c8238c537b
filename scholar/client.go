// Package scholar searches academic papers through the Semantic Scholar Graph API.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://api.semanticscholar.org"
	DefaultLimit   = 5
	DefaultTimeout = 30 * time.Second

	searchPath   = "/graph/v1/paper/search"
	searchFields = "title,authors,year,venue,abstract"
)

// Unknown replaces metadata the API did not return.
const Unknown = "Unknown"

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrAPI        = errors.New("semantic scholar api error")
)

// Paper is a search hit with its bibliographic fields flattened to text.
type Paper struct {
	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors" yaml:"authors"`
	Year     string   `json:"year" yaml:"year"`
	Venue    string   `json:"venue" yaml:"venue"`
	Abstract string   `json:"abstract" yaml:"abstract"`
}

type searchResponse struct {
	Total int        `json:"total"`
	Data  []apiPaper `json:"data"`
}

type apiPaper struct {
	PaperID  string      `json:"paperId"`
	Title    string      `json:"title"`
	Authors  []apiAuthor `json:"authors"`
	Year     *int        `json:"year"`
	Venue    *string     `json:"venue"`
	Abstract *string     `json:"abstract"`
}

type apiAuthor struct {
	Name string `json:"name"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client is safe for concurrent use.
type Client struct {
	http  *resty.Client
	limit int
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key in the x-api-key header. Unauthenticated requests share a public rate
// limit.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.http.SetHeader("x-api-key", key)
		}
	}
}

// WithLimit caps the number of papers per search.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(DefaultTimeout).
			SetHeader("Accept", "application/json"),
		limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Limit returns the maximum number of papers Search returns.
func (c *Client) Limit() int {
	return c.limit
}

// Search returns at most Limit papers for query, in the order the API ranks them.
func (c *Client) Search(ctx context.Context, query string) ([]Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var (
		result searchResponse
		failed apiError
	)
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  query,
			"limit":  strconv.Itoa(c.limit),
			"fields": searchFields,
		}).
		SetExpectResponseContentType("application/json").
		SetResult(&result).
		SetError(&failed).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if res.IsError() {
		msg := firstNonEmpty(failed.Message, failed.Error, res.Status())
		return nil, fmt.Errorf("%w: %d: %s", ErrAPI, res.StatusCode(), msg)
	}

	papers := make([]Paper, 0, min(len(result.Data), c.limit))
	for _, p := range result.Data {
		if len(papers) == c.limit {
			break
		}
		papers = append(papers, p.toPaper())
	}
	return papers, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

func (p apiPaper) toPaper() Paper {
	out := Paper{
		Title:    firstNonEmpty(strings.TrimSpace(p.Title), Unknown),
		Year:     Unknown,
		Venue:    Unknown,
		Abstract: Unknown,
	}
	for _, a := range p.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			out.Authors = append(out.Authors, name)
		}
	}
	if p.Year != nil {
		out.Year = strconv.Itoa(*p.Year)
	}
	if p.Venue != nil && strings.TrimSpace(*p.Venue) != "" {
		out.Venue = strings.TrimSpace(*p.Venue)
	}
	if p.Abstract != nil && strings.TrimSpace(*p.Abstract) != "" {
		out.Abstract = strings.TrimSpace(*p.Abstract)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Citation renders "Title by A, B (year) in venue". Year and venue are left out when empty or
// "NA".
func (p Paper) Citation() string {
	var sb strings.Builder
	sb.WriteString(p.Title)
	sb.WriteString(" by ")
	sb.WriteString(strings.Join(p.Authors, ", "))
	if present(p.Year) {
		fmt.Fprintf(&sb, " (%s)", p.Year)
	}
	if present(p.Venue) {
		fmt.Fprintf(&sb, " in %s", p.Venue)
	}
	return sb.String()
}

func present(v string) bool {
	return v != "" && v != "NA"
}
