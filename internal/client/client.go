package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-recordshop/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// DefaultReadTimeout bounds every GET. Writes are not bounded.
const DefaultReadTimeout = 5 * time.Second

var ErrUnavailable = errors.New("api unavailable")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// RecordPayload is the body sent on create and update.
type RecordPayload struct {
	Title       string          `json:"title"`
	Artist      string          `json:"artist"`
	Format      string          `json:"format"`
	Genre       string          `json:"genre"`
	ReleaseYear int             `json:"releaseYear"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stockQty"`

	CustomerID        string `json:"customerId"`
	CustomerFirstName string `json:"customerFirstName"`
	CustomerLastName  string `json:"customerLastName"`
	CustomerContact   string `json:"customerContact"`
	CustomerEmail     string `json:"customerEmail"`
}

// PayloadFrom copies the editable fields of a record.
func PayloadFrom(r model.Record) RecordPayload {
	return RecordPayload{
		Title:             r.Title,
		Artist:            r.Artist,
		Format:            r.Format,
		Genre:             r.Genre,
		ReleaseYear:       r.ReleaseYear,
		Price:             r.Price,
		StockQty:          r.StockQty,
		CustomerID:        r.CustomerID,
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerContact:   r.CustomerContact,
		CustomerEmail:     r.CustomerEmail,
	}
}

// DeleteResult is the body of a successful delete.
type DeleteResult struct {
	Message string       `json:"message"`
	Record  model.Record `json:"record"`
}

// LoginResult is the principal plus its bearer token.
type LoginResult struct {
	model.Principal
	Token string `json:"token"`
}

// Client talks to the Record Shop API.
type Client struct {
	baseURL     string
	token       string
	readTimeout time.Duration
}

type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.readTimeout = d }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Login(email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(fiber.Post(c.url("/api/login")).JSON(body), 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Formats() ([]string, error) {
	var out []string
	if err := c.get("/api/formats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Genres() ([]string, error) {
	var out []string
	if err := c.get("/api/genres", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Records() ([]model.Record, error) {
	var out []model.Record
	if err := c.get("/api/records", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Record(id int) (*model.Record, error) {
	var out model.Record
	if err := c.get("/api/records/"+strconv.Itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRecord(p RecordPayload) (*model.Record, error) {
	var out model.Record
	if err := c.do(fiber.Post(c.url("/api/records")).JSON(p), 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecord(id int, p RecordPayload) (*model.Record, error) {
	var out model.Record
	if err := c.do(fiber.Put(c.url("/api/records/"+strconv.Itoa(id))).JSON(p), 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecord(id int) (*DeleteResult, error) {
	var out DeleteResult
	if err := c.do(fiber.Delete(c.url("/api/records/"+strconv.Itoa(id))), 0, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) get(path string, out any) error {
	return c.do(fiber.Get(c.url(path)), c.readTimeout, out)
}

// do sends the request and decodes a 2xx body into out.
// Transport failures (including timeouts) become ErrUnavailable.
func (c *Client) do(a *fiber.Agent, timeout time.Duration, out any) error {
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnavailable, errors.Join(errs...))
	}

	if code < 200 || code > 299 {
		return &APIError{Status: code, Message: errorMessage(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage prefers the server's message, then error, then a generic text.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return "Request failed"
}

// Describe turns a client error into the text shown to the user.
func Describe(err error, base string) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrUnavailable):
		return fmt.Sprintf("Could not load records. Make sure backend is running: %s (then retry).", base)
	default:
		return err.Error()
	}
}
