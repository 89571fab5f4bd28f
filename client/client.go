package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/voxlate/voxlate/models"
)

// Defaults of the polling schedule. Intervals grow exponentially from
// DefaultInitialPollInterval up to DefaultMaxPollInterval; attempts are
// unlimited unless capped with [WithMaxPollAttempts].
const (
	DefaultBaseURL             = "http://localhost:5000"
	DefaultInitialPollInterval = time.Second
	DefaultMaxPollInterval     = 30 * time.Second
	DefaultRequestTimeout      = 15 * time.Second

	// jitterPercent randomises each wait by +/-10% so that many clients
	// polling the same job do not synchronise.
	jitterPercent = 10
)

// Client talks to a voxlate server. It is safe for concurrent use.
type Client struct {
	http *resty.Client

	initialPollInterval time.Duration
	maxPollInterval     time.Duration
	maxPollAttempts     uint64 // 0 means unlimited

	mu    sync.RWMutex
	token string
}

// Option customises a [Client].
type Option func(*Client)

// WithBaseURL points the client at a server other than localhost:5000.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
}

// WithRequestTimeout bounds each individual HTTP request. It does not limit
// the overall polling duration; use the context for that.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithInitialPollInterval sets the first wait between status polls.
func WithInitialPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.initialPollInterval = interval
	}
}

// WithMaxPollInterval caps the exponentially growing wait between polls.
func WithMaxPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.maxPollInterval = interval
	}
}

// WithMaxPollAttempts limits how many times the wait helpers poll before
// giving up with [ErrStillPending]. Zero means unlimited.
func WithMaxPollAttempts(attempts uint64) Option {
	return func(c *Client) {
		c.maxPollAttempts = attempts
	}
}

// WithToken seeds the bearer token used on the jobs API. Tokens can also be
// obtained at runtime via [Client.Authenticate].
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New builds a [Client] with the default polling schedule, pointed at
// http://localhost:5000.
func New(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(DefaultRequestTimeout),
		initialPollInterval: DefaultInitialPollInterval,
		maxPollInterval:     DefaultMaxPollInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client, or an empty
// string if none has been set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticate exchanges the pre-shared API key for a bearer token and
// stores it on the client.
func (c *Client) Authenticate(ctx context.Context, apiKey string) error {
	var tokenResp models.TokenResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{APIKey: apiKey}).
		SetResult(&tokenResp).
		Post("/api/auth/token")
	if err != nil {
		return fmt.Errorf("authenticate request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	c.SetToken(tokenResp.AccessToken)
	return nil
}

// CreateJob submits a new translation job and returns its server-side
// representation, including the generated job ID.
func (c *Client) CreateJob(ctx context.Context, req models.CreateJobRequest) (models.TranslationJob, error) {
	var job models.TranslationJob

	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&job).
		Post("/api/jobs")
	if err != nil {
		return models.TranslationJob{}, fmt.Errorf("create job request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.TranslationJob{}, err
	}

	return job, nil
}

// GetJob fetches the full representation of a job.
func (c *Client) GetJob(ctx context.Context, jobID string) (models.TranslationJob, error) {
	var job models.TranslationJob

	resp, err := c.authorized().
		SetContext(ctx).
		SetResult(&job).
		Get("/api/jobs/" + jobID)
	if err != nil {
		return models.TranslationJob{}, fmt.Errorf("get job request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.TranslationJob{}, err
	}

	return job, nil
}

// JobStatus fetches the current status of a specific job without polling.
func (c *Client) JobStatus(ctx context.Context, jobID string) (models.JobStatus, error) {
	return c.fetchStatus(ctx, c.authorized(), "/api/jobs/"+jobID+"/status")
}

// Status fetches the status of the server's startup job from the legacy
// GET /status endpoint without polling.
func (c *Client) Status(ctx context.Context) (models.JobStatus, error) {
	return c.fetchStatus(ctx, c.http.R(), "/status")
}

// WaitForCompletion polls the legacy GET /status endpoint until the job
// reaches a terminal state and returns that state. Waits between polls grow
// exponentially from the initial interval up to the configured cap.
//
// A status value the client does not know is reported as
// [ErrUnexpectedStatus]; request failures are returned to the caller rather
// than retried.
func (c *Client) WaitForCompletion(ctx context.Context) (models.JobStatus, error) {
	return c.pollUntilTerminal(ctx, c.Status)
}

// WaitForJob is [Client.WaitForCompletion] for a specific job on the
// jobs API.
func (c *Client) WaitForJob(ctx context.Context, jobID string) (models.JobStatus, error) {
	return c.pollUntilTerminal(ctx, func(ctx context.Context) (models.JobStatus, error) {
		return c.JobStatus(ctx, jobID)
	})
}

// Result is delivered to the callback of the async status helpers.
type Result struct {
	// Status is the terminal state the job reached. Empty when Err is set.
	Status models.JobStatus

	// Err is set when the status could not be determined.
	Err error
}

// CheckStatusAsync watches the legacy GET /status endpoint in the background
// and invokes callback exactly once, with the terminal status or the error
// that ended polling. The caller keeps working while the job runs.
func (c *Client) CheckStatusAsync(ctx context.Context, callback func(Result)) {
	go func() {
		status, err := c.WaitForCompletion(ctx)
		callback(Result{Status: status, Err: err})
	}()
}

// CheckJobStatusAsync is [Client.CheckStatusAsync] for a specific job.
func (c *Client) CheckJobStatusAsync(ctx context.Context, jobID string, callback func(Result)) {
	go func() {
		status, err := c.WaitForJob(ctx, jobID)
		callback(Result{Status: status, Err: err})
	}()
}

// pollUntilTerminal drives the retry schedule over fetch until it reports a
// terminal status. Pending statuses back off and retry; everything else ends
// polling immediately.
func (c *Client) pollUntilTerminal(ctx context.Context, fetch func(context.Context) (models.JobStatus, error)) (models.JobStatus, error) {
	backoff := retry.NewExponential(c.initialPollInterval)
	backoff = retry.WithCappedDuration(c.maxPollInterval, backoff)
	backoff = retry.WithJitterPercent(jitterPercent, backoff)
	if c.maxPollAttempts > 0 {
		backoff = retry.WithMaxRetries(c.maxPollAttempts, backoff)
	}

	var status models.JobStatus
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		s, err := fetch(ctx)
		if err != nil {
			return err
		}
		if s == models.JobStatusPending {
			return retry.RetryableError(ErrStillPending)
		}

		status = s
		return nil
	})
	if err != nil {
		return "", err
	}

	return status, nil
}

// fetchStatus performs a single GET against a status endpoint and validates
// the reported value.
func (c *Client) fetchStatus(ctx context.Context, req *resty.Request, path string) (models.JobStatus, error) {
	var statusResp models.StatusResponse

	resp, err := req.
		SetContext(ctx).
		SetResult(&statusResp).
		Get(path)
	if err != nil {
		return "", fmt.Errorf("status request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}

	if !statusResp.Result.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedStatus, statusResp.Result)
	}

	return statusResp.Result, nil
}

// authorized returns a request carrying the bearer token when one is set.
func (c *Client) authorized() *resty.Request {
	req := c.http.R()
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// mapHTTPError converts non-2xx responses into an [*APIError], decoding the
// JSON error envelope when the server sent one.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var envelope models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	}

	return apiErr
}
