// Package jira records test case outcomes and reports them to the Jira
// test-case-execution service.
package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
)

const (
	// DefaultURL is the test-case-execution endpoint.
	DefaultURL = "http://qacore02.hi.inet/jira/test-case-execution"

	// DefaultTimeout bounds one report request.
	DefaultTimeout = 30 * time.Second
)

// Options are the optional parameters of a report. Empty values are left
// out of the request.
type Options struct {
	Labels        string
	Comments      string
	FixVersion    string
	Build         string
	OnlyIfChanged bool
}

// Reporter sends test statuses to the execution service.
type Reporter struct {
	BaseURL string
	Client  *http.Client
	Config  *config.Config

	timeout time.Duration
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithBaseURL overrides the endpoint.
func WithBaseURL(u string) Option {
	return func(r *Reporter) { r.BaseURL = u }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Reporter) { r.timeout = d }
}

// WithHTTPClient replaces the HTTP client. A nil client selects the default
// one; c itself is never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reporter) { r.Client = c }
}

// NewReporter creates a reporter reading its settings from the Jira section
// of cfg. url and timeout in that section override the defaults; opts
// override both.
func NewReporter(cfg *config.Config, opts ...Option) *Reporter {
	if cfg == nil {
		cfg = config.New()
	}
	timeout := DefaultTimeout
	if d, ok := cfg.GetDurationOptional(config.SectionJira, "timeout"); ok {
		timeout = d
	}
	r := &Reporter{
		BaseURL: cfg.Get(config.SectionJira, "url", DefaultURL),
		Client:  &http.Client{Timeout: timeout},
		Config:  cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Client == nil {
		r.Client = &http.Client{Timeout: timeout}
	}
	if r.timeout > 0 {
		c := *r.Client
		c.Timeout = r.timeout
		r.Client = &c
	}
	return r
}

// BuildURL returns the request URL for one report.
func BuildURL(base, testID string, status core.TestStatus, opts Options) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?jiraTestCaseId=")
	b.WriteString(escape(testID))
	b.WriteString("&jiraStatus=")
	b.WriteString(escape(status.String()))

	optional := []struct{ key, value string }{
		{"labels", opts.Labels},
		{"comments", opts.Comments},
		{"version", opts.FixVersion},
		{"build", opts.Build},
	}
	for _, p := range optional {
		if p.value == "" {
			continue
		}
		b.WriteString("&" + p.key + "=")
		b.WriteString(escape(p.value))
	}
	if opts.OnlyIfChanged {
		b.WriteString("&onlyIfStatusChanges=true")
	}
	return b.String()
}

// escape percent-encodes v, spaces as %20.
func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// ReportWithConfig reports the status using the labels, comments,
// fixversion, build and onlyifchanges keys of the Jira section. Nothing is
// sent unless the section has enabled set.
func (r *Reporter) ReportWithConfig(ctx context.Context, testID string, status core.TestStatus) {
	cfg := r.Config
	if !cfg.GetBoolOptional(config.SectionJira, "enabled") {
		logger.Debug("Jira reporting disabled, skipping Test Case '%s'", testID)
		return
	}

	opts := Options{OnlyIfChanged: cfg.GetBoolOptional(config.SectionJira, "onlyifchanges")}
	opts.Labels, _ = cfg.GetOptional(config.SectionJira, "labels")
	opts.Comments, _ = cfg.GetOptional(config.SectionJira, "comments")
	opts.FixVersion, _ = cfg.GetOptional(config.SectionJira, "fixversion")
	opts.Build, _ = cfg.GetOptional(config.SectionJira, "build")
	r.Report(ctx, testID, status, opts)
}

// Report sends one status. Failures are logged as warnings and never
// returned, so reporting cannot fail a test run.
func (r *Reporter) Report(ctx context.Context, testID string, status core.TestStatus, opts Options) {
	logger.Info("Updating Test Case '%s' in Jira with status %s", testID, status)
	logger.Debug("Jira options for '%s': %s", testID, opts)

	reqURL := BuildURL(r.BaseURL, testID, status, opts)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.Warn("Error updating Test Case '%s': %v", testID, err)
		return
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("Error updating Test Case '%s': %v", testID, transportReason(err))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Error updating Test Case '%s': reading response: %v", testID, err)
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(string(body))
		if message == "" {
			logger.Debug("Error updating Test Case '%s': [%d] no message in response", testID, resp.StatusCode)
			return
		}
		logger.Warn("Error updating Test Case '%s': [%d] %s", testID, resp.StatusCode, message)
		return
	}
	logger.Debug("%s", strings.TrimSpace(string(body)))
}

// transportReason strips the method and URL that net/http adds around the
// underlying network error.
func transportReason(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// extractErrorMessage finds the human readable message in an error page:
// the underlined text closing a paragraph that is followed by another
// paragraph, or else the page title.
func extractErrorMessage(body string) string {
	doc, err := htmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}
	for _, expr := range []string{
		"//p[u and following-sibling::*[1][self::p]]/u[last()]",
		"//title",
	} {
		if node := htmlquery.FindOne(doc, expr); node != nil {
			if text := strings.TrimSpace(htmlquery.InnerText(node)); text != "" {
				return text
			}
		}
	}
	return ""
}

// String formats the options for logs.
func (o Options) String() string {
	return fmt.Sprintf("labels=%q comments=%q version=%q build=%q onlyIfChanged=%t",
		o.Labels, o.Comments, o.FixVersion, o.Build, o.OnlyIfChanged)
}
