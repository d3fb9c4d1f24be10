package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/cache"
	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
	"github.com/iwvelando/finance-calculators/pkg/sharestate"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures the handler returned by NewHandler. Zero values fall
// back to defaults; a nil Cache disables result caching and a nil Metrics
// disables instrumentation.
type Options struct {
	MaxRequestSize int64
	Version        string
	ShareBaseURL   string
	Cache          cache.Cache
	CacheTTL       time.Duration
	Metrics        *metrics.Metrics
	MetricsPath    string
	MetricsHandler http.Handler
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	shareBaseURL   string
	cache          cache.Cache
	cacheTTL       time.Duration
	metrics        *metrics.Metrics
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if opts.CacheTTL <= 0 {
		opts.CacheTTL = constants.DefaultCacheTTLSeconds * time.Second
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: opts.MaxRequestSize,
		version:        trimmedVersion,
		shareBaseURL:   strings.TrimSpace(opts.ShareBaseURL),
		cache:          opts.Cache,
		cacheTTL:       opts.CacheTTL,
		metrics:        opts.Metrics,
	}

	mux := http.NewServeMux()

	// Compound interest calculation from a share token or a JSON body
	mux.HandleFunc("/api/compound-interest", h.handleCompoundInterest)

	// Share link generation
	mux.HandleFunc("/api/share", h.handleShare)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.HandleFunc("/healthz", h.handleHealth)

	if opts.MetricsHandler != nil {
		metricsPath := opts.MetricsPath
		if metricsPath == "" {
			metricsPath = constants.DefaultMetricsPath
		}
		mux.Handle(metricsPath, opts.MetricsHandler)
	}

	return h.withAccessLog(mux)
}

// inputsPayload mirrors compound.Inputs with optional fields so that missing
// keys can fall back to their defaults.
type inputsPayload struct {
	Principal          *float64 `json:"principal"`
	AnnualContribution *float64 `json:"annualContribution"`
	NumberOfYears      *float64 `json:"numberOfYears"`
	InterestRate       *float64 `json:"interestRate"`
	Schedule           *bool    `json:"schedule"`
	BaseURL            string   `json:"baseUrl"`
}

type shareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url,omitempty"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func (h *handler) handleCompoundInterest(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleCompoundInterestQuery(w, r)
	case http.MethodPost:
		h.handleCompoundInterestBody(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleCompoundInterestQuery(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompoundInterestQuery"

	includeSchedule := queryBool(r.URL.Query().Get("schedule"))
	in, issues := sharestate.DecodeDetailed(r.URL.RawQuery)

	var warnings []string
	for _, issue := range issues {
		if h.metrics != nil {
			h.metrics.FieldFallbacks.WithLabelValues(issue.Field, fallbackReason(issue)).Inc()
		}
		if sharestate.IsMissing(issue) {
			continue
		}
		h.logger.Warn("share token field replaced by default",
			zap.String("op", op),
			zap.String("field", issue.Field),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Reason),
		)
		warnings = append(warnings, issue.String())
	}

	report, err := h.report(r.Context(), in, includeSchedule, "query")
	if err != nil {
		h.respondErrorWithOp(w, reportErrorStatus(err), err.Error(), op)
		return
	}
	report.Warnings = warnings
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleCompoundInterestBody(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompoundInterestBody"

	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	in, err := payload.inputs()
	if err != nil {
		h.respondValidationError(w, err, op)
		return
	}

	report, err := h.report(r.Context(), in, payload.Schedule != nil && *payload.Schedule, "body")
	if err != nil {
		h.respondErrorWithOp(w, reportErrorStatus(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleShare"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	in, err := payload.inputs()
	if err != nil {
		h.respondValidationError(w, err, op)
		return
	}

	resp := shareResponse{Token: sharestate.Encode(in)}

	base := strings.TrimSpace(payload.BaseURL)
	if base == "" {
		base = h.shareBaseURL
	}
	if base != "" {
		shareURL, err := sharestate.ShareURL(base, in)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		resp.URL = shareURL
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) decodePayload(w http.ResponseWriter, r *http.Request, op string) (inputsPayload, bool) {
	var payload inputsPayload

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return payload, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload: %v", err), op)
		return payload, false
	}
	return payload, true
}

// inputs fills missing fields with defaults and validates the result.
func (p inputsPayload) inputs() (compound.Inputs, error) {
	in := compound.DefaultInputs()

	if p.Principal != nil {
		in.Principal = *p.Principal
	}
	if p.AnnualContribution != nil {
		in.AnnualContribution = *p.AnnualContribution
	}
	if p.InterestRate != nil {
		in.InterestRate = *p.InterestRate
	}

	err := multierr.Combine(
		validation.Dollars(constants.KeyPrincipal, in.Principal),
		validation.Dollars(constants.KeyAnnualContribution, in.AnnualContribution),
	)
	if p.NumberOfYears != nil {
		if yearsErr := validation.NumberOfYears(constants.KeyNumberOfYears, *p.NumberOfYears); yearsErr != nil {
			err = multierr.Append(err, yearsErr)
		} else {
			in.NumberOfYears = int(*p.NumberOfYears)
		}
	}
	err = multierr.Append(err, validation.Percent(constants.KeyInterestRate, in.InterestRate))
	if err != nil {
		return in, err
	}
	return in, validation.ValidateInputs(in)
}

// report computes the response body for in, consulting the result cache first.
func (h *handler) report(ctx context.Context, in compound.Inputs, includeSchedule bool, source string) (calculator.Report, error) {
	const op = "server.report"

	if h.metrics != nil {
		h.metrics.Calculations.WithLabelValues(source).Inc()
	}

	key := h.cacheKey(in, includeSchedule)
	if report, ok := h.cachedReport(ctx, key); ok {
		return report, nil
	}

	session := calculator.New(h.logger, calculator.WithInputs(in), calculator.WithBaseURL(h.shareBaseURL))
	report, err := session.Report(includeSchedule)
	if err != nil {
		return calculator.Report{}, fmt.Errorf("failed to build report: %w", err)
	}

	if h.cache != nil {
		encoded, err := json.Marshal(report)
		if err != nil {
			h.logger.Warn("failed to encode report for cache", zap.String("op", op), zap.Error(err))
			return report, nil
		}
		if err := h.cache.Set(ctx, key, string(encoded), h.cacheTTL); err != nil {
			h.logger.Warn("failed to store report in cache",
				zap.String("op", op),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	return report, nil
}

func (h *handler) cacheKey(in compound.Inputs, includeSchedule bool) string {
	return sharestate.Encode(in) + "#schedule=" + strconv.FormatBool(includeSchedule)
}

func (h *handler) cachedReport(ctx context.Context, key string) (calculator.Report, bool) {
	const op = "server.cachedReport"

	var report calculator.Report
	if h.cache == nil {
		return report, false
	}

	value, found, err := h.cache.Get(ctx, key)
	switch {
	case err != nil:
		h.observeCache("error")
		h.logger.Warn("cache lookup failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
		return report, false
	case !found:
		h.observeCache("miss")
		return report, false
	}

	if err := json.Unmarshal([]byte(value), &report); err != nil {
		h.observeCache("error")
		h.logger.Warn("discarding unreadable cache entry",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
		return calculator.Report{}, false
	}
	h.observeCache("hit")
	return report, true
}

func (h *handler) observeCache(outcome string) {
	if h.metrics != nil {
		h.metrics.CacheLookups.WithLabelValues(outcome).Inc()
	}
}

func (h *handler) respondValidationError(w http.ResponseWriter, err error, op string) {
	h.logger.Info("rejected calculator inputs",
		zap.String("op", op),
		zap.Error(err),
	)
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  err.Error(),
		Fields: validation.Fields(err),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func reportErrorStatus(err error) int {
	if errors.Is(err, calculator.ErrResultOverflow) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func fallbackReason(issue sharestate.FieldIssue) string {
	if sharestate.IsMissing(issue) {
		return "missing"
	}
	return "invalid"
}

// queryBool reads a boolean query parameter; anything unparsable is false.
func queryBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}
