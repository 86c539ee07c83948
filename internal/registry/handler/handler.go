package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"socialregistry/internal/platform/metrics"
	"socialregistry/internal/platform/middleware"
	"socialregistry/internal/registry/models"
	dErrors "socialregistry/pkg/domain-errors"
	"socialregistry/pkg/platform/httputil"
)

// BasePath is where the group routes are mounted.
const BasePath = "/registry/group"

const defaultRequestTimeout = 30 * time.Second

// Service defines the registry operations exposed over HTTP.
type Service interface {
	RegisterGroup(ctx context.Context, info models.GroupInfo) (*models.GroupView, error)
	GetGroup(ctx context.Context, id models.RegistrantID) (*models.GroupView, error)
	SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.GroupSummary, error)
}

// Handler serves the group endpoints.
type Handler struct {
	logger         *slog.Logger
	registry       Service
	metrics        *metrics.Metrics
	jwtValidator   middleware.JWTValidator
	requestTimeout time.Duration
	validator      *requestValidator
}

type Option func(*Handler)

// WithRequestTimeout bounds every request context.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.requestTimeout = d
		}
	}
}

// New creates a new group Handler.
func New(
	registry Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	opts ...Option) *Handler {
	h := &Handler{
		logger:         logger,
		registry:       registry,
		metrics:        metrics,
		jwtValidator:   jwtValidator,
		requestTimeout: defaultRequestTimeout,
		validator:      newRequestValidator(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the group routes under BasePath.
func (h *Handler) Register(r chi.Router) {
	groupRouter := chi.NewRouter()
	groupRouter.Use(middleware.Recovery(h.logger))
	groupRouter.Use(middleware.RequestID)
	groupRouter.Use(middleware.Logger(h.logger))
	groupRouter.Use(middleware.Timeout(h.requestTimeout))
	groupRouter.Use(middleware.ContentTypeJSON)
	groupRouter.Use(middleware.LatencyMiddleware(h.metrics))
	groupRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	groupRouter.Get("/", h.handleSearch)
	groupRouter.Get("/search", h.handleSearch)
	groupRouter.Get("/{id}", h.handleGet)
	groupRouter.Post("/", h.handleCreate)

	r.Mount(BasePath, groupRouter)
}

// handleGet returns one group. Unknown ids and individual ids render a
// null body with status 200.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, err := parseRegistrantID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid group id",
			"request_id", requestID,
			"id", chi.URLParam(r, "id"),
		)
		httputil.WriteError(w, err)
		return
	}

	group, err := h.registry.GetGroup(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			httputil.WriteJSON(w, http.StatusOK, nil)
			return
		}
		h.writeServiceError(ctx, w, "failed to get group", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	filter := models.GroupSearch{Name: r.URL.Query().Get("name")}
	// id=0 means no id filter.
	if raw := strings.TrimSpace(r.URL.Query().Get("id")); raw != "" && raw != "0" {
		id, err := parseRegistrantID(raw)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid search id",
				"request_id", requestID,
				"id", raw,
			)
			httputil.WriteError(w, err)
			return
		}
		filter.ID = id
	}

	groups, err := h.registry.SearchGroups(ctx, filter)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to search groups", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var info models.GroupInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.logger.WarnContext(ctx, "invalid group registration request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.validator.validate(&info); err != nil {
		h.logger.WarnContext(ctx, "group registration failed validation",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	group, err := h.registry.RegisterGroup(ctx, info)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register group", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

// writeServiceError logs at error level only for failures the caller cannot fix.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := middleware.GetRequestID(ctx)
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeTimeout:
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	default:
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func parseRegistrantID(raw string) (models.RegistrantID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer")
	}
	return models.RegistrantID(id), nil
}
