package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/auth"
	"github.com/alexanderramin/worklog/internal/cache"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/report"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/service"
	"go.uber.org/zap"
)

// LogbookHandler serves the logbook routes. Every route consults the
// authorizer before touching the services.
type LogbookHandler struct {
	entries service.EntryService
	stats   app.StatsUseCase
	reports app.ReportUseCase
	authz   auth.Authorizer
	cache   cache.ReportCache
	logger  *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

// HandlerOption customizes a LogbookHandler.
type HandlerOption func(*LogbookHandler)

// WithReportCache enables report caching.
func WithReportCache(c cache.ReportCache) HandlerOption {
	return func(h *LogbookHandler) { h.cache = c }
}

// WithLocation sets the zone that decides the default report day.
func WithLocation(loc *time.Location) HandlerOption {
	return func(h *LogbookHandler) { h.loc = loc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *LogbookHandler) { h.now = now }
}

func NewLogbookHandler(
	entries service.EntryService,
	stats app.StatsUseCase,
	reports app.ReportUseCase,
	authz auth.Authorizer,
	logger *zap.Logger,
	opts ...HandlerOption,
) *LogbookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &LogbookHandler{
		entries: entries,
		stats:   stats,
		reports: reports,
		authz:   authz,
		cache:   cache.NoopReportCache{},
		logger:  logger,
		loc:     time.UTC,
		now:     time.Now,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// authorize runs the gate for the first capability in caps the caller holds
// and writes the 401 itself when the caller holds none.
func (h *LogbookHandler) authorize(w http.ResponseWriter, r *http.Request, caps ...domain.Capability) (auth.Principal, bool) {
	token := auth.BearerToken(r.Header.Get("Authorization"))
	var err error
	for _, c := range caps {
		var p auth.Principal
		if p, err = h.authz.Authorize(r.Context(), token, c); err == nil {
			return p, true
		}
	}
	h.logger.Info("request denied", zap.String("path", r.URL.Path), zap.Any("capabilities", caps), zap.Error(err))
	writeJSON(w, http.StatusUnauthorized, Fail("unauthorized"))
	return auth.Principal{}, false
}

func (h *LogbookHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, Fail(publicMessage(status, err)))
}

// GetPDF serves the report for ?day=dd.MM.yyyy, defaulting to today.
func (h *LogbookHandler) GetPDF(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, domain.CapViewLogbook)
	if !ok {
		return
	}

	day := domain.CivilDate(h.now().In(h.loc))
	if q := r.URL.Query().Get("day"); q != "" {
		parsed, err := domain.ParseDisplayDate(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		day = parsed
	}

	ctx := r.Context()
	pdf, err := h.cache.Get(ctx, p.Owner, day)
	cacheStatus := "HIT"
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.Warn("report cache read failed", zap.Error(err))
		}
		cacheStatus = "MISS"
		pdf, err = h.reports.GeneratePDF(ctx, p.Owner, day)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := h.cache.Put(ctx, p.Owner, day, pdf); err != nil {
			h.logger.Warn("report cache write failed", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="logbook-%s.pdf"`, day.Format(domain.DateLayout)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("X-Report-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *LogbookHandler) GetWorkHourStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, domain.CapViewStats)
	if !ok {
		return
	}
	now := h.now()
	out, err := h.stats.GetWorkHourStats(r.Context(), app.StatsRequest{Owner: p.Owner, Now: &now})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

func (h *LogbookHandler) GetDistanceStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, domain.CapViewStats)
	if !ok {
		return
	}
	now := h.now()
	out, err := h.stats.GetDistanceStats(r.Context(), app.StatsRequest{Owner: p.Owner, Now: &now})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

// DeleteEntry removes one of the caller's entries, or any owner's entry for
// callers holding CapManageAnyLogbook. Unknown ids succeed.
func (h *LogbookHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	p, ok := h.authorize(w, r, domain.CapManageLogbook, domain.CapManageAnyLogbook)
	if !ok {
		return
	}
	id := r.PathValue("id")
	ctx := r.Context()

	e, err := h.entries.GetByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		e = nil
	case err != nil:
		h.writeError(w, r, err)
		return
	case e.CreatedBy != p.Owner && !p.Can(domain.CapManageAnyLogbook):
		h.writeError(w, r, fmt.Errorf("entry %s belongs to another owner: %w", id, errForbidden))
		return
	}

	if err := h.entries.Delete(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	if e != nil {
		if err := h.cache.InvalidateOwner(ctx, e.CreatedBy); err != nil {
			h.logger.Warn("report cache invalidation failed", zap.String("owner", e.CreatedBy), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"deleted": id}))
}
