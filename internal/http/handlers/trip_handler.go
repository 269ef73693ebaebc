// README: Trip plan handler (quota-guarded synthesis).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripsmith/internal/http/middleware"
	"tripsmith/internal/service"
	"tripsmith/internal/types"
)

// TripSynthesizer is implemented by *service.TripPlanner.
type TripSynthesizer interface {
	SynthesizeTrip(ctx context.Context, req types.TripRequest) (*service.TripPlan, error)
}

// QuotaUser is implemented by *quota.Service.
type QuotaUser interface {
	Use(ctx context.Context, uid string) error
	Remaining(ctx context.Context, uid string) (int, error)
}

type TripHandler struct {
	planner TripSynthesizer
	quota   QuotaUser
	timeout time.Duration
	log     *zap.Logger
}

// NewTripHandler wires the handler. quota may be nil; a zero timeout means no deadline.
func NewTripHandler(planner TripSynthesizer, quota QuotaUser, timeout time.Duration, log *zap.Logger) *TripHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripHandler{planner: planner, quota: quota, timeout: timeout, log: log}
}

// Plan handles POST /api/trips/plan.
func (h *TripHandler) Plan(c *gin.Context) {
	var req types.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	// Only authenticated callers are metered.
	if uid := middleware.CallerUID(c); uid != "" && h.quota != nil {
		if err := h.quota.Use(ctx, uid); err != nil {
			h.log.Info("plan refused",
				zap.String("uid", uid),
				zap.String("email", middleware.CallerEmail(c)),
				zap.Error(err),
			)
			writeServiceError(c, err)
			return
		}
	}

	plan, err := h.planner.SynthesizeTrip(ctx, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

// Quota handles GET /api/trips/quota for the authenticated caller.
func (h *TripHandler) Quota(c *gin.Context) {
	if h.quota == nil {
		writeError(c, http.StatusNotFound, "quota disabled")
		return
	}
	uid := middleware.CallerUID(c)
	if uid == "" {
		writeError(c, http.StatusUnauthorized, "sign in to see your allowance")
		return
	}
	remaining, err := h.quota.Remaining(c.Request.Context(), uid)
	if err != nil {
		h.log.Warn("quota lookup failed", zap.String("uid", uid), zap.Error(err))
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"uid": uid, "plansRemaining": remaining})
}
