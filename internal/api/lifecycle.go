package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunLifecycle triggers one engine pass on behalf of the external scheduler.
// Engine errors are surfaced as a failed-run response, never as a crash of
// the host process.
func (r *Router) RunLifecycle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), r.cfg.LifecycleRunTimeout)
	defer cancel()

	summary, err := r.lifecycleEngine.RunOnce(ctx)
	if err != nil {
		r.logger.Error("lifecycle_run_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "lifecycle engine failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"processed":   summary.Processed,
		"transitions": summary.Transitions,
	})
}
