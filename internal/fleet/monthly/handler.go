package monthly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ rep *Reporter }

func RegisterRoutes(r gin.IRoutes, rep *Reporter) {
	h := &Handler{rep: rep}
	r.POST("/reports/test", h.SendTestEmail)
}

// POST /reports/test — fire a test email at the configured recipient.
func (h *Handler) SendTestEmail(c *gin.Context) {
	ok := h.rep.SendTest(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"sent": ok})
}
