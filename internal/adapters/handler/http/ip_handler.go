package http

import "net/http"

type IPHandler struct{}

func NewIPHandler() *IPHandler {
	return &IPHandler{}
}

type ipResponse struct {
	IP string `json:"ip"`
}

// GetIP godoc
// @Summary      Returns the caller's apparent public IP
// @Description  Best-effort resolution from proxy headers; degrades to "unknown" rather than erroring
// @Tags         ip
// @Produce      json
// @Success      200
// @Router       /get-ip [get]
func (h *IPHandler) GetIP(w http.ResponseWriter, r *http.Request) {
	// Advisory for the client; the submission pipeline re-resolves the
	// IP itself and never trusts what the client sends back.
	writeJSON(w, http.StatusOK, ipResponse{IP: ResolveClientIP(r)})
}
