package api

import (
	"context"
	"net/http"

	"github.com/okian/rrdash/internal/domain/view"
)

// ViewDependencies defines the interface for rendering the dashboard.
type ViewDependencies interface {
	Render(ctx context.Context, sel view.Selection) (view.Display, error)
}

// ViewHandler handles dashboard view requests.
type ViewHandler struct {
	deps ViewDependencies
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps ViewDependencies) *ViewHandler {
	return &ViewHandler{deps: deps}
}

// HandleGetView handles GET /api/view?mode=&date=&company=&insight= requests.
// Unknown or missing selection values fall back to defaults; an empty
// result is reported in the display notice, not as an error.
func (h *ViewHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	d, err := h.deps.Render(r.Context(), view.ParseSelection(r.URL.Query()))
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ChoicesDependencies defines the interface for listing selectable values.
type ChoicesDependencies interface {
	Choices(ctx context.Context) (view.Choices, error)
}

// ChoicesHandler handles choices requests.
type ChoicesHandler struct {
	deps ChoicesDependencies
}

// NewChoicesHandler creates a new choices handler.
func NewChoicesHandler(deps ChoicesDependencies) *ChoicesHandler {
	return &ChoicesHandler{deps: deps}
}

// HandleGetChoices handles GET /api/choices requests.
func (h *ChoicesHandler) HandleGetChoices(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_choices"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.deps.Choices(r.Context())
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}
