package handlers

import (
	"net/http"
	"time"

	"postdesk/internal/calendar"
)

// Calendar shows the weekly planning grid with saved posts slotted in.
func (h *Admin) Calendar(w http.ResponseWriter, r *http.Request) {
	posts, err := h.refreshPosts(r.Context())
	if err != nil {
		h.flash(r, "error", "Could not reach the backend; showing last known data.")
	}

	h.renderer.Page(w, r, "calendar", h.pageData(r, "Calendar", "calendar", map[string]any{
		"Days":       calendar.WeekDays(time.Now()),
		"DayNumbers": []int{1, 2, 3, 4, 5},
		"Entries":    calendar.Schedule(posts),
	}))
}
