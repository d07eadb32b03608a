package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/valyala/bytebufferpool"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.standingsService.ListStandings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, items))
}

// ExportStandings renders the whole workbook before writing any header so a
// failed export still gets a JSON error body.
func (h *Handler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.standingsService.ExportStandings(ctx, leagueID, buf); err != nil {
		h.logger.WarnContext(ctx, "export standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", leagueID+"-standings.xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
