package handlers

import (
	"net/http"

	"github.com/dom/league-skinset-finder/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResolveHandler struct {
	resolveService *service.ResolveService
	exportService  *service.ExportService
}

func NewResolveHandler(resolveService *service.ResolveService, exportService *service.ExportService) *ResolveHandler {
	return &ResolveHandler{
		resolveService: resolveService,
		exportService:  exportService,
	}
}

func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	spec, ok := decodeRoster(w, r)
	if !ok {
		return
	}

	resp, err := h.resolveService.Resolve(r.Context(), spec)
	if err != nil {
		writeError(w, "resolve.Resolve", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ResolveHandler) Export(w http.ResponseWriter, r *http.Request) {
	spec, ok := decodeRoster(w, r)
	if !ok {
		return
	}

	resp, err := h.resolveService.Resolve(r.Context(), spec)
	if err != nil {
		writeError(w, "resolve.Export", err)
		return
	}

	data, err := h.exportService.Workbook(resp)
	if err != nil {
		writeError(w, "resolve.Export", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="skinsets.xlsx"`)
	w.Write(data)
}
