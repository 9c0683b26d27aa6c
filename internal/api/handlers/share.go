package handlers

import (
	"net/http"
	"strconv"

	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type ShareHandler struct {
	shareService   *service.ShareService
	resolveService *service.ResolveService
}

func NewShareHandler(shareService *service.ShareService, resolveService *service.ResolveService) *ShareHandler {
	return &ShareHandler{
		shareService:   shareService,
		resolveService: resolveService,
	}
}

func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	spec, ok := decodeRoster(w, r)
	if !ok {
		return
	}

	link, err := h.shareService.Create(spec)
	if err != nil {
		writeError(w, "share.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	spec, err := h.shareService.Parse(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, "share.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, spec)
}

func (h *ShareHandler) Results(w http.ResponseWriter, r *http.Request) {
	spec, err := h.shareService.Parse(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, "share.Results", err)
		return
	}

	resp, err := h.resolveService.Resolve(r.Context(), spec)
	if err != nil {
		writeError(w, "share.Results", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ShareHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			http.Error(w, "size must be between 64 and 1024", http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := h.shareService.QRCode(chi.URLParam(r, "token"), size)
	if err != nil {
		writeError(w, "share.QRCode", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
