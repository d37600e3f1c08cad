package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/kiosk"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// KioskHandler exposes the attendance kiosk session over HTTP. Every
// operation answers with the resulting session snapshot.
type KioskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	PressDigit(w http.ResponseWriter, r *http.Request)
	Backspace(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	RotatePIN(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Dismiss(w http.ResponseWriter, r *http.Request)
	Exit(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	kioskService kiosk.KioskService
}

func NewKioskHandler(kioskService kiosk.KioskService) KioskHandler {
	return &kioskHandlerImpl{kioskService: kioskService}
}

func (h *kioskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.CreateSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Kiosk session opened", "session_id", snap.SessionID)
	response.Created(w, "Kiosk session created", snap)
}

func (h *kioskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.GetSession(r.Context(), chi.URLParam(r, "id"))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) PressDigit(w http.ResponseWriter, r *http.Request) {
	var req kiosk.PressDigitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	snap, err := h.kioskService.PressDigit(r.Context(), chi.URLParam(r, "id"), rune(req.Digit[0]))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Backspace(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.Backspace(r.Context(), chi.URLParam(r, "id"))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.Clear(r.Context(), chi.URLParam(r, "id"))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) RotatePIN(w http.ResponseWriter, r *http.Request) {
	var req kiosk.RotatePINRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	snap, err := h.kioskService.RotatePIN(r.Context(), chi.URLParam(r, "id"), req.PIN)
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req kiosk.MarkRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	snap, err := h.kioskService.Mark(r.Context(), chi.URLParam(r, "id"), attendance.Type(req.Type))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Dismiss(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.Dismiss(r.Context(), chi.URLParam(r, "id"))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Exit(w http.ResponseWriter, r *http.Request) {
	snap, err := h.kioskService.Exit(r.Context(), chi.URLParam(r, "id"))
	h.reply(w, snap, err)
}

func (h *kioskHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.kioskService.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// Stream pushes a "state" event for every snapshot change until the session
// ends or the client disconnects.
func (h *kioskHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	snapshots, cleanup, err := h.kioskService.Watch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	stream, ok := startSSE(w)
	if !ok {
		return
	}

	keepalive := time.NewTicker(sseKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				stream.send("closed", map[string]string{"status": "closed"})
				return
			}
			if err := stream.send("state", snap); err != nil {
				return
			}

		case <-keepalive.C:
			stream.ping()

		case <-r.Context().Done():
			return
		}
	}
}

func (h *kioskHandlerImpl) reply(w http.ResponseWriter, snap kiosk.Snapshot, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snap)
}
