package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/request"
	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/response"
	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/service"
	"github.com/tourneyhq/pokernights-api/internal/tournament"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type LiveService interface {
	StartSession(ctx context.Context, eventID uint) (domain.LiveState, error)
	GetState(eventID uint) (domain.LiveState, error)
	AddParticipant(ctx context.Context, eventID, playerID uint) (domain.LiveState, error)
	AddGuest(ctx context.Context, eventID uint, name string) (domain.LiveState, error)
	RemoveParticipant(eventID, playerID uint) (domain.LiveState, error)
	ChangeRebuys(eventID, playerID uint, delta int) (domain.LiveState, error)
	Eliminate(eventID, playerID uint) (domain.LiveState, error)
	UndoLastElimination(eventID uint) (domain.LiveState, error)
	Snapshot(eventID uint) (tournament.Snapshot, error)
	RestoreSession(ctx context.Context, eventID uint, snap tournament.Snapshot) (domain.LiveState, error)
	Finalize(ctx context.Context, eventID uint) (domain.Event, error)
}

type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// LiveHandler exposes the live-session operations and pushes every state
// change to the websocket watchers of that event.
type LiveHandler struct {
	svc LiveService

	watchersMutex sync.RWMutex
	watchers      map[uint]map[*watcher]struct{}
}

func NewLiveHandler(svc LiveService) *LiveHandler {
	return &LiveHandler{
		svc:      svc,
		watchers: make(map[uint]map[*watcher]struct{}),
	}
}

// HandleStartSession godoc
// @Summary      Start a live session
// @Description  Opens an in-memory session for the event, seeding the roster from its participant list. Idempotent for a running session.
// @Tags         live
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/live/start [post]
// @Security BearerAuth
func (h *LiveHandler) HandleStartSession(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	state, err := h.svc.StartSession(ctx.Request.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventNotStartable):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventNotStartable))
		default:
			err = fmt.Errorf("v1.HandleStartSession -> h.svc.StartSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.broadcast(state)
	ctx.JSON(http.StatusOK, state)
}

// HandleGetLiveState godoc
// @Summary      Get the live state
// @Tags         live
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live [get]
// @Security BearerAuth
func (h *LiveHandler) HandleGetLiveState(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	state, err := h.svc.GetState(eventID)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleAddParticipant godoc
// @Summary      Seat a participant
// @Description  Seats an existing player by ID, or registers and seats a new guest by name.
// @Tags         live
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                                 true  "Event ID"
// @Param        request  body      request.AddLiveParticipantRequest  true  "request body"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/live/participants [post]
// @Security BearerAuth
func (h *LiveHandler) HandleAddParticipant(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.AddLiveParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var (
		state domain.LiveState
		err   error
	)
	if req.GuestName != "" {
		state, err = h.svc.AddGuest(ctx.Request.Context(), eventID, req.GuestName)
	} else {
		state, err = h.svc.AddParticipant(ctx.Request.Context(), eventID, req.PlayerID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLiveSession):
			response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		case errors.Is(err, service.ErrPlayerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", req.PlayerID))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFull))
		default:
			err = fmt.Errorf("v1.HandleAddParticipant -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.broadcast(state)
	ctx.JSON(http.StatusOK, state)
}

// HandleRemoveParticipant godoc
// @Summary      Unseat a participant
// @Description  Removes a still-active participant from the roster. Eliminated players keep their position.
// @Tags         live
// @Produce      json
// @Param        eventID   path      int  true  "Event ID"
// @Param        playerID  path      int  true  "Player ID"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/participants/{playerID} [delete]
// @Security BearerAuth
func (h *LiveHandler) HandleRemoveParticipant(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	h.renderSessionOp(ctx, eventID, func() (domain.LiveState, error) {
		return h.svc.RemoveParticipant(eventID, playerID)
	})
}

// HandleChangeRebuys godoc
// @Summary      Adjust a participant's rebuys
// @Description  Applies a signed delta to the participant's rebuy count, clamped at zero.
// @Tags         live
// @Accept       json
// @Produce      json
// @Param        eventID   path      int                         true  "Event ID"
// @Param        playerID  path      int                         true  "Player ID"
// @Param        request   body      request.ChangeRebuysRequest true  "request body"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/participants/{playerID}/rebuys [post]
// @Security BearerAuth
func (h *LiveHandler) HandleChangeRebuys(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	var req request.ChangeRebuysRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.renderSessionOp(ctx, eventID, func() (domain.LiveState, error) {
		return h.svc.ChangeRebuys(eventID, playerID, req.Delta)
	})
}

// HandleEliminate godoc
// @Summary      Eliminate a participant
// @Description  Marks the participant out. Their finishing position is the number of players still active at the moment of elimination.
// @Tags         live
// @Produce      json
// @Param        eventID   path      int  true  "Event ID"
// @Param        playerID  path      int  true  "Player ID"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/participants/{playerID}/eliminate [post]
// @Security BearerAuth
func (h *LiveHandler) HandleEliminate(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	h.renderSessionOp(ctx, eventID, func() (domain.LiveState, error) {
		return h.svc.Eliminate(eventID, playerID)
	})
}

// HandleUndoElimination godoc
// @Summary      Undo the most recent elimination
// @Tags         live
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/undo [post]
// @Security BearerAuth
func (h *LiveHandler) HandleUndoElimination(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	h.renderSessionOp(ctx, eventID, func() (domain.LiveState, error) {
		return h.svc.UndoLastElimination(eventID)
	})
}

// HandleSnapshot godoc
// @Summary      Snapshot the live session
// @Description  Returns a portable snapshot clients can hold for crash recovery.
// @Tags         live
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  tournament.Snapshot
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/snapshot [get]
// @Security BearerAuth
func (h *LiveHandler) HandleSnapshot(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(eventID)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		return
	}

	ctx.JSON(http.StatusOK, snap)
}

// HandleRestoreSession godoc
// @Summary      Restore a live session from a snapshot
// @Tags         live
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                            true  "Event ID"
// @Param        request  body      request.RestoreSessionRequest  true  "request body"
// @Success      200  {object}  domain.LiveState
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/live/restore [post]
// @Security BearerAuth
func (h *LiveHandler) HandleRestoreSession(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.RestoreSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	state, err := h.svc.RestoreSession(ctx.Request.Context(), eventID, req.Snapshot)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventNotStartable):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventNotStartable))
		default:
			err = fmt.Errorf("v1.HandleRestoreSession -> h.svc.RestoreSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.broadcast(state)
	ctx.JSON(http.StatusOK, state)
}

// HandleFinalize godoc
// @Summary      Finalize the tournament
// @Description  Converts the finished roster into persisted results and marks the event completed.
// @Tags         live
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/live/finalize [post]
// @Security BearerAuth
func (h *LiveHandler) HandleFinalize(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	event, err := h.svc.Finalize(ctx.Request.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLiveSession):
			response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		case errors.Is(err, service.ErrTournamentNotFinished):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTournamentNotFinished))
		default:
			err = fmt.Errorf("v1.HandleFinalize -> h.svc.Finalize -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.closeWatchers(eventID)
	ctx.JSON(http.StatusOK, event)
}

// HandleWatch godoc
// @Summary      Watch a live session over WebSocket
// @Description  Streams the live state as JSON after every roster change. The feed is read-only.
// @Tags         live
// @Produce      json
// @Param        eventID  path  int  true  "Event ID"
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID}/live/watch [get]
func (h *LiveHandler) HandleWatch(ctx *gin.Context) {
	eventID, ok := parseUintParam(ctx, "eventID")
	if !ok {
		return
	}

	state, err := h.svc.GetState(eventID)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	w := &watcher{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.watchersMutex.Lock()
	if h.watchers[eventID] == nil {
		h.watchers[eventID] = make(map[*watcher]struct{})
	}
	h.watchers[eventID][w] = struct{}{}
	h.watchersMutex.Unlock()

	if payload, err := json.Marshal(state); err == nil {
		w.send <- payload
	}

	go w.writePump()
	go w.readPump(h, eventID)
}

func (h *LiveHandler) renderSessionOp(ctx *gin.Context, eventID uint, op func() (domain.LiveState, error)) {
	state, err := op()
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("live session", "event ID", eventID))
		return
	}

	h.broadcast(state)
	ctx.JSON(http.StatusOK, state)
}

// broadcast pushes the state to every watcher of its event. Watchers with a
// full send buffer are dropped rather than blocking the mutation path.
func (h *LiveHandler) broadcast(state domain.LiveState) {
	payload, err := json.Marshal(state)
	if err != nil {
		zap.L().Error("marshal live state", zap.Error(err))
		return
	}

	h.watchersMutex.Lock()
	defer h.watchersMutex.Unlock()

	for w := range h.watchers[state.EventID] {
		select {
		case w.send <- payload:
		default:
			close(w.send)
			delete(h.watchers[state.EventID], w)
		}
	}
}

func (h *LiveHandler) closeWatchers(eventID uint) {
	h.watchersMutex.Lock()
	defer h.watchersMutex.Unlock()

	for w := range h.watchers[eventID] {
		close(w.send)
	}
	delete(h.watchers, eventID)
}

func (h *LiveHandler) removeWatcher(eventID uint, w *watcher) {
	h.watchersMutex.Lock()
	defer h.watchersMutex.Unlock()

	if _, ok := h.watchers[eventID][w]; ok {
		delete(h.watchers[eventID], w)
		close(w.send)
	}
}

func (w *watcher) writePump() {
	defer w.conn.Close()

	for message := range w.send {
		writer, err := w.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		writer.Write(message)
		if err := writer.Close(); err != nil {
			return
		}
	}

	w.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only exists to notice the client going away; inbound frames are
// discarded.
func (w *watcher) readPump(h *LiveHandler, eventID uint) {
	defer func() {
		h.removeWatcher(eventID, w)
		w.conn.Close()
	}()

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("watcher closed", zap.Error(err))
			}
			break
		}
	}
}
