package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/mazebound/maze"
	"github.com/beka-birhanu/mazebound/service"
	"github.com/beka-birhanu/mazebound/service/i"
	"github.com/beka-birhanu/mazebound/sim"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionController exposes level sessions to external collaborators: the
// renderer polls state, the input collaborator submits moves validated by
// the same wall-legality test the agents use.
type SessionController struct {
	sessionManager i.SessionManager
}

// NewSessionController initializes a SessionController.
func NewSessionController(sm i.SessionManager) (*SessionController, error) {
	return &SessionController{sessionManager: sm}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("/", sc.create)
		sessions.GET("/:ID/state", sc.state)
		sessions.GET("/:ID/maze", sc.mazeGrid)
		sessions.POST("/:ID/move", sc.move)
		sessions.POST("/:ID/attack", sc.attack)
		sessions.POST("/:ID/pause", sc.pause)
		sessions.POST("/:ID/resume", sc.resume)
		sessions.DELETE("/:ID", sc.end)
	}
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {}

// create starts a new level session.
func (sc *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := sc.sessionManager.CreateSession(request.Level)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating session"})
		return
	}

	ctx.JSON(http.StatusCreated, &CreateSessionResponse{ID: id.String()})
}

// state returns a session snapshot.
func (sc *SessionController) state(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	snapshot, err := sc.sessionManager.State(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// mazeGrid returns the wall grid of a session's level.
func (sc *SessionController) mazeGrid(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	grid, err := sc.sessionManager.MazeGrid(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.JSON(http.StatusOK, &MazeResponse{Size: len(grid), Grid: grid})
}

// move applies one player step.
func (sc *SessionController) move(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch err := sc.sessionManager.Move(id, request.Direction); {
	case err == nil:
		ctx.Status(http.StatusAccepted)
	case errors.Is(err, maze.ErrInvalidMove):
		ctx.JSON(http.StatusConflict, gin.H{"error": "blocked by a wall"})
	case errors.Is(err, sim.ErrSessionPaused), errors.Is(err, sim.ErrSessionOver):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoSession):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while moving player"})
	}
}

// attack resolves a player attack.
func (sc *SessionController) attack(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	reward, hit, err := sc.sessionManager.Attack(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.JSON(http.StatusOK, &AttackResponse{Hit: hit, Reward: reward})
}

// pause suspends a session.
func (sc *SessionController) pause(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := sc.sessionManager.Pause(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.Status(http.StatusAccepted)
}

// resume lifts a session's pause.
func (sc *SessionController) resume(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := sc.sessionManager.Resume(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.Status(http.StatusAccepted)
}

// end tears a session down.
func (sc *SessionController) end(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := sc.sessionManager.End(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// sessionID parses the :ID route parameter, writing the error response on
// failure.
func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	idString := ctx.Params.ByName("ID")
	id, err := uuid.Parse(idString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return uuid.Nil, false
	}
	return id, true
}
