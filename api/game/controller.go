package gameapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/beka-birhanu/minesweeper-api/api/identity"
	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	customDifficulty      = "custom"
	defaultLeaderboardTop = 10
	maxLeaderboardTop     = 100
)

// GameController serves game and leaderboard routes.
type GameController struct {
	games i.GameService
}

// NewGameController initializes a GameController.
func NewGameController(gs i.GameService) (*GameController, error) {
	if gs == nil {
		return nil, errors.New("game controller: game service is required")
	}
	return &GameController{games: gs}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:difficulty", gc.leaderboard)
}

// RegisterProtected registers protected routes.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", gc.create)
		games.GET("", gc.list)
		games.GET("/:ID", gc.get)
		games.POST("/:ID/reveal", gc.reveal)
		games.POST("/:ID/flag", gc.flag)
		games.POST("/:ID/question", gc.question)
		games.POST("/:ID/pause", gc.pause)
		games.POST("/:ID/resume", gc.resume)
	}
}

func (gc *GameController) create(ctx *gin.Context) {
	playerID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateGameRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := request.difficulty()
	if err != nil {
		writeError(ctx, err)
		return
	}

	g, err := gc.games.Create(ctx.Request.Context(), playerID, d)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newGameResponse(g))
}

func (gc *GameController) list(ctx *gin.Context) {
	playerID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var limit int64
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	games, err := gc.games.List(ctx.Request.Context(), playerID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	res := make([]GameSummaryResponse, 0, len(games))
	for _, g := range games {
		res = append(res, newGameSummary(g))
	}
	ctx.JSON(http.StatusOK, res)
}

func (gc *GameController) get(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}

	g, err := gc.games.Get(ctx.Request.Context(), gameID, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGameResponse(g))
}

func (gc *GameController) reveal(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}
	pos, ok := bindPosition(ctx)
	if !ok {
		return
	}

	g, revealed, err := gc.games.Reveal(ctx.Request.Context(), gameID, playerID, pos)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if revealed == nil {
		revealed = []game.Position{}
	}
	ctx.JSON(http.StatusOK, newRevealResponse(g, revealed))
}

func (gc *GameController) flag(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}
	pos, ok := bindPosition(ctx)
	if !ok {
		return
	}

	g, err := gc.games.ToggleFlag(ctx.Request.Context(), gameID, playerID, pos)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGameResponse(g))
}

func (gc *GameController) question(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}
	pos, ok := bindPosition(ctx)
	if !ok {
		return
	}

	g, err := gc.games.ToggleQuestion(ctx.Request.Context(), gameID, playerID, pos)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGameResponse(g))
}

func (gc *GameController) pause(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}

	g, err := gc.games.Pause(ctx.Request.Context(), gameID, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGameResponse(g))
}

func (gc *GameController) resume(ctx *gin.Context) {
	gameID, playerID, ok := gameParams(ctx)
	if !ok {
		return
	}

	g, err := gc.games.Resume(ctx.Request.Context(), gameID, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGameResponse(g))
}

func (gc *GameController) leaderboard(ctx *gin.Context) {
	n := int64(defaultLeaderboardTop)
	if raw := ctx.Query("top"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 || v > maxLeaderboardTop {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "top must be between 1 and 100"})
			return
		}
		n = v
	}

	entries, err := gc.games.Leaderboard(ctx.Request.Context(), ctx.Param("difficulty"), n)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newLeaderboardResponse(entries))
}

func (r CreateGameRequest) difficulty() (game.Difficulty, error) {
	name := strings.TrimSpace(r.Difficulty)
	if name == "" || strings.EqualFold(name, customDifficulty) {
		return game.NewCustomDifficulty(customDifficulty, r.Rows, r.Cols, r.Mines)
	}
	d, ok := game.DifficultyByName(name)
	if !ok {
		return game.Difficulty{}, service.ErrUnknownDifficulty
	}
	return d, nil
}

// gameParams reads the game id and the authenticated player. On failure the
// response is already written.
func gameParams(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	gameID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return uuid.Nil, uuid.Nil, false
	}
	return gameID, playerID, true
}

func bindPosition(ctx *gin.Context) (game.Position, bool) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return game.Position{}, false
	}

	pos, err := game.NewPosition(*request.Row, *request.Col)
	if err != nil {
		writeError(ctx, err)
		return game.Position{}, false
	}
	return pos, true
}

func writeError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	var gameErr *game.Error
	switch {
	case errors.Is(err, game.ErrCorruptState):
		return http.StatusInternalServerError
	case errors.Is(err, game.ErrInvalidGameState):
		return http.StatusConflict
	case errors.Is(err, i.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotGameOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.As(err, &gameErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
