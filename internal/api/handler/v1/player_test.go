package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/tourneyhq/pokernights-api/internal/api/handler/v1"
	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/service"
)

type stubPlayerService struct {
	players map[uint]domain.Player
	nextID  uint
}

func newStubPlayerService() *stubPlayerService {
	return &stubPlayerService{
		players: make(map[uint]domain.Player),
		nextID:  1,
	}
}

func (s *stubPlayerService) CreatePlayer(_ context.Context, player domain.Player) (domain.Player, error) {
	player.ID = s.nextID
	s.nextID++
	s.players[player.ID] = player

	return player, nil
}

func (s *stubPlayerService) GetPlayer(_ context.Context, id uint) (domain.Player, error) {
	player, ok := s.players[id]
	if !ok {
		return domain.Player{}, service.ErrPlayerNotFound
	}

	return player, nil
}

func (s *stubPlayerService) ListPlayers(_ context.Context) ([]domain.Player, error) {
	result := make([]domain.Player, 0, len(s.players))
	for _, player := range s.players {
		result = append(result, player)
	}

	return result, nil
}

func (s *stubPlayerService) UpdatePlayer(_ context.Context, player domain.Player) (domain.Player, error) {
	if _, ok := s.players[player.ID]; !ok {
		return domain.Player{}, service.ErrPlayerNotFound
	}
	s.players[player.ID] = player

	return player, nil
}

func (s *stubPlayerService) DeletePlayer(_ context.Context, id uint) error {
	if _, ok := s.players[id]; !ok {
		return service.ErrPlayerNotFound
	}
	delete(s.players, id)

	return nil
}

func setupPlayerRouter() (*gin.Engine, *stubPlayerService) {
	gin.SetMode(gin.TestMode)

	svc := newStubPlayerService()
	handler := v1.NewPlayerHandler(svc)

	router := gin.New()
	router.GET("/players", handler.HandleListPlayers)
	router.GET("/players/:playerID", handler.HandleGetPlayer)
	router.POST("/players", handler.HandleCreatePlayer)
	router.PUT("/players/:playerID", handler.HandleUpdatePlayer)
	router.DELETE("/players/:playerID", handler.HandleDeletePlayer)

	return router, svc
}

func TestPlayerHandler_HandleCreatePlayer(t *testing.T) {
	router, _ := setupPlayerRouter()

	body := `{"name":"Dana","nickname":"The Rock"}`
	req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"Dana"`)
}

func TestPlayerHandler_HandleCreatePlayer_MissingName(t *testing.T) {
	router, _ := setupPlayerRouter()

	req := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader(`{"nickname":"x"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPlayerHandler_HandleGetPlayer_NotFound(t *testing.T) {
	router, _ := setupPlayerRouter()

	req := httptest.NewRequest(http.MethodGet, "/players/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPlayerHandler_HandleGetPlayer_BadID(t *testing.T) {
	router, _ := setupPlayerRouter()

	req := httptest.NewRequest(http.MethodGet, "/players/abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPlayerHandler_HandleDeletePlayer(t *testing.T) {
	router, svc := setupPlayerRouter()

	created, err := svc.CreatePlayer(context.Background(), domain.Player{Name: "Eve"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/players/1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNoContent, resp.Code)

	_, err = svc.GetPlayer(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrPlayerNotFound)
}
