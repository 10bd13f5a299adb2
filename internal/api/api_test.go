package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectfour/internal/api"
	"github.com/mcoot/connectfour/internal/api/apierr"
	"github.com/mcoot/connectfour/internal/api/request"
	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/dependencies/ids"
	"github.com/mcoot/connectfour/internal/factory"
	"github.com/mcoot/connectfour/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		IDs:            ids.New(),
		GameController: app.GameController,
		Streams:        app.APIStreams,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader = bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = strings.NewReader(b)
	default:
		encoded, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createGame(t *testing.T, req request.CreateGameRequest) response.Game {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/games", req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	return g
}

func (ts *testServer) move(t *testing.T, id string, column int) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(http.MethodPost, "/api/v1/games/"+id+"/moves", request.MoveRequest{Column: column})
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCreateGameDefaults(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIDs.Queue("game-1")

	g := ts.createGame(t, request.CreateGameRequest{})

	assert.Equal(t, "game-1", g.ID)
	assert.Equal(t, 7, g.Width)
	assert.Equal(t, 6, g.Height)
	require.Len(t, g.Players, 2)
	assert.Equal(t, "Black", g.Players[0].Name)
	assert.Equal(t, "Red", g.Players[1].Name)
	assert.Equal(t, "Black", g.CurrentPlayer.Name)
	assert.Equal(t, string(model.GameStateInProgress), g.Status.State)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, g.OpenColumns)
	require.Len(t, g.Rows, 6)
	for _, row := range g.Rows {
		assert.Equal(t, []int{-1, -1, -1, -1, -1, -1, -1}, row)
	}
}

func TestCreateGameWithPlayers(t *testing.T) {
	ts := newTestServer(t)

	g := ts.createGame(t, request.CreateGameRequest{
		Players: []request.Player{
			{Name: "Alice", Color: "yellow"},
			{Name: "", Color: "custom", Hex: "#123456"},
			{Name: "Carol"},
		},
		Width:  9,
		Height: 7,
	})

	assert.Equal(t, 9, g.Width)
	assert.Equal(t, 7, g.Height)
	require.Len(t, g.Players, 3)
	assert.Equal(t, response.Player{Index: 0, Name: "Alice", Color: "yellow", Hex: "#FFD700"}, g.Players[0])
	assert.Equal(t, response.Player{Index: 1, Name: "Player 2", Color: "custom", Hex: "#123456"}, g.Players[1])
	assert.Equal(t, "Carol", g.Players[2].Name)
	assert.Equal(t, model.Palette[2].Label, g.Players[2].Color)
}

func TestCreateGameErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{name: "malformed body", body: "{", status: http.StatusBadRequest, code: apierr.CodeInvalidRequest},
		{name: "empty player list", body: `{"players":[]}`, status: http.StatusBadRequest, code: apierr.CodeNoPlayers},
		{name: "negative width", body: request.CreateGameRequest{Width: -1}, status: http.StatusBadRequest, code: apierr.CodeInvalidDimensions},
		{name: "negative height", body: request.CreateGameRequest{Height: -3}, status: http.StatusBadRequest, code: apierr.CodeInvalidDimensions},
		{name: "malformed hex", body: `{"players":[{"name":"Eve","hex":"red;background-image:url(//evil.example/x)"}]}`, status: http.StatusBadRequest, code: apierr.CodeInvalidRequest},
		{name: "width above maximum", body: request.CreateGameRequest{Width: 65}, status: http.StatusBadRequest, code: apierr.CodeInvalidDimensions},
		{name: "area overflows", body: `{"width":4294967296,"height":4294967296}`, status: http.StatusBadRequest, code: apierr.CodeInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)

			sessions, err := ts.app.GameController.ListGames(t.Context())
			require.NoError(t, err)
			assert.Empty(t, sessions)
		})
	}
}

func TestListAndGetGames(t *testing.T) {
	ts := newTestServer(t)

	first := ts.createGame(t, request.CreateGameRequest{})
	ts.app.MockClock.Advance(time.Minute)
	second := ts.createGame(t, request.CreateGameRequest{Width: 4, Height: 4})

	rr := ts.request(http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.GameList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Games, 2)
	assert.Equal(t, first.ID, list.Games[0].ID)
	assert.Equal(t, second.ID, list.Games[1].ID)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+second.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 4, got.Height)

	rr = ts.request(http.MethodGet, "/api/v1/games/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)
}

func TestMovePlacesPiece(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{})

	rr := ts.move(t, g.ID, 1)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.PlacedIndex)
	assert.Equal(t, 1, resp.Column)
	assert.Equal(t, 5, resp.Row)
	assert.Equal(t, string(model.GameStateInProgress), resp.Status.State)
	assert.Equal(t, 1, resp.Game.MoveCount)
	assert.Equal(t, "Red", resp.Game.CurrentPlayer.Name)
	assert.Equal(t, 0, resp.Game.Rows[5][0])
	assert.Equal(t, -1, resp.Game.Rows[4][0])

	// Stacks on top of the first piece
	rr = ts.move(t, g.ID, 1)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.PlacedIndex)
	assert.Equal(t, 1, resp.Game.Rows[4][0])
}

func TestConcurrentMovesReportTheirOwnState(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{Width: 30, Height: 30})

	var (
		mu     sync.Mutex
		bodies [][]byte
		wg     sync.WaitGroup
	)
	for worker := 0; worker < 6; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				column := (worker*5+i)%30 + 1
				rr := ts.request(http.MethodPost, "/api/v1/games/"+g.ID+"/moves", request.MoveRequest{Column: column})
				if rr.Code != http.StatusOK {
					continue
				}
				mu.Lock()
				bodies = append(bodies, rr.Body.Bytes())
				mu.Unlock()
			}
		}(worker)
	}
	wg.Wait()
	require.NotEmpty(t, bodies)

	seen := make(map[int]bool)
	for _, body := range bodies {
		var resp response.MoveResponse
		require.NoError(t, json.Unmarshal(body, &resp))

		assert.Equal(t, resp.Game.Status, resp.Status)
		assert.NotEqual(t, -1, resp.Game.Rows[resp.Row][resp.Column-1], "response board holds its own piece")
		assert.False(t, seen[resp.Game.MoveCount], "move %d reported twice", resp.Game.MoveCount)
		seen[resp.Game.MoveCount] = true
	}
	for move := 1; move <= len(bodies); move++ {
		assert.True(t, seen[move], "missing move %d", move)
	}
}

func TestMoveErrors(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{Width: 4, Height: 2})

	rr := ts.move(t, g.ID, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidColumn, decodeError(t, rr).Code)

	rr = ts.move(t, g.ID, 5)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidColumn, decodeError(t, rr).Code)

	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 2).Code)
	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 2).Code)
	rr = ts.move(t, g.ID, 2)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeColumnFull, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+g.ID+"/moves", "not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)

	rr = ts.move(t, "missing", 1)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWinningGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{})

	for _, c := range []int{1, 2, 1, 2, 1, 2} {
		require.Equal(t, http.StatusOK, ts.move(t, g.ID, c).Code)
	}

	rr := ts.move(t, g.ID, 1)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, string(model.GameStateWon), resp.Status.State)
	assert.Equal(t, string(model.AxisVertical), resp.Status.Axis)
	require.NotNil(t, resp.Status.Winner)
	assert.Equal(t, "Black", resp.Status.Winner.Name)
	assert.ElementsMatch(t, []int{2, 3, 4, 5}, resp.Game.WinningCells)
	assert.Empty(t, resp.Game.OpenColumns)

	rr = ts.move(t, g.ID, 3)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameFinished, decodeError(t, rr).Code)
}

func TestDrawnGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{Width: 2, Height: 1})

	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 1).Code)
	rr := ts.move(t, g.ID, 2)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, string(model.GameStateDraw), resp.Status.State)
	assert.Nil(t, resp.Status.Winner)
}

func TestGetCell(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{})
	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 1).Code)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+g.ID+"/cells/5", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var cell response.CellResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cell))
	assert.Equal(t, 5, cell.Index)
	require.NotNil(t, cell.Piece)
	assert.Equal(t, "Black", cell.Piece.Player.Name)
	assert.Equal(t, 0, cell.Piece.Player.Index)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+g.ID+"/cells/4", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"index":4,"piece":null}`, rr.Body.String())

	for _, idx := range []string{"42", "-1", "abc"} {
		rr = ts.request(http.MethodGet, "/api/v1/games/"+g.ID+"/cells/"+idx, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "index %s", idx)
		assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
	}
}

func TestRematch(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockIDs.Queue("game-1", "game-2")

	g := ts.createGame(t, request.CreateGameRequest{Width: 5, Height: 5})
	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 3).Code)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+g.ID+"/rematch", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/games/game-2", rr.Header().Get("Location"))

	var next response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &next))
	assert.Equal(t, "game-2", next.ID)
	assert.Equal(t, 5, next.Width)
	assert.Equal(t, 0, next.MoveCount)
	assert.Equal(t, g.Players, next.Players)

	rr = ts.request(http.MethodGet, "/api/v1/games/game-1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{})

	rr := ts.request(http.MethodDelete, "/api/v1/games/"+g.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+g.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWatchGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame(t, request.CreateGameRequest{})

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/games/" + g.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg response.StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, response.StreamSnapshot, msg.Type)
	assert.Equal(t, g.ID, msg.GameID)
	require.NotNil(t, msg.Game)
	assert.Equal(t, 0, msg.Game.MoveCount)

	require.Equal(t, http.StatusOK, ts.move(t, g.ID, 4).Code)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, string(model.EventTurnChanged), msg.Type)
	require.NotNil(t, msg.PlacedIndex)
	assert.Equal(t, 3*6+5, *msg.PlacedIndex)
	assert.Equal(t, 1, msg.Move)
	require.NotNil(t, msg.CurrentPlayer)
	assert.Equal(t, "Red", msg.CurrentPlayer.Name)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+g.ID+"/rematch", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/v1/games/game-2", rr.Header().Get("Location"))
	var next response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &next))

	msg = response.StreamMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, string(model.EventRematch), msg.Type)
	assert.Equal(t, next.ID, msg.NextGameID)
	assert.Nil(t, msg.Game)
}

func TestWatchUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/games/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
