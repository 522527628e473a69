package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/twiess/tactician-backend/internal/middleware"
	"github.com/twiess/tactician-backend/internal/service"
)

func newTestApp() *fiber.App {
	app := fiber.New()

	gameService := service.NewGameService(service.NewGameManager())
	gameController := NewGameController(gameService)

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/engine-move", gameController.EngineMove)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, playerID string, body any) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, target, err)
	}
	return resp.StatusCode, fields
}

func stringField(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var value string
	if err := json.Unmarshal(fields[key], &value); err != nil {
		t.Fatalf("field %q: %v", key, err)
	}
	return value
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, fields := doRequest(t, app, http.MethodPost, "/api/game/create", "alice", nil)
	if status != http.StatusOK {
		t.Fatalf("create game status = %d", status)
	}
	return stringField(t, fields, "game_id")
}

func TestMissingPlayerID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without player ID = %d, want 401", resp.StatusCode)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp()

	status, _ := doRequest(t, app, http.MethodGet, "/api/game/nope", "alice", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status for unknown game = %d, want 404", status)
	}
}

func TestGameLifecycle(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app)

	status, fields := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", nil)
	if status != http.StatusOK || stringField(t, fields, "color") != "white" {
		t.Fatalf("join = %d %s, want 200 white", status, fields["color"])
	}

	status, fields = doRequest(t, app, http.MethodGet, "/api/game/"+gameID, "alice", nil)
	if status != http.StatusOK || stringField(t, fields, "toMove") != "white" {
		t.Fatalf("state = %d %s, want 200 white to move", status, fields["toMove"])
	}

	status, fields = doRequest(t, app, http.MethodGet, "/api/game/"+gameID+"/moves", "alice", nil)
	if status != http.StatusOK {
		t.Fatalf("moves status = %d", status)
	}
	var moves []json.RawMessage
	if err := json.Unmarshal(fields["moves"], &moves); err != nil {
		t.Fatalf("decode moves: %v", err)
	}
	if len(moves) != 20 {
		t.Fatalf("initial legal moves = %d, want 20", len(moves))
	}

	move := map[string]any{
		"from": map[string]int{"file": 4, "rank": 1},
		"to":   map[string]int{"file": 4, "rank": 3},
	}
	status, fields = doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", move)
	if status != http.StatusOK || stringField(t, fields, "toMove") != "black" {
		t.Fatalf("move = %d %s, want 200 black to move", status, fields["toMove"])
	}

	status, _ = doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", move)
	if status != http.StatusBadRequest {
		t.Fatalf("replayed move status = %d, want 400", status)
	}
}

func TestSeatProtection(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app)

	doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "alice", nil)
	doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "bob", nil)

	status, _ := doRequest(t, app, http.MethodPost, "/api/game/join/"+gameID, "carol", nil)
	if status != http.StatusForbidden {
		t.Fatalf("join full game status = %d, want 403", status)
	}

	move := map[string]any{
		"from": map[string]int{"file": 4, "rank": 1},
		"to":   map[string]int{"file": 4, "rank": 3},
	}
	status, _ = doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "bob", move)
	if status != http.StatusForbidden {
		t.Fatalf("out of turn move status = %d, want 403", status)
	}
}

func TestEngineMoveEndpoint(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app)

	status, fields := doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/engine-move", "alice",
		map[string]any{"depth": 2})
	if status != http.StatusOK {
		t.Fatalf("engine move status = %d", status)
	}

	var nodes uint64
	if err := json.Unmarshal(fields["nodes"], &nodes); err != nil {
		t.Fatalf("decode nodes: %v", err)
	}
	if nodes == 0 {
		t.Fatal("engine move reports zero nodes")
	}

	status, _ = doRequest(t, app, http.MethodPost, "/api/game/"+gameID+"/engine-move", "alice",
		map[string]any{"depth": 1, "evaluator": "mcts"})
	if status != http.StatusBadRequest {
		t.Fatalf("unknown evaluator status = %d, want 400", status)
	}
}
