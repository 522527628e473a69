package model

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/twiess/tactician-backend/internal/engine"
	"github.com/twiess/tactician-backend/internal/search"
	"github.com/twiess/tactician-backend/internal/ws"
)

// GameConnections holds the sockets subscribed to a single game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game owns one position and its observers. All board access goes through the
// game mutex: the engine's apply/revert protocol is not safe under concurrent
// callers, so every entry point here is serialized.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	history     []ClientMove
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	players     Players
}

// Players are the two seats of a game. Unclaimed seats have an empty ID.
type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// PiecePlacement is one piece of the client board view.
type PiecePlacement struct {
	Piece  string    `json:"piece"`
	Color  string    `json:"color"`
	Square SquareRef `json:"square"`
}

// CastleRightsView mirrors the board's castle rights for clients.
type CastleRightsView struct {
	KingSide  bool `json:"kingSide"`
	QueenSide bool `json:"queenSide"`
}

// GameState is the full client view of a game.
type GameState struct {
	Placements   []PiecePlacement `json:"placements"`
	ToMove       string           `json:"toMove"`
	EnPassant    *SquareRef       `json:"enPassantTarget"`
	CastleRights struct {
		White CastleRightsView `json:"white"`
		Black CastleRightsView `json:"black"`
	} `json:"castleRights"`
	IsCheck    bool         `json:"isCheck"`
	IsGameOver bool         `json:"isGameOver"`
	Evaluation float64      `json:"evaluation"`
	History    []ClientMove `json:"moveHistory"`
	LastMove   *ClientMove  `json:"lastMove"`
	Players    Players      `json:"players"`
}

const initialClockTime = 600 * time.Second

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       engine.NewPopulatedBoard(),
		history:     make([]ClientMove, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
}

// AddPlayer seats a player, white first.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: "white", TimeLeft: clockMillis(g.whiteClock)}
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: "black", TimeLeft: clockMillis(g.blackClock)}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.buildState()
}

// buildState renders the board under the game lock.
func (g *Game) buildState() GameState {
	state := GameState{
		Placements: make([]PiecePlacement, 0, len(g.board.Pieces())),
		ToMove:     g.board.Side.String(),
		IsCheck:    engine.IsCheck(g.board, g.board.Side),
		IsGameOver: g.board.IsGameOver(),
		Evaluation: search.StaticEvaluation(g.board),
		History:    append([]ClientMove(nil), g.history...),
		Players:    g.players,
	}

	for _, p := range g.board.Pieces() {
		state.Placements = append(state.Placements, PiecePlacement{
			Piece:  p.Piece.Kind.String(),
			Color:  p.Piece.Color.String(),
			Square: squareRef(p.Square),
		})
	}
	if g.board.EnPassant != engine.NoSquare {
		ref := squareRef(g.board.EnPassant)
		state.EnPassant = &ref
	}
	state.CastleRights.White = CastleRightsView(g.board.Rights.White)
	state.CastleRights.Black = CastleRightsView(g.board.Rights.Black)
	if len(g.history) > 0 {
		last := g.history[len(g.history)-1]
		state.LastMove = &last
	}

	state.Players.White.TimeLeft = clockMillis(g.whiteClock)
	state.Players.Black.TimeLeft = clockMillis(g.blackClock)

	return state
}

func clockMillis(c *Clock) int {
	return int(c.GetTimeLeft().Milliseconds())
}

// LegalMoves lists the fully legal moves for the side to move: pseudo-legal
// generation filtered by simulating each move and rejecting those that leave
// the mover's own king in check.
func (g *Game) LegalMoves() []ClientMove {
	g.mu.Lock()
	defer g.mu.Unlock()

	legal := g.legalMoves()
	out := make([]ClientMove, len(legal))
	for i, m := range legal {
		out[i] = clientMove(m)
	}
	return out
}

func (g *Game) legalMoves() []engine.Move {
	var legal []engine.Move
	for _, m := range engine.GenerateMoves(g.board) {
		mover := g.board.Side
		g.board.ApplyMove(m)
		if !engine.IsCheck(g.board, mover) {
			legal = append(legal, m)
		}
		g.board.RevertMove(m)
	}
	return legal
}

// MakeMove validates and plays a client move.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, ok := g.board.PieceAt(req.From.square())
	if !ok {
		return ErrNoPieceAtSquare
	}
	if piece.Color != g.board.Side {
		return ErrNotYourTurn
	}
	if seat := g.seatColor(playerID); seat != "" && seat != g.board.Side.String() {
		return ErrNotYourTurn
	}

	promotion, ok := parseKind(req.Promotion)
	if !ok {
		return ErrBadPromotion
	}

	move, ok := g.findLegalMove(req.From.square(), req.To.square(), promotion)
	if !ok {
		return ErrIllegalMove
	}

	g.playMove(move)
	return nil
}

// findLegalMove matches a from/to/promotion triple against the legal moves.
func (g *Game) findLegalMove(from, to engine.Square, promotion engine.PieceKind) (engine.Move, bool) {
	for _, m := range g.legalMoves() {
		if m.From == from && m.To == to && m.Promotion == promotion {
			return m, true
		}
	}
	return engine.Move{}, false
}

// EngineMove runs a fixed-depth search and plays the chosen move.
func (g *Game) EngineMove(req EngineRequest) (EngineMoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	depth := req.Depth
	if depth <= 0 {
		depth = 3
	}

	var evaluator search.Evaluator
	switch req.Evaluator {
	case "", "alphabeta":
		evaluator = search.NewAlphaBeta(depth)
	case "minimax":
		evaluator = search.NewMinimax(depth)
	default:
		return EngineMoveResult{}, ErrUnknownEvaluator
	}

	move, ok := search.BestMove(g.board, evaluator)
	if !ok {
		return EngineMoveResult{}, ErrGameOver
	}

	g.playMove(move)

	stats := evaluator.Statistics()
	return EngineMoveResult{
		Move:       clientMove(move),
		Evaluation: search.StaticEvaluation(g.board),
		Nodes:      stats.Nodes,
		DurationMs: stats.Duration.Milliseconds(),
		Line:       evaluator.BestLine().String(),
	}, nil
}

// playMove applies a validated move, swaps the clocks and notifies observers.
// Caller holds the game lock.
func (g *Game) playMove(move engine.Move) {
	if g.board.Side == engine.White {
		g.whiteClock.Stop()
	} else {
		g.blackClock.Stop()
	}

	g.board.ApplyMove(move)
	g.history = append(g.history, clientMove(move))

	if g.board.Side == engine.White {
		g.whiteClock.Start()
	} else {
		g.blackClock.Start()
	}

	go g.broadcastState()
}

func (g *Game) seatColor(playerID string) string {
	if playerID != "" && g.players.White.ID == playerID {
		return "white"
	}
	if playerID != "" && g.players.Black.ID == playerID {
		return "black"
	}
	return ""
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seatColor(playerID) != ""
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// RegisterConnection subscribes a socket to state broadcasts. A player's
// duplicate connection is rejected in favor of the existing one.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	authorized := g.seatColor(playerID) != "" || g.canSpectate()
	g.mu.Unlock()

	if !authorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
