// Package server owns the process-wide registry: the TCP listener, the
// set of connected-but-unpaired clients, and the set of active games.
// There is no ambient state; everything hangs off the Server value.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/netline"
	"github.com/mcoot/wargame-go/internal/services/game"
	"github.com/mcoot/wargame-go/internal/services/matchmaking"
)

// ErrNotStarted is returned for operations requiring a bound listener.
var ErrNotStarted = errors.New("server not started")

// Config holds the TCP listener settings. Port 0 binds an ephemeral
// port, which tests query through Port().
type Config struct {
	Host string
	Port int
}

// activeGame pairs a running game with the channel its input pumps use
// to signal readiness changes to the round driver.
type activeGame struct {
	game    *model.Game
	readyCh chan struct{}
}

// Server accepts TCP connections, feeds them through matchmaking, and
// tracks active games until completion.
type Server struct {
	cfg    Config
	games  *game.Controller
	pool   *matchmaking.Pool
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	active   map[model.GameID]*activeGame
	conns    map[netline.Conn]struct{}
	stopped  bool

	// pending holds accepted connections not yet named by
	// AcceptNewClient, oldest first.
	pending chan *netline.TCPConn
}

// New creates a server wired to the given controllers.
func New(cfg Config, games *game.Controller, pool *matchmaking.Pool, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		games:   games,
		pool:    pool,
		logger:  logger,
		active:  make(map[model.GameID]*activeGame),
		conns:   make(map[netline.Conn]struct{}),
		pending: make(chan *netline.TCPConn, 64),
	}
}

// Start binds the listener and begins accepting connections. Accepted
// sockets queue up until AcceptNewClient claims them.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("bind listener: %w", err)
	}
	s.listener = listener

	s.logger.Info("server listening", slog.String("addr", listener.Addr().String()))

	go s.acceptLoop(listener)
	return nil
}

func (s *Server) acceptLoop(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			// Listener closed during Stop
			return
		}

		lineConn := netline.NewTCPConn(conn)

		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			_ = lineConn.Close()
			return
		}
		s.conns[lineConn] = struct{}{}
		s.mu.Unlock()

		s.logger.Debug("connection accepted", slog.String("remote", lineConn.RemoteAddr()))

		s.pending <- lineConn
	}
}

// Port returns the bound port number.
func (s *Server) Port() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return 0, ErrNotStarted
	}
	return s.listener.Addr().(*net.TCPAddr).Port, nil
}

// AcceptNewClient claims the oldest accepted connection, names it, and
// enqueues it for matchmaking. It blocks until a connection is pending.
func (s *Server) AcceptNewClient(name string) {
	conn := <-s.pending
	s.pool.AcceptNewClient(name, conn)
}

// CreateGameIfPossible pairs the two oldest waiting clients, registers
// the game as active, and starts the per-player input pumps. Returns nil
// when fewer than two clients are waiting.
func (s *Server) CreateGameIfPossible(ctx context.Context) (*model.Game, error) {
	g, err := s.pool.CreateGameIfPossible(ctx)
	if err != nil || g == nil {
		return nil, err
	}

	ag := &activeGame{
		game:    g,
		readyCh: make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.active[g.ID] = ag
	s.mu.Unlock()

	for _, p := range g.Players {
		go s.pumpInput(ctx, ag, p.Name, p.Conn)
	}

	return g, nil
}

// pumpInput owns one player's socket reads for the lifetime of the game.
// Lines feed the readiness handshake; a dropped connection forfeits.
func (s *Server) pumpInput(ctx context.Context, ag *activeGame, playerName string, conn netline.Conn) {
	for {
		line, err := conn.ReadLine()
		if err != nil {
			if !ag.game.Completed() {
				s.logger.Info("player disconnected",
					slog.String("game_id", string(ag.game.ID)),
					slog.String("player", playerName),
				)
				_ = s.games.Forfeit(ctx, ag.game, playerName)
				s.removeIfComplete(ag.game)
				s.signalReady(ag)
			}
			return
		}

		if s.games.HandleInput(ag.game, playerName, line) {
			s.signalReady(ag)
		}
		if ag.game.Completed() {
			return
		}
	}
}

func (s *Server) signalReady(ag *activeGame) {
	select {
	case ag.readyCh <- struct{}{}:
	default:
	}
}

// Run drives the server end to end: every new connection is enqueued,
// pairing is polled, and each formed game gets its own driver goroutine.
// It returns when ctx is cancelled or Stop closes the listener.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	clientSeq := 0
	for {
		var conn *netline.TCPConn
		select {
		case <-ctx.Done():
			return ctx.Err()
		case conn = <-s.pending:
		}

		clientSeq++
		s.pool.AcceptNewClient(fmt.Sprintf("Client %d", clientSeq), conn)

		g, err := s.CreateGameIfPossible(ctx)
		if err != nil {
			s.logger.Error("pairing failed", slog.String("error", err.Error()))
			continue
		}
		if g != nil {
			go s.driveGame(ctx, g)
		}
	}
}

// driveGame loops the ready handshake and round resolution for one game
// until it completes. Round execution for a game happens only here, so
// concurrent rounds on the same game cannot interleave.
func (s *Server) driveGame(ctx context.Context, g *model.Game) {
	s.mu.Lock()
	ag, ok := s.active[g.ID]
	s.mu.Unlock()
	if !ok {
		return
	}

	for !g.Completed() {
		if err := s.games.ReadyPlayers(ctx, g); err != nil {
			break
		}

		for !s.games.ReadyToPlay(g) {
			select {
			case <-ctx.Done():
				return
			case <-ag.readyCh:
			}
			if g.Completed() {
				s.removeIfComplete(g)
				return
			}
		}

		if err := s.games.RunRound(ctx, g); err != nil {
			s.logger.Error("round failed",
				slog.String("game_id", string(g.ID)),
				slog.String("error", err.Error()),
			)
			break
		}
	}

	s.removeIfComplete(g)
}

// ReadyPlayersForGame prompts both players of a game for readiness.
func (s *Server) ReadyPlayersForGame(ctx context.Context, g *model.Game) error {
	return s.games.ReadyPlayers(ctx, g)
}

// ReadyToPlay reports whether both players have sent the ready token.
func (s *Server) ReadyToPlay(g *model.Game) bool {
	return s.games.ReadyToPlay(g)
}

// RunRound resolves one round and retires the game if it completed.
func (s *Server) RunRound(ctx context.Context, g *model.Game) error {
	err := s.games.RunRound(ctx, g)
	s.removeIfComplete(g)
	return err
}

// EndGame terminates a game early and removes it from the active set.
func (s *Server) EndGame(ctx context.Context, g *model.Game) error {
	err := s.games.EndGame(ctx, g)
	s.removeIfComplete(g)
	return err
}

// CardsInHands tells each player of the game their own hand size.
func (s *Server) CardsInHands(g *model.Game) error {
	return s.games.CardsInHands(g)
}

// SetPlayerHand forces a player's hand for deterministic rounds.
func (s *Server) SetPlayerHand(g *model.Game, cards []model.Card, playerName string) error {
	return s.games.SetPlayerHand(g, cards, playerName)
}

// NumberOfGames counts games not yet completed.
func (s *Server) NumberOfGames() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, ag := range s.active {
		if !ag.game.Completed() {
			n++
		}
	}
	return n
}

// WaitingClients returns the matchmaking queue length.
func (s *Server) WaitingClients() int {
	return s.pool.Waiting()
}

// removeIfComplete retires a completed game: it leaves the active set
// and the server hangs up both player sockets, which also unblocks any
// input pump still waiting on a read. Safe to call more than once.
func (s *Server) removeIfComplete(g *model.Game) {
	if !g.Completed() {
		return
	}
	s.mu.Lock()
	delete(s.active, g.ID)
	for _, p := range g.Players {
		delete(s.conns, p.Conn)
	}
	s.mu.Unlock()

	for _, p := range g.Players {
		_ = p.Conn.Close()
	}
}

// Stop shuts the server down synchronously: the listener and every
// client socket are closed and no further accepts occur. In-flight
// games are abandoned.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	listener := s.listener
	conns := s.conns
	s.conns = nil
	s.active = make(map[model.GameID]*activeGame)
	s.mu.Unlock()

	if listener != nil {
		_ = listener.Close()
	}
	for conn := range conns {
		_ = conn.Close()
	}
	s.pool.CloseAll()

	s.logger.Info("server stopped")
}
