package matchmaking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/netline"
	"github.com/mcoot/wargame-go/internal/services/game"
)

// Welcome messages sent on arrival. A client in an odd queue position has
// nobody to fight yet; an even position means an opponent is waiting.
const (
	MsgWaitingForOpponent = "Welcome, no other player is available to battle yet. We will continue to search. You are Player One."
	MsgOpponentAvailable  = "Welcome, a player is available for you to fight! You are Player Two."
)

// waiting is one queued client: the operator-assigned name and its line
// channel. The name is bookkeeping only; seats get the fixed
// "Player One"/"Player Two" identities at pairing time.
type waiting struct {
	name string
	conn netline.Conn
}

// Pool holds clients waiting for an opponent and pairs them FIFO, two at
// a time, into new games. A client is in the pool or in exactly one
// game's player set, never both.
type Pool struct {
	mu    sync.Mutex
	queue []waiting

	games  *game.Controller
	logger *slog.Logger
}

// NewPool creates a matchmaking pool backed by the game controller.
func NewPool(games *game.Controller, logger *slog.Logger) *Pool {
	return &Pool{
		games:  games,
		logger: logger,
	}
}

// AcceptNewClient appends a client to the waiting queue and sends its
// welcome line: "still searching" when it will be the next game's first
// seat, "a player is available" when an opponent already waits.
func (p *Pool) AcceptNewClient(name string, conn netline.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = append(p.queue, waiting{name: name, conn: conn})

	msg := MsgWaitingForOpponent
	if len(p.queue)%2 == 0 {
		msg = MsgOpponentAvailable
	}
	if err := conn.SendLine(msg); err != nil {
		p.logger.Warn("client unreachable at welcome", slog.String("client", name))
	}

	p.logger.Info("client queued",
		slog.String("client", name),
		slog.Int("waiting", len(p.queue)),
	)
}

// CreateGameIfPossible pairs the two oldest waiting clients into a new
// game and returns it, or returns nil when fewer than two clients wait.
// Pairing order is preserved: first popped is Player One. Callers poll
// this, typically once per new connection.
func (p *Pool) CreateGameIfPossible(ctx context.Context) (*model.Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) < 2 {
		return nil, nil
	}

	first, second := p.queue[0], p.queue[1]
	p.queue = p.queue[2:]

	g, err := p.games.CreateGame(ctx, first.conn, second.conn)
	if err != nil {
		return nil, err
	}

	p.logger.Info("clients paired",
		slog.String("game_id", string(g.ID)),
		slog.String("player_one", first.name),
		slog.String("player_two", second.name),
	)

	return g, nil
}

// Waiting returns the number of queued clients.
func (p *Pool) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// CloseAll drops and closes every queued client. Used during shutdown.
func (p *Pool) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, w := range p.queue {
		_ = w.conn.Close()
	}
	p.queue = nil
}
