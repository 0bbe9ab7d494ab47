package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/wargame-go/internal/dependencies/clock"
	"github.com/mcoot/wargame-go/internal/dependencies/random"
	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/netline"
	"github.com/mcoot/wargame-go/internal/storage"
)

const (
	// GameIDLength is the length of generated game identifiers
	GameIDLength = 12

	// ReadyToken is the literal affirmative a client sends to signal
	// readiness. Anything else leaves the flag unchanged.
	ReadyToken = "yes"
)

// Server-to-client messages (trailing newline added by the connection)
const (
	MsgReadyPrompt   = "The Game is starting... Are you ready?"
	MsgGameCompleted = "The game has been completed!"
)

// Controller drives the game state machine: the readiness handshake,
// round resolution including war tie-breaks, and completion.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGame forms a new game: a fresh deck is shuffled, split into two
// 26-card hands, and the game moves straight to awaiting readiness.
// Welcome messages are the matchmaking pool's concern, not the game's.
func (c *Controller) CreateGame(ctx context.Context, conn1, conn2 netline.Conn) (*model.Game, error) {
	now := c.clock.Now()

	deck := model.NewDeck()
	deck.Shuffle(c.random.Intn)
	hand1, hand2, err := deck.Split()
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:    model.GameID(c.random.ID(GameIDLength)),
		State: model.GameStateForming,
		Players: [2]*model.Player{
			{Name: model.PlayerOneName, Hand: hand1, Conn: conn1},
			{Name: model.PlayerTwoName, Hand: hand2, Conn: conn2},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	game.State = model.GameStateAwaitingReady

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("cards_per_hand", hand1.Size()),
	)

	return game, nil
}

// ReadyPlayers prompts both players for the readiness handshake.
func (c *Controller) ReadyPlayers(ctx context.Context, game *model.Game) error {
	game.Lock()
	defer game.Unlock()

	if game.IsComplete() {
		return model.ErrGameComplete
	}

	c.broadcast(game, MsgReadyPrompt)
	return nil
}

// HandleInput interprets one line of client input. Only the readiness
// token is meaningful; it sets that player's flag for the current round.
// Returns true when the line changed the player's readiness.
func (c *Controller) HandleInput(game *model.Game, playerName, line string) bool {
	game.Lock()
	defer game.Unlock()

	if game.IsComplete() {
		return false
	}

	player := game.PlayerByName(playerName)
	if player == nil || line != ReadyToken {
		return false
	}

	player.Ready = true
	return true
}

// ReadyToPlay is a non-blocking poll: true only while both players'
// readiness flags are set. It never consumes the flags.
func (c *Controller) ReadyToPlay(game *model.Game) bool {
	game.Lock()
	defer game.Unlock()
	return !game.IsComplete() && game.BothReady()
}

// RunRound resolves one round. Both top cards are popped and compared by
// rank; equal ranks trigger a war that may chain until a strict winner
// emerges or a player cannot stake the required cards. The winner takes
// every card laid down, the result line is broadcast to both players,
// and the game either returns to awaiting readiness or completes.
//
// Callers must check ReadyToPlay first; running a round without both
// ready flags is a contract violation and fails fast.
func (c *Controller) RunRound(ctx context.Context, game *model.Game) error {
	game.Lock()
	defer game.Unlock()

	if game.IsComplete() {
		return model.ErrGameComplete
	}
	if !game.BothReady() {
		return model.ErrPlayersNotReady
	}

	game.State = model.GameStateRoundInProgress

	p1, p2 := game.Players[0], game.Players[1]

	cardOne, err := p1.Hand.PopFront()
	if err != nil {
		return fmt.Errorf("round %d: %s: %w", game.Round+1, p1.Name, err)
	}
	cardTwo, err := p2.Hand.PopFront()
	if err != nil {
		return fmt.Errorf("round %d: %s: %w", game.Round+1, p2.Name, err)
	}

	// Every card laid down this round, in play order. The round winner
	// takes the whole pot, so the two hands still total 52 afterwards.
	pot := []model.Card{cardOne, cardTwo}

	var winner, loser *model.Player
	for {
		cmp := model.Compare(cardOne, cardTwo)
		if cmp > 0 {
			winner, loser = p1, p2
			break
		}
		if cmp < 0 {
			winner, loser = p2, p1
			break
		}

		// War: each player stakes one face-down and one face-up card.
		game.Wars++
		if short := warForfeiter(p1, p2); short != nil {
			// Cannot stake the war; the short player's remaining cards
			// join the pot and they lose it all.
			pot = append(pot, short.Hand...)
			short.Hand = nil
			winner, loser = game.Opponent(short), short
			break
		}

		downOne, _ := p1.Hand.PopFront()
		downTwo, _ := p2.Hand.PopFront()
		cardOne, _ = p1.Hand.PopFront()
		cardTwo, _ = p2.Hand.PopFront()
		pot = append(pot, downOne, downTwo, cardOne, cardTwo)
	}

	winner.Hand.Append(pot...)

	// The winner's face-up card is named first, then the loser's, in the
	// order the round was played.
	winnerCard, loserCard := cardOne, cardTwo
	if winner == p2 {
		winnerCard, loserCard = cardTwo, cardOne
	}
	c.broadcast(game, fmt.Sprintf("%s took the %s, and the %s!", winner.Name, winnerCard, loserCard))

	game.Round++
	game.ResetReady()
	game.UpdatedAt = c.clock.Now()

	if loser.Hand.Size() == 0 {
		return c.complete(ctx, game, winner, loser)
	}

	game.State = model.GameStateAwaitingReady
	return nil
}

// warForfeiter returns the player unable to stake a face-down plus a
// face-up card, or nil when both can contest the war. When neither can,
// the smaller hand loses; at equal sizes Player Two yields.
func warForfeiter(p1, p2 *model.Player) *model.Player {
	shortOne := p1.Hand.Size() < 2
	shortTwo := p2.Hand.Size() < 2

	switch {
	case shortOne && shortTwo:
		if p1.Hand.Size() < p2.Hand.Size() {
			return p1
		}
		return p2
	case shortOne:
		return p1
	case shortTwo:
		return p2
	default:
		return nil
	}
}

// EndGame terminates a game early. The completion message is broadcast
// and the match is recorded without a winner.
func (c *Controller) EndGame(ctx context.Context, game *model.Game) error {
	game.Lock()
	defer game.Unlock()

	if game.IsComplete() {
		return nil
	}
	return c.complete(ctx, game, nil, nil)
}

// Forfeit handles a player becoming unreachable mid-game: their
// remaining cards transfer to the opponent and the game completes with
// the opponent as winner.
func (c *Controller) Forfeit(ctx context.Context, game *model.Game, playerName string) error {
	game.Lock()
	defer game.Unlock()

	player := game.PlayerByName(playerName)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	player.Unreachable = true

	if game.IsComplete() {
		return nil
	}

	opponent := game.Opponent(player)
	opponent.Hand.Append(player.Hand...)
	player.Hand = nil

	c.logger.Info("player forfeited",
		slog.String("game_id", string(game.ID)),
		slog.String("player", playerName),
	)

	return c.complete(ctx, game, opponent, player)
}

// CardsInHands reports to each player their own remaining hand size.
func (c *Controller) CardsInHands(game *model.Game) error {
	game.Lock()
	defer game.Unlock()

	for _, p := range game.Players {
		c.send(p, fmt.Sprintf("You have %d cards left in your hand.", p.Hand.Size()))
	}
	return nil
}

// SetPlayerHand forces a player's hand, bypassing normal dealing. This
// is an operator/test hook for deterministic rounds.
func (c *Controller) SetPlayerHand(game *model.Game, cards []model.Card, playerName string) error {
	game.Lock()
	defer game.Unlock()

	player := game.PlayerByName(playerName)
	if player == nil {
		return model.ErrPlayerNotFound
	}
	player.Hand = model.Hand(cards)
	return nil
}

// complete moves the game to its terminal state, broadcasts the
// completion message, and records the match. Callers hold the game lock.
func (c *Controller) complete(ctx context.Context, game *model.Game, winner, loser *model.Player) error {
	game.State = model.GameStateCompleted
	game.UpdatedAt = c.clock.Now()
	c.broadcast(game, MsgGameCompleted)

	summary := &model.MatchSummary{
		ID:          game.ID,
		Rounds:      game.Round,
		Wars:        game.Wars,
		CompletedAt: c.clock.Now(),
	}
	if winner != nil {
		summary.Winner = winner.Name
		summary.Loser = loser.Name

		if _, err := c.storage.IncrementWins(ctx, winner.Name); err != nil {
			c.logger.Error("failed to record win",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := c.storage.SaveSummary(ctx, summary); err != nil {
		c.logger.Error("failed to save match summary",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("game completed",
		slog.String("game_id", string(game.ID)),
		slog.String("winner", summary.Winner),
		slog.Int("rounds", game.Round),
		slog.Int("wars", game.Wars),
	)

	return nil
}

// broadcast sends a line to every reachable player in the game.
func (c *Controller) broadcast(game *model.Game, msg string) {
	for _, p := range game.Players {
		c.send(p, msg)
	}
}

// send delivers one line, marking the player unreachable on failure.
// Internal errors never leak to the wire.
func (c *Controller) send(p *model.Player, msg string) {
	if p.Unreachable {
		return
	}
	if err := p.Conn.SendLine(msg); err != nil {
		p.Unreachable = true
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, conn1, conn2 netline.Conn) (*model.Game, error)
	ReadyPlayers(ctx context.Context, game *model.Game) error
	HandleInput(game *model.Game, playerName, line string) bool
	ReadyToPlay(game *model.Game) bool
	RunRound(ctx context.Context, game *model.Game) error
	EndGame(ctx context.Context, game *model.Game) error
	Forfeit(ctx context.Context, game *model.Game, playerName string) error
	CardsInHands(game *model.Game) error
	SetPlayerHand(game *model.Game, cards []model.Card, playerName string) error
}

var _ ControllerInterface = (*Controller)(nil)
