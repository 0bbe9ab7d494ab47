package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wargame-go/internal/dependencies/mocks"
	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/netline"
	"github.com/mcoot/wargame-go/internal/services/game"
	"github.com/mcoot/wargame-go/internal/storage/memory"
	"github.com/mcoot/wargame-go/internal/testutil"
)

type PoolSuite struct {
	suite.Suite
	pool *Pool
	ctx  context.Context
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolSuite))
}

func (s *PoolSuite) SetupTest() {
	controller := game.NewController(
		memory.New(),
		mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		mocks.NewMockRandom(),
		testutil.NopLogger(),
	)
	s.pool = NewPool(controller, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *PoolSuite) TestFirstClientToldToWait() {
	conn := netline.NewFakeConn()
	s.pool.AcceptNewClient("Player 1", conn)

	s.Equal([]string{MsgWaitingForOpponent}, conn.Sent())
	s.Equal(1, s.pool.Waiting())
}

func (s *PoolSuite) TestSecondClientToldOpponentAvailable() {
	connOne := netline.NewFakeConn()
	connTwo := netline.NewFakeConn()
	s.pool.AcceptNewClient("Player 1", connOne)
	s.pool.AcceptNewClient("Player 2", connTwo)

	s.Equal([]string{MsgWaitingForOpponent}, connOne.Sent())
	s.Equal([]string{MsgOpponentAvailable}, connTwo.Sent())
}

func (s *PoolSuite) TestThirdClientToldToWait() {
	s.pool.AcceptNewClient("Player 1", netline.NewFakeConn())
	s.pool.AcceptNewClient("Player 2", netline.NewFakeConn())

	connThree := netline.NewFakeConn()
	s.pool.AcceptNewClient("Player 3", connThree)

	s.Equal([]string{MsgWaitingForOpponent}, connThree.Sent())
}

func (s *PoolSuite) TestNoGameWithFewerThanTwoClients() {
	g, err := s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Nil(g)

	s.pool.AcceptNewClient("Player 1", netline.NewFakeConn())
	g, err = s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Nil(g)
	s.Equal(1, s.pool.Waiting())
}

func (s *PoolSuite) TestPairingIsFIFO() {
	connA := netline.NewFakeConn()
	connB := netline.NewFakeConn()
	connC := netline.NewFakeConn()
	s.pool.AcceptNewClient("A", connA)
	s.pool.AcceptNewClient("B", connB)
	s.pool.AcceptNewClient("C", connC)

	g, err := s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(g)

	// Oldest two were paired in connection order
	s.Same(netline.Conn(connA), g.Players[0].Conn)
	s.Same(netline.Conn(connB), g.Players[1].Conn)
	s.Equal(model.PlayerOneName, g.Players[0].Name)
	s.Equal(model.PlayerTwoName, g.Players[1].Name)

	// C keeps waiting
	s.Equal(1, s.pool.Waiting())
	g, err = s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Nil(g)

	// A fourth arrival pairs with C
	connD := netline.NewFakeConn()
	s.pool.AcceptNewClient("D", connD)
	g, err = s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(g)
	s.Same(netline.Conn(connC), g.Players[0].Conn)
	s.Equal(0, s.pool.Waiting())
}

func (s *PoolSuite) TestGameHandsAreDealtAtPairing() {
	s.pool.AcceptNewClient("A", netline.NewFakeConn())
	s.pool.AcceptNewClient("B", netline.NewFakeConn())

	g, err := s.pool.CreateGameIfPossible(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(g)

	s.Equal(26, g.Players[0].Hand.Size())
	s.Equal(26, g.Players[1].Hand.Size())
}

func (s *PoolSuite) TestCloseAllDrainsQueue() {
	conn := netline.NewFakeConn()
	s.pool.AcceptNewClient("A", conn)

	s.pool.CloseAll()
	s.Equal(0, s.pool.Waiting())
	s.ErrorIs(conn.SendLine("x"), netline.ErrDisconnected)
}
