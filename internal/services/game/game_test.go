package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/testutil"
)

type GameSuite struct {
	suite.Suite
	black  *model.Player
	red    *model.Player
	events []model.Event
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.black = model.NewPlayer("Black", model.ColorBlack)
	s.red = model.NewPlayer("Red", model.ColorRed)
	s.events = nil
}

func (s *GameSuite) newGame(cfg Config, players ...*model.Player) *Game {
	if len(players) == 0 {
		players = []*model.Player{s.black, s.red}
	}
	g, err := New(players, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	g.Subscribe(func(e model.Event) {
		s.events = append(s.events, e)
	})
	return g
}

func (s *GameSuite) play(g *Game, columns ...int) Outcome {
	var out Outcome
	for _, c := range columns {
		var err error
		out, err = g.PlacePiece(c)
		s.Require().NoError(err, "column %d", c)
	}
	return out
}

// New tests

func (s *GameSuite) TestNewStartsInProgress() {
	g := s.newGame(DefaultConfig())

	s.Equal(model.GameStateInProgress, g.Status().State)
	s.Nil(g.Status().Winner)
	s.Same(s.black, g.CurrentPlayer())
	s.Equal(0, g.CurrentPlayerIndex())
	s.Equal(0, g.MoveCount())

	w, h := g.Dimensions()
	s.Equal(7, w)
	s.Equal(6, h)
}

func (s *GameSuite) TestNewFailsWithNoPlayers() {
	_, err := New(nil, DefaultConfig(), testutil.NopLogger())
	s.ErrorIs(err, model.ErrNoPlayers)

	_, err = New([]*model.Player{}, DefaultConfig(), testutil.NopLogger())
	s.ErrorIs(err, model.ErrNoPlayers)
}

func (s *GameSuite) TestNewFailsWithNilPlayer() {
	_, err := New([]*model.Player{s.black, nil}, DefaultConfig(), testutil.NopLogger())
	s.ErrorIs(err, model.ErrNoPlayers)
}

func (s *GameSuite) TestNewFailsWithBadDimensions() {
	players := []*model.Player{s.black}
	for _, cfg := range []Config{{0, 6}, {7, 0}, {-1, -1}, {MaxDimension + 1, 6}, {7, MaxDimension + 1}, {math.MaxInt, 2}} {
		_, err := New(players, cfg, testutil.NopLogger())
		s.ErrorIs(err, model.ErrInvalidDimensions)
	}
}

func (s *GameSuite) TestNewCopiesPlayerList() {
	players := []*model.Player{s.black, s.red}
	g := s.newGame(DefaultConfig(), players...)

	players[0] = s.red
	s.Same(s.black, g.CurrentPlayer())

	got := g.Players()
	got[0] = nil
	s.Same(s.black, g.Players()[0])
}

// PlacePiece tests

func (s *GameSuite) TestPlacePieceReportsLanding() {
	g := s.newGame(DefaultConfig())

	out, err := g.PlacePiece(3)
	s.Require().NoError(err)
	s.Equal(2*6+5, out.PlacedIndex)
	s.Equal(3, out.Column)
	s.Equal(5, out.Row)
	s.Same(s.black, out.Player)
	s.Equal(model.GameStateInProgress, out.Status.State)
	s.Nil(out.Win)

	view, ok := g.CellAt(out.PlacedIndex)
	s.Require().True(ok)
	s.Equal("Black", view.Player.Name)
	s.Equal(model.ColorBlack, view.Color)
	s.Equal(0, view.PlayerIndex)
}

func (s *GameSuite) TestTurnOrderCyclesThroughPlayers() {
	yellow := model.NewPlayer("Yellow", model.Color{Hex: "#FFFF00", Label: "yellow"})
	g := s.newGame(DefaultConfig(), s.black, s.red, yellow)

	var seen []int
	for _, c := range []int{1, 2, 3, 4, 5, 6, 7} {
		seen = append(seen, g.CurrentPlayerIndex())
		s.play(g, c)
	}
	seen = append(seen, g.CurrentPlayerIndex())

	s.Equal([]int{0, 1, 2, 0, 1, 2, 0, 1}, seen)
}

func (s *GameSuite) TestSinglePlayerKeepsTurn() {
	g := s.newGame(DefaultConfig(), s.black)

	s.play(g, 1, 2, 3)
	s.Equal(0, g.CurrentPlayerIndex())
	s.Equal(3, g.MoveCount())
}

func (s *GameSuite) TestInvalidColumnChangesNothing() {
	g := s.newGame(DefaultConfig())
	s.play(g, 4)
	before := g.Snapshot()
	eventsBefore := len(s.events)

	for _, c := range []int{0, 8, -3} {
		_, err := g.PlacePiece(c)
		s.ErrorIs(err, model.ErrInvalidColumn)
	}

	s.Equal(before, g.Snapshot())
	s.Len(s.events, eventsBefore)
}

func (s *GameSuite) TestFullColumnChangesNothing() {
	g := s.newGame(DefaultConfig())
	s.play(g, 1, 1, 1, 1, 1, 1)
	before := g.Snapshot()
	eventsBefore := len(s.events)

	_, err := g.PlacePiece(1)
	s.ErrorIs(err, model.ErrColumnFull)

	s.Equal(before, g.Snapshot())
	s.Len(s.events, eventsBefore)
	s.Equal(0, g.CurrentPlayerIndex())
	s.NotContains(g.OpenColumns(), 1)
}

func (s *GameSuite) TestVerticalWin() {
	g := s.newGame(DefaultConfig())

	out := s.play(g, 1, 2, 1, 2, 1, 2, 1)

	s.Equal(model.GameStateWon, out.Status.State)
	s.Same(s.black, out.Status.Winner)
	s.Equal(model.AxisVertical, out.Status.Axis)
	s.Require().NotNil(out.Win)
	s.Equal([]int{2, 3, 4, 5}, out.Win.Cells)

	s.Equal(model.GameStateWon, g.Status().State)
	s.Same(s.black, g.CurrentPlayer(), "turn does not advance after a win")
}

func (s *GameSuite) TestHorizontalWin() {
	g := s.newGame(DefaultConfig())

	out := s.play(g, 1, 1, 2, 2, 3, 3, 4)

	s.Equal(model.GameStateWon, out.Status.State)
	s.Same(s.black, out.Status.Winner)
	s.Equal(model.AxisHorizontal, out.Status.Axis)
}

func (s *GameSuite) TestDiagonalWin() {
	g := s.newGame(DefaultConfig())

	out := s.play(g, 1, 2, 2, 3, 3, 4, 3, 4, 4, 6, 4)

	s.Equal(model.GameStateWon, out.Status.State)
	s.Same(s.black, out.Status.Winner)
	s.Equal(model.AxisDiagonalUp, out.Status.Axis)
	s.Equal(11, g.MoveCount())

	win, ok := g.Win()
	s.Require().True(ok)
	s.Len(win.Cells, 4)
}

func (s *GameSuite) TestMoveAfterWinFails() {
	g := s.newGame(DefaultConfig())
	s.play(g, 1, 2, 1, 2, 1, 2, 1)
	before := g.Snapshot()
	eventsBefore := len(s.events)

	_, err := g.PlacePiece(5)
	s.ErrorIs(err, model.ErrGameAlreadyFinished)
	_, err = g.PlacePiece(99)
	s.ErrorIs(err, model.ErrGameAlreadyFinished)

	s.Equal(before, g.Snapshot())
	s.Len(s.events, eventsBefore)
	s.Empty(g.OpenColumns())
}

func (s *GameSuite) TestDrawWhenBoardFills() {
	// Three columns of two rows cannot hold a run of four
	g := s.newGame(Config{Width: 3, Height: 2})

	out := s.play(g, 1, 2, 3, 1, 2)
	s.Equal(model.GameStateInProgress, out.Status.State)

	out = s.play(g, 3)
	s.Equal(model.GameStateDraw, out.Status.State)
	s.Nil(out.Status.Winner)
	s.Nil(out.Win)

	_, err := g.PlacePiece(1)
	s.ErrorIs(err, model.ErrGameAlreadyFinished)
}

func (s *GameSuite) TestWinOnFinalSlotIsNotADraw() {
	g := s.newGame(Config{Width: 4, Height: 1}, s.black)

	out := s.play(g, 1, 2, 3, 4)

	s.Equal(model.GameStateWon, out.Status.State)
	s.Equal(model.AxisHorizontal, out.Status.Axis)
	s.Equal(model.EventGameWon, s.events[len(s.events)-1].Type)
}

// Notification tests

func (s *GameSuite) TestOneEventPerSuccessfulMove() {
	g := s.newGame(DefaultConfig())

	s.play(g, 1, 2, 1, 2, 1, 2)
	s.Require().Len(s.events, 6)
	for i, e := range s.events {
		s.Equal(model.EventTurnChanged, e.Type)
		s.False(e.IsTerminal())
		s.Equal(model.GameStateInProgress, e.Status.State)
		s.Equal(i+1, e.Move)
		if i%2 == 0 {
			s.Same(s.black, e.Player)
			s.Same(s.red, e.CurrentPlayer)
		} else {
			s.Same(s.red, e.Player)
			s.Same(s.black, e.CurrentPlayer)
		}
	}

	s.play(g, 1)
	s.Require().Len(s.events, 7)
	last := s.events[6]
	s.Equal(model.EventGameWon, last.Type)
	s.True(last.IsTerminal())
	s.Same(s.black, last.Status.Winner)
	s.Equal(model.AxisVertical, last.Status.Axis)
	s.Equal(2, last.PlacedIndex)
	s.Equal(7, last.Move)
}

func (s *GameSuite) TestDrawEmitsDrawnEvent() {
	g := s.newGame(Config{Width: 2, Height: 2})

	s.play(g, 1, 2, 1, 2)

	s.Require().Len(s.events, 4)
	s.Equal(model.EventGameDrawn, s.events[3].Type)
	s.Equal(model.GameStateDraw, s.events[3].Status.State)
}

func (s *GameSuite) TestListenerSeesUpdatedState() {
	g := s.newGame(DefaultConfig())

	var status model.Status
	var placed bool
	g.Subscribe(func(e model.Event) {
		status = g.Status()
		_, placed = g.CellAt(e.PlacedIndex)
	})

	s.play(g, 4)
	s.Equal(model.GameStateInProgress, status.State)
	s.True(placed)
}

func (s *GameSuite) TestListenersRunInSubscriptionOrder() {
	g := s.newGame(DefaultConfig())

	var order []string
	g.Subscribe(func(model.Event) { order = append(order, "first") })
	g.Subscribe(func(model.Event) { order = append(order, "second") })

	s.play(g, 1)
	s.Equal([]string{"first", "second"}, order)
}

// Read query tests

func (s *GameSuite) TestReadQueriesAreIdempotent() {
	g := s.newGame(DefaultConfig())
	s.play(g, 1, 2, 3)

	s.Equal(g.Status(), g.Status())
	for idx := 0; idx < 42; idx++ {
		first, ok1 := g.CellAt(idx)
		second, ok2 := g.CellAt(idx)
		s.Equal(ok1, ok2)
		s.Equal(first, second)
	}
	s.Equal(g.Snapshot(), g.Snapshot())
	s.Equal(3, g.MoveCount())
}

func (s *GameSuite) TestCellAtOutOfRange() {
	g := s.newGame(DefaultConfig())

	view, ok := g.CellAt(-1)
	s.False(ok)
	s.Equal(model.PieceView{}, view)

	_, ok = g.CellAt(42)
	s.False(ok)

	_, ok = g.CellAt(0)
	s.False(ok, "empty slot")
}

func (s *GameSuite) TestSnapshot() {
	g := s.newGame(DefaultConfig())
	s.play(g, 1, 2, 1, 2, 1, 2, 1)

	snap := g.Snapshot()
	s.Equal(7, snap.Width)
	s.Equal(6, snap.Height)
	s.Len(snap.Players, 2)
	s.Equal("Red", snap.Players[1].Name)
	s.Equal(0, snap.WinnerIndex)
	s.Equal(7, snap.MoveCount)
	s.Len(snap.Cells, 42)
	s.Empty(snap.OpenColumns)
	s.Equal([]int{2, 3, 4, 5}, snap.WinningCells)

	s.True(snap.IsWinningCell(3))
	s.False(snap.IsWinningCell(11))
	s.False(snap.IsColumnOpen(3))

	s.Require().NotNil(snap.Cell(1, 5))
	s.Equal(0, snap.Cell(1, 5).PlayerIndex)
	s.Require().NotNil(snap.Cell(2, 5))
	s.Equal(1, snap.Cell(2, 5).PlayerIndex)
	s.Nil(snap.Cell(3, 5))
	s.Nil(snap.Cell(8, 0))
	s.Equal(11, snap.Index(2, 5))
}

func (s *GameSuite) TestSnapshotInProgress() {
	g := s.newGame(DefaultConfig())
	s.play(g, 1)

	snap := g.Snapshot()
	s.Equal(-1, snap.WinnerIndex)
	s.Equal(1, snap.CurrentPlayerIndex)
	s.Equal([]int{1, 2, 3, 4, 5, 6, 7}, snap.OpenColumns)
	s.Nil(snap.WinningCells)
}

func (s *GameSuite) TestMovesAreLogged() {
	logger, logs := testutil.CaptureLogger()
	g, err := New([]*model.Player{s.black, s.red}, DefaultConfig(), logger)
	s.Require().NoError(err)

	s.play(g, 1, 2, 1, 2, 1, 2, 1)

	dropped, ok := logs.Find("piece dropped")
	s.Require().True(ok)
	s.Equal("Black", dropped["player"])
	s.EqualValues(1, dropped["column"])
	s.EqualValues(5, dropped["index"])

	won, ok := logs.Find("game won")
	s.Require().True(ok)
	s.Equal("Black", won["player"])
	s.Equal(string(model.AxisVertical), won["axis"])
	s.EqualValues(7, won["moves"])
}

func (s *GameSuite) TestDrawIsLogged() {
	logger, logs := testutil.CaptureLogger()
	g, err := New([]*model.Player{s.black, s.red}, Config{Width: 2, Height: 1}, logger)
	s.Require().NoError(err)

	s.play(g, 1, 2)

	drawn, ok := logs.Find("game drawn")
	s.Require().True(ok)
	s.EqualValues(2, drawn["moves"])
	_, ok = logs.Find("game won")
	s.False(ok)
}
