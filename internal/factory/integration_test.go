package factory

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour/internal/api/response"
	"github.com/mcoot/connectfour/internal/hub"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) watch(m *hub.Manager, id model.GameID) *hub.Client {
	client := hub.NewClient("test")
	s.Require().True(m.GetOrCreateHub(id).Register(client))
	return client
}

func (s *IntegrationSuite) receive(client *hub.Client) []byte {
	select {
	case msg := <-client.Messages():
		return msg
	case <-time.After(time.Second):
		s.FailNow("no message received")
		return nil
	}
}

// Test: a full game from creation to a horizontal win, watched on both channels
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockIDs.Queue("game-1")

	session, err := s.app.GameController.CreateGame(s.ctx, model.DefaultPlayers(), game.Config{})
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), session.ID)

	ws := s.watch(s.app.APIStreams, session.ID)
	page := s.watch(s.app.WebStreams, session.ID)

	// Black takes the bottom row of columns 1-4, Red stacks on top
	moves := []int{1, 1, 2, 2, 3, 3, 4}
	for _, c := range moves {
		_, err := s.app.GameController.PlacePiece(s.ctx, session.ID, c)
		s.Require().NoError(err)
	}

	var last response.StreamMessage
	for range moves {
		s.Require().NoError(json.Unmarshal(s.receive(ws), &last))
		s.True(strings.HasPrefix(string(s.receive(page)), "event: board-update"))
	}

	s.Equal(string(model.EventGameWon), last.Type)
	s.Equal("won", last.Status)
	s.Equal(string(model.AxisHorizontal), last.Axis)
	s.Require().NotNil(last.Winner)
	s.Equal("Black", last.Winner.Name)
	s.Require().NotNil(last.Game)
	s.Equal([]int{5, 11, 17, 23}, last.Game.WinningCells)

	_, err = s.app.GameController.PlacePiece(s.ctx, session.ID, 5)
	s.ErrorIs(err, model.ErrGameAlreadyFinished)
}

// Test: rematch tells both channels where the next game lives
func (s *IntegrationSuite) TestRematchFlow() {
	s.app.MockIDs.Queue("game-1", "game-2")

	session, err := s.app.GameController.CreateGame(s.ctx, model.DefaultPlayers(), game.Config{Width: 5, Height: 4})
	s.Require().NoError(err)

	ws := s.watch(s.app.APIStreams, session.ID)
	page := s.watch(s.app.WebStreams, session.ID)

	next, err := s.app.GameController.Rematch(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(game.Config{Width: 5, Height: 4}, next.Config())

	var msg response.StreamMessage
	s.Require().NoError(json.Unmarshal(s.receive(ws), &msg))
	s.Equal(string(model.EventRematch), msg.Type)
	s.Equal("game-2", msg.NextGameID)
	s.Nil(msg.Game)

	s.Contains(string(s.receive(page)), "/games/game-2")
}

// Test: hubs without watchers are cleaned up
func (s *IntegrationSuite) TestCleanupHubs() {
	s.app.APIStreams.GetOrCreateHub("a")
	s.app.WebStreams.GetOrCreateHub("b")
	watched := s.watch(s.app.WebStreams, "c")

	s.Equal(2, s.app.CleanupHubs())
	s.Equal(0, s.app.APIStreams.HubCount())
	s.Equal(1, s.app.WebStreams.HubCount())

	s.app.WebStreams.RemoveHub("c")
	_, open := <-watched.Messages()
	s.False(open)
}

func TestNewRejectsBadDefaults(t *testing.T) {
	_, err := New(Config{Defaults: game.Config{Width: 0, Height: 6}})
	if err == nil {
		t.Fatal("expected error for zero width")
	}
}
