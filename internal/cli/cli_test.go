package cli

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerroster/internal/api"
	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/factory"
	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/seed"
	"github.com/mcoot/playerroster/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		PlayerService: s.app.PlayerService,
	}))
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI against the test server with JSON output
func (s *CLISuite) run(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", s.server.URL, "--output", "json"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *CLISuite) create(name, race string, experience string) response.Player {
	out, err := s.run("players", "create",
		"--name", name,
		"--title", "Adventurer",
		"--race", race,
		"--profession", "WARRIOR",
		"--birthday", "2001-01-01",
		"--experience", experience,
	)
	s.Require().NoError(err, out)

	var p response.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &p))
	return p
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err)
	s.JSONEq(`{"status":"ok"}`, out)
}

func (s *CLISuite) TestCreateAndGet() {
	created := s.create("Bilbo", "HOBBIT", "1000")
	s.Equal(int64(1), created.ID)
	s.Equal(4, created.Level)
	s.Equal(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), created.Birthday)

	out, err := s.run("players", "get", "1")
	s.Require().NoError(err)

	var got response.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &got))
	s.Equal(created, got)
}

func (s *CLISuite) TestCreateValidationError() {
	_, err := s.run("players", "create", "--name", "Bilbo")
	s.Require().Error(err)
	s.Contains(err.Error(), "INVALID_PLAYER")
}

func (s *CLISuite) TestGetRejectsBadID() {
	_, err := s.run("players", "get", "zero")
	s.Error(err)
}

func (s *CLISuite) TestGetNotFound() {
	_, err := s.run("players", "get", "42")
	s.Require().Error(err)

	var statusErr *StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(404, statusErr.Status)
	s.Equal("PLAYER_NOT_FOUND", statusErr.API.Code)
}

func (s *CLISuite) TestListWithPaging() {
	s.create("Alice", "HUMAN", "100")
	s.create("Bob", "ELF", "5000")
	s.create("Carla", "DWARF", "900")

	out, err := s.run("players", "list", "--order", "experience", "--direction", "desc", "--pageSize", "2")
	s.Require().NoError(err)

	var page response.PlayerPage
	s.Require().NoError(json.Unmarshal([]byte(out), &page))
	s.Equal(3, page.Total)
	s.Require().Len(page.Players, 2)
	s.Equal("Bob", page.Players[0].Name)
	s.Equal("Carla", page.Players[1].Name)
}

func (s *CLISuite) TestAllAndCountWithFilters() {
	s.create("Alice", "HUMAN", "100")
	s.create("Bob", "ELF", "5000")
	s.create("Carla", "ELF", "900")

	out, err := s.run("players", "all", "--race", "ELF", "--before", "2001-06-01")
	s.Require().NoError(err)

	var list response.PlayerList
	s.Require().NoError(json.Unmarshal([]byte(out), &list))
	s.Len(list.Players, 2)

	out, err = s.run("players", "count", "--filter", "experience >= 1000")
	s.Require().NoError(err)
	s.JSONEq(`{"count":1}`, out)
}

func (s *CLISuite) TestUpdateSendsOnlyChangedFields() {
	s.create("Alice", "HUMAN", "100")

	out, err := s.run("players", "update", "1", "--banned", "--experience", "0")
	s.Require().NoError(err)

	var p response.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &p))
	s.Equal("Alice", p.Name)
	s.Equal("Adventurer", p.Title)
	s.True(p.Banned)
	s.Equal(0, p.Level)
}

func (s *CLISuite) TestDelete() {
	s.create("Alice", "HUMAN", "100")

	out, err := s.run("players", "delete", "1")
	s.Require().NoError(err)
	s.Contains(out, "Deleted player 1")

	n, err := s.app.PlayerService.Count(s.T().Context(), filter.Criteria{})
	s.Require().NoError(err)
	s.Equal(0, n)
}

func (s *CLISuite) TestSeed() {
	out, err := s.run("players", "seed", "--count", "5")
	s.Require().NoError(err)

	var list response.PlayerList
	s.Require().NoError(json.Unmarshal([]byte(out), &list))
	s.Len(list.Players, 5)

	n, err := s.app.PlayerService.Count(s.T().Context(), filter.Criteria{})
	s.Require().NoError(err)
	s.Equal(5, n)
}

func (s *CLISuite) TestClientIsSeedCreator() {
	s.app.QueuePlayer("Frodo", 300)

	gen := seed.NewGenerator(s.app.MockRandom, s.app.MockClock)
	created, err := seed.Populate(s.T().Context(), NewClient(s.server.URL), gen, 1)
	s.Require().NoError(err)
	s.Require().Len(created, 1)
	s.Equal("Frodo", created[0].Name)
	s.Equal(300, created[0].Experience)
}

func (s *CLISuite) TestTextOutput() {
	s.create("Alice", "HUMAN", "100")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--server", s.server.URL, "players", "all"})
	s.Require().NoError(root.Execute())

	s.Contains(out.String(), "NAME")
	s.Contains(out.String(), "Alice")
	s.Contains(out.String(), "2001-01-01")
	s.Contains(out.String(), "1 players")
}

func TestParseDate(t *testing.T) {
	ms, err := parseDate("2001-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(978307200000), ms)

	ms, err = parseDate("2001-01-01T00:00:01Z")
	require.NoError(t, err)
	assert.Equal(t, int64(978307201000), ms)

	ms, err = parseDate("12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), ms)

	_, err = parseDate("last tuesday")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{ServerURL: "http://x", Output: OutputJSON}).Validate())
	assert.Error(t, (&Config{ServerURL: "", Output: OutputText}).Validate())
	assert.Error(t, (&Config{ServerURL: "http://x", Output: "yaml"}).Validate())
}
