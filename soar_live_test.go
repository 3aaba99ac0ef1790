package soar_test

import (
	"testing"
	"time"

	"github.com/soartravel/soar"
	"github.com/soartravel/soar/chat"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/mytesting"
	"github.com/stretchr/testify/suite"
)

type LiveTestSuite struct {
	mytesting.Suite

	assistant *soar.Assistant
}

func TestLive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping test in short mode")
	}
	suite.Run(t, new(LiveTestSuite))
}

func (s *LiveTestSuite) SetupTest() {
	s.Suite.SetupTest()
	s.RequireEnv("OPENAI_API_KEY")

	conf, err := config.Load("")
	s.Require().NoError(err)
	conf.Ledger.Driver = config.LedgerDriverMemory

	// the remote memory store is used when a key is present
	offline := conf.Memory.APIKey == ""
	s.assistant, err = soar.NewAssistant(s,
		soar.WithConfig(conf),
		soar.WithLogger(mylog.NewLogger("debug", "text")),
		soar.WithOffline(offline),
	)
	s.Require().NoError(err)
}

func (s *LiveTestSuite) TearDownTest() {
	if s.assistant != nil {
		s.Require().NoError(s.assistant.Close(s))
		s.assistant = nil
	}
	s.Suite.TearDownTest()
}

func (s *LiveTestSuite) TestStatementThenQuery() {
	userID := "live-test-" + time.Now().Format("20060102150405")

	reply := s.assistant.Handle(s, "My flight to Tokyo on March 10 is KE703 from Incheon", userID)
	s.NotEmpty(reply)
	s.NotEqual(chat.FallbackAcknowledgment, reply)
	s.T().Logf("acknowledgment: %s", reply)

	// statement writes run in the background
	s.Require().NoError(s.assistant.Close(s))

	reply = s.assistant.Handle(s, "Which flight am I taking to Tokyo?", userID)
	s.NotEqual(chat.FallbackMemoryUnavailable, reply)
	s.T().Logf("answer: %s", reply)
}

func (s *LiveTestSuite) TestWebSearch() {
	reply := s.assistant.Handle(s, "What are the current entry requirements for Japan for US citizens?", "live-test")
	s.NotEmpty(reply)
	s.T().Logf("answer: %s", reply)
}
