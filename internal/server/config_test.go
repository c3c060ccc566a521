package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-insights/internal/quote"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaults() {
	suite.T().Setenv("PORT", "")
	suite.T().Setenv("DATABASE_PATH", "")
	suite.T().Setenv("QUOTE_BASE_URL", "")

	cfg, err := LoadConfig("")
	suite.Require().NoError(err)

	suite.Assert().Equal(8000, cfg.Port)
	suite.Assert().Equal("data/insights.db", cfg.DatabasePath)
	suite.Assert().Equal(quote.DefaultBaseURL, cfg.QuoteBaseURL)
	suite.Assert().Equal(10, cfg.FetchTimeoutSeconds)
}

func (suite *ConfigTestSuite) TestLoadFromFile() {
	suite.T().Setenv("PORT", "")
	suite.T().Setenv("DATABASE_PATH", "")
	suite.T().Setenv("QUOTE_BASE_URL", "")

	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	content := `port: 9090
database_path: /tmp/insights.db
quote_base_url: http://localhost:8080
fetch_timeout_seconds: 3
`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	suite.Require().NoError(err)

	suite.Assert().Equal(9090, cfg.Port)
	suite.Assert().Equal("/tmp/insights.db", cfg.DatabasePath)
	suite.Assert().Equal("http://localhost:8080", cfg.QuoteBaseURL)
	suite.Assert().Equal(3, cfg.FetchTimeoutSeconds)
}

func (suite *ConfigTestSuite) TestEnvironmentOverrides() {
	suite.T().Setenv("PORT", "9001")
	suite.T().Setenv("DATABASE_PATH", "/tmp/override.db")
	suite.T().Setenv("QUOTE_BASE_URL", "http://quotes.internal")

	cfg, err := LoadConfig("")
	suite.Require().NoError(err)

	suite.Assert().Equal(9001, cfg.Port)
	suite.Assert().Equal("/tmp/override.db", cfg.DatabasePath)
	suite.Assert().Equal("http://quotes.internal", cfg.QuoteBaseURL)
}

func (suite *ConfigTestSuite) TestInvalidPortEnv() {
	suite.T().Setenv("PORT", "not-a-port")

	_, err := LoadConfig("")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestPortOutOfRange() {
	suite.T().Setenv("PORT", "70000")

	_, err := LoadConfig("")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestMissingFile() {
	_, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	schemaJSON, err := DefaultConfig().GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Assert().Contains(schemaJSON, "port")
	suite.Assert().Contains(schemaJSON, "database_path")
	suite.Assert().Contains(schemaJSON, "quote_base_url")
}
