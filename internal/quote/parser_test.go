package quote

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ParserTestSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}

func (suite *ParserTestSuite) TestParseDailyCSV() {
	raw := `Date,Open,High,Low,Close,Volume
2024-01-02,100.0,105.0,99.0,104.0,1000
2024-01-03,104.0,106.0,103.0,105.5,1500`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)

	suite.Assert().Equal("2024-01-02", bars[0].Date)
	suite.Assert().Equal(100.0, bars[0].Open)
	suite.Assert().Equal(105.0, bars[0].High)
	suite.Assert().Equal(99.0, bars[0].Low)
	suite.Assert().Equal(104.0, bars[0].Close)
	suite.Assert().Equal(int64(1000), bars[0].Volume)
	suite.Assert().Equal(105.5, bars[1].Close)
}

func (suite *ParserTestSuite) TestParseShuffledColumns() {
	raw := `Volume,Close,Date,Low,High,Open
1000,104.0,2024-01-02,99.0,105.0,100.0`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.Assert().Equal("2024-01-02", bars[0].Date)
	suite.Assert().Equal(104.0, bars[0].Close)
	suite.Assert().Equal(int64(1000), bars[0].Volume)
}

func (suite *ParserTestSuite) TestShortRowsSkipped() {
	raw := `Date,Open,High,Low,Close,Volume
2024-01-02,100.0,105.0,99.0,104.0,1000
2024-01-03,104.0
2024-01-04,104.0,106.0,103.0,105.5,1500`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)
	suite.Assert().Equal("2024-01-02", bars[0].Date)
	suite.Assert().Equal("2024-01-04", bars[1].Date)
}

func (suite *ParserTestSuite) TestNonNumericVolumeBecomesZero() {
	raw := `Date,Open,High,Low,Close,Volume
2024-01-02,100.0,105.0,99.0,104.0,N/A`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.Assert().Equal(int64(0), bars[0].Volume)
}

func (suite *ParserTestSuite) TestKeepsOnlyMostRecentBars() {
	var sb strings.Builder
	sb.WriteString("Date,Open,High,Low,Close,Volume\n")

	for i := 0; i < 250; i++ {
		sb.WriteString(fmt.Sprintf("2023-%02d-%02d,100.0,105.0,99.0,104.0,1000\n", i/28+1, i%28+1))
	}

	bars, err := ParseDailyCSV(sb.String())
	suite.Require().NoError(err)
	suite.Require().Len(bars, MaxBars)

	// The oldest rows are the ones dropped.
	suite.Assert().Equal("2023-02-23", bars[0].Date)
	suite.Assert().Equal("2023-09-26", bars[len(bars)-1].Date)
}

func (suite *ParserTestSuite) TestMissingColumns() {
	raw := `Date,Close
2024-01-02,104.0`

	_, err := ParseDailyCSV(raw)
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNoUsableData))
}

func (suite *ParserTestSuite) TestHeaderOnly() {
	_, err := ParseDailyCSV("Date,Open,High,Low,Close,Volume")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNoUsableData))
}

func (suite *ParserTestSuite) TestEmptyInput() {
	_, err := ParseDailyCSV("")
	suite.Require().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNoUsableData))
}

func (suite *ParserTestSuite) TestRowsSortedAndDeduplicated() {
	raw := `Date,Open,High,Low,Close,Volume
2024-01-04,104.0,106.0,103.0,105.5,1500
2024-01-02,100.0,105.0,99.0,104.0,1000
2024-01-02,101.0,105.0,99.0,104.5,1100
2024-01-03,102.0,105.0,99.0,104.2,1200`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.Assert().Equal("2024-01-02", bars[0].Date)
	suite.Assert().Equal("2024-01-03", bars[1].Date)
	suite.Assert().Equal("2024-01-04", bars[2].Date)

	// The first row seen for a duplicated date wins.
	suite.Assert().Equal(104.0, bars[0].Close)
}

func (suite *ParserTestSuite) TestUnparsablePriceRowSkipped() {
	raw := `Date,Open,High,Low,Close,Volume
2024-01-02,100.0,105.0,99.0,not-a-number,1000
2024-01-03,104.0,106.0,103.0,105.5,1500`

	bars, err := ParseDailyCSV(raw)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.Assert().Equal("2024-01-03", bars[0].Date)
}
