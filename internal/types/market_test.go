package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestCloses() {
	bars := []PriceBar{
		{Date: "2024-01-02", Close: 104.0},
		{Date: "2024-01-03", Close: 105.5},
	}

	suite.Assert().Equal([]float64{104.0, 105.5}, Closes(bars))
}

func (suite *MarketTestSuite) TestClosesEmpty() {
	suite.Assert().Empty(Closes(nil))
}
