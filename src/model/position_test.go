package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetReachedBuyLeg(t *testing.T) {
	assertion := assert.New(t)

	position := Position{Type: PositionTypeBuy, TargetPrice: 93967.50}

	assertion.False(position.TargetReached(93967.49))
	assertion.True(position.TargetReached(93967.50))
	assertion.True(position.TargetReached(94000.00))
}

func TestTargetReachedSellLeg(t *testing.T) {
	assertion := assert.New(t)

	position := Position{Type: PositionTypeSell, TargetPrice: 94027.50}

	assertion.False(position.TargetReached(94027.51))
	assertion.True(position.TargetReached(94027.50))
	assertion.True(position.TargetReached(93000.00))
}

func TestPositionTypePredicates(t *testing.T) {
	assertion := assert.New(t)

	position := Position{Type: PositionTypeBuy, Status: PositionStatusOpen}
	assertion.True(position.IsBuy())
	assertion.False(position.IsSell())
	assertion.True(position.IsOpen())

	position.Status = PositionStatusClosed
	assertion.False(position.IsOpen())
}
