package grid

import (
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type ThresholdResolverInterface interface {
	TrendPercent(settings *model.OrderSettings, trend int64, direction string) model.Percent
	BracketValue(table model.PriceBrackets, price float64) *float64
	MinSwing(settings *model.OrderSettings, price float64, direction string) model.Percent
}

type ThresholdResolver struct {
}

// TrendPercent resolves the trend-percent step function: the entry with the
// greatest trend threshold not exceeding the counter wins. An empty table
// falls back to the order's minimum profit percent.
func (r *ThresholdResolver) TrendPercent(settings *model.OrderSettings, trend int64, direction string) model.Percent {
	var matched *model.TrendBracket

	for index, bracket := range settings.TrendPercents {
		if bracket.Trend > trend {
			continue
		}

		if matched == nil || bracket.Trend > matched.Trend {
			matched = &settings.TrendPercents[index]
		}
	}

	if matched == nil {
		return settings.GetMinProfitPercent()
	}

	return matched.GetPercent(direction)
}

// BracketValue evaluates an ordered bracket table, nil means no bracket applies.
func (r *ThresholdResolver) BracketValue(table model.PriceBrackets, price float64) *float64 {
	bracket := table.Match(price)

	if bracket == nil {
		return nil
	}

	return &bracket.Value
}

// MinSwing resolves the minimum required price movement for an entry on the
// given side. Zero means no minimum swing is required.
func (r *ThresholdResolver) MinSwing(settings *model.OrderSettings, price float64, direction string) model.Percent {
	bracket := settings.GetMinSwings(direction).Match(price)

	if bracket == nil {
		return model.Percent(0.00)
	}

	return model.Percent(bracket.Value)
}
