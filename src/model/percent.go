package model

type Percent float64

func (p Percent) Value() float64 {
	return float64(p)
}

func (p Percent) IsPositive() bool {
	return float64(p) > 0
}

func (p Percent) Gt(percent Percent) bool {
	return p.Value() > percent.Value()
}

func (p Percent) Gte(percent Percent) bool {
	return p.Value() >= percent.Value()
}

func (p Percent) Lt(percent Percent) bool {
	return p.Value() < percent.Value()
}

func (p Percent) Lte(percent Percent) bool {
	return p.Value() <= percent.Value()
}

// Of applies the percent to a base value: Percent(0.5).Of(200) = 1.00
func (p Percent) Of(base float64) float64 {
	return base * p.Value() / 100.00
}
