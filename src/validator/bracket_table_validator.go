package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type BracketTableValidator struct {
}

func (v *BracketTableValidator) Validate(name string, brackets model.PriceBrackets) error {
	validConditions := []string{
		model.BracketConditionLess,
		model.BracketConditionLessEqual,
		model.BracketConditionGreater,
		model.BracketConditionGreaterEqual,
	}

	invalidConditions := make([]string, 0)
	for _, bracket := range brackets {
		if bracket.IsRange() {
			if *bracket.MinPrice >= *bracket.MaxPrice {
				return errors.New(fmt.Sprintf(
					"%s bracket range [%f, %f) is empty",
					name,
					*bracket.MinPrice,
					*bracket.MaxPrice,
				))
			}

			continue
		}

		if bracket.MinPrice != nil || bracket.MaxPrice != nil {
			return errors.New(fmt.Sprintf("%s bracket range needs both minPrice and maxPrice", name))
		}

		if !slices.Contains(validConditions, bracket.Condition) {
			invalidConditions = append(invalidConditions, bracket.Condition)
		}
	}

	if len(invalidConditions) > 0 {
		return errors.New(fmt.Sprintf(
			"%s bracket conditions: %s are invalid",
			name,
			strings.Join(invalidConditions, ", "),
		))
	}

	return nil
}
