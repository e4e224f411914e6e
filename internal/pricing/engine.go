package pricing

// Package pricing computes installment quotes under a term-keyed rate schedule.

import (
	"fmt"
	"math"
	"sort"
)

// RateTable maps a term length in months to the effective monthly rate.
type RateTable map[int]float64

// defaultRates covers the financing terms offered on the landing pages.
var defaultRates = RateTable{
	6:  0.019,
	9:  0.017,
	12: 0.016,
	18: 0.014,
	24: 0.012,
	36: 0.011,
}

// Quote is the immutable result of an installment computation.
type Quote struct {
	PeriodicPayment   float64 `json:"periodicPayment"`
	DownPaymentAmount float64 `json:"downPaymentAmount"`
	TermMonths        int     `json:"term"`
	MonthlyRate       float64 `json:"rate"`
}

// ValidationError identifies which pricing argument violated the input contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Engine struct {
	rates RateTable
	terms []int
}

func NewEngine() *Engine {
	return NewEngineWithRates(defaultRates)
}

func NewEngineWithRates(rates RateTable) *Engine {
	if len(rates) == 0 {
		rates = defaultRates
	}
	terms := make([]int, 0, len(rates))
	for term := range rates {
		terms = append(terms, term)
	}
	sort.Ints(terms)

	copied := make(RateTable, len(rates))
	for term, rate := range rates {
		copied[term] = rate
	}

	return &Engine{rates: copied, terms: terms}
}

// ComputeInstallment converts (principal, term, down payment) into a periodic
// payment. The amount net of the down payment is amortized with a fixed-payment
// annuity and the result is rounded up to the next whole currency unit.
func (e *Engine) ComputeInstallment(principal float64, termMonths int, downPaymentPercent float64) (Quote, error) {
	if termMonths <= 0 {
		return Quote{}, &ValidationError{Field: "termMonths", Reason: "must be greater than zero"}
	}
	if downPaymentPercent < 0 || downPaymentPercent > 100 {
		return Quote{}, &ValidationError{Field: "downPaymentPercent", Reason: "must be between 0 and 100"}
	}

	rate := e.RateFor(termMonths)
	if principal <= 0 {
		return Quote{TermMonths: termMonths, MonthlyRate: rate}, nil
	}

	downPayment := principal * downPaymentPercent / 100
	financed := principal - downPayment

	return Quote{
		PeriodicPayment:   math.Ceil(annuityPayment(financed, rate, termMonths)),
		DownPaymentAmount: downPayment,
		TermMonths:        termMonths,
		MonthlyRate:       rate,
	}, nil
}

// RateFor returns the schedule rate for the largest tabled term not exceeding
// termMonths. Terms shorter than the whole table use the shortest term's rate.
func (e *Engine) RateFor(termMonths int) float64 {
	selected := e.terms[0]
	for _, term := range e.terms {
		if term > termMonths {
			break
		}
		selected = term
	}
	return e.rates[selected]
}

func annuityPayment(principal, rate float64, termMonths int) float64 {
	if rate == 0 {
		return principal / float64(termMonths)
	}
	factor := math.Pow(1+rate, float64(termMonths))
	return principal * rate * factor / (factor - 1)
}
