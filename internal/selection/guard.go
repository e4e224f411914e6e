package selection

import (
	"fmt"

	"github.com/baldecash-team/baldecash-sub002/internal/catalog"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
)

// Reason classifies why a guard refused an addition. Reasons are rendered as
// explanatory copy, never as opaque failures.
type Reason string

const (
	ReasonCartFull           Reason = "cart_full"
	ReasonQuotaCeiling       Reason = "quota_ceiling"
	ReasonComparisonFull     Reason = "comparison_full"
	ReasonDeviceTypeMismatch Reason = "device_type_mismatch"
)

// Rejection carries the figures the UI needs to explain the shortfall: the
// violated limit, the would-be aggregate payment, or the conflicting device
// type.
type Rejection struct {
	Reason     Reason             `json:"reason"`
	Limit      float64            `json:"limit,omitempty"`
	Aggregate  float64            `json:"aggregate,omitempty"`
	DeviceType catalog.DeviceType `json:"deviceType,omitempty"`
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case ReasonCartFull:
		return fmt.Sprintf("cart is limited to %v items", r.Limit)
	case ReasonQuotaCeiling:
		return fmt.Sprintf("aggregate periodic payment %v exceeds the %v ceiling", r.Aggregate, r.Limit)
	case ReasonComparisonFull:
		return fmt.Sprintf("comparison is limited to %v items", r.Limit)
	case ReasonDeviceTypeMismatch:
		return fmt.Sprintf("comparison already holds a different device type (%s)", r.DeviceType)
	default:
		return string(r.Reason)
	}
}

// Guard is a pure decision function over immutable inputs. It never mutates a
// selection; callers commit the returned Selection only on success.
type Guard struct {
	engine           *pricing.Engine
	maxCartItems     int
	cartQuotaCeiling float64
	maxCompareItems  int
	termMonths       int
	downPaymentPct   float64
}

type GuardConfig struct {
	MaxCartItems     int
	CartQuotaCeiling float64
	MaxCompareItems  int
	TermMonths       int
	DownPaymentPct   float64
}

func NewGuard(engine *pricing.Engine, cfg GuardConfig) *Guard {
	return &Guard{
		engine:           engine,
		maxCartItems:     cfg.MaxCartItems,
		cartQuotaCeiling: cfg.CartQuotaCeiling,
		maxCompareItems:  cfg.MaxCompareItems,
		termMonths:       cfg.TermMonths,
		downPaymentPct:   cfg.DownPaymentPct,
	}
}

// TryAdd validates adding product to a cart whose current members are given.
// Re-adding a member is an idempotent no-op. The aggregate check runs against
// the true sum of member installments, not the incoming item's quota alone.
func (g *Guard) TryAdd(sel Selection, members []catalog.Product, product catalog.Product) (Selection, error) {
	if sel.Contains(product.ID) {
		return sel, nil
	}

	if sel.Len() >= g.maxCartItems {
		return sel, &Rejection{Reason: ReasonCartFull, Limit: float64(g.maxCartItems)}
	}

	aggregate := g.AggregatePayment(members) + g.installmentFor(product)
	if aggregate > g.cartQuotaCeiling {
		return sel, &Rejection{
			Reason:    ReasonQuotaCeiling,
			Limit:     g.cartQuotaCeiling,
			Aggregate: aggregate,
		}
	}

	return sel.With(product.ID), nil
}

// TryAddToComparison validates adding product to a comparison set, which is
// defined only within one device class.
func (g *Guard) TryAddToComparison(sel Selection, members []catalog.Product, product catalog.Product) (Selection, error) {
	if sel.Contains(product.ID) {
		return sel, nil
	}

	for _, member := range members {
		if member.DeviceType != product.DeviceType {
			return sel, &Rejection{Reason: ReasonDeviceTypeMismatch, DeviceType: member.DeviceType}
		}
	}

	if sel.Len() >= g.maxCompareItems {
		return sel, &Rejection{Reason: ReasonComparisonFull, Limit: float64(g.maxCompareItems)}
	}

	return sel.With(product.ID), nil
}

// AggregatePayment sums member installments at the selection's fixed
// term/down-payment.
func (g *Guard) AggregatePayment(members []catalog.Product) float64 {
	var total float64
	for _, member := range members {
		total += g.installmentFor(member)
	}
	return total
}

func (g *Guard) installmentFor(product catalog.Product) float64 {
	if product.MonthlyPrice > 0 {
		return product.MonthlyPrice
	}
	quote, err := g.engine.ComputeInstallment(product.Price, g.termMonths, g.downPaymentPct)
	if err != nil {
		return 0
	}
	return quote.PeriodicPayment
}
