package model

// FeatureSnapshot holds the externally computed behavioral signals for one
// user over one time window. It is produced by the feature-aggregation
// collaborator and treated as read-only here: criteria compare against it but
// never modify it. Missing fields stay at their zero values, which simply
// fail their thresholds.
type FeatureSnapshot struct {
	UserID        string               `json:"user_id"`
	WindowDays    int                  `json:"window_days"`
	Credit        CreditFeatures       `json:"credit"`
	Income        IncomeFeatures       `json:"income"`
	Subscriptions SubscriptionFeatures `json:"subscriptions"`
	Savings       SavingsFeatures      `json:"savings"`
	Fees          FeeFeatures          `json:"fees"`
}

// CreditFeatures covers revolving-credit signals.
type CreditFeatures struct {
	// MaxUtilizationPct is the highest per-card utilization in the window.
	MaxUtilizationPct  float64 `json:"max_utilization_pct"`
	HasInterestCharges bool    `json:"has_interest_charges"`
	MinimumPaymentOnly bool    `json:"minimum_payment_only"`
	HasOverduePayment  bool    `json:"has_overdue_payment"`
}

// IncomeFeatures covers income cadence and cash-flow signals.
type IncomeFeatures struct {
	MedianPayGapDays     float64 `json:"median_pay_gap_days"`
	CashFlowBufferMonths float64 `json:"cash_flow_buffer_months"`
	// VariationCoefficient is income stddev over mean; the upstream
	// aggregator is required to supply it for the variable-income criteria.
	VariationCoefficient float64 `json:"variation_coefficient"`
	MinMonthlyIncome     float64 `json:"min_monthly_income"`
	AvgMonthlyExpenses   float64 `json:"avg_monthly_expenses"`
	DistinctSources      int     `json:"distinct_sources"`
}

// SubscriptionFeatures covers recurring-spend signals.
type SubscriptionFeatures struct {
	RecurringMerchants  int     `json:"recurring_merchants"`
	MonthlyRecurringUSD float64 `json:"monthly_recurring_usd"`
	ShareOfSpendPct     float64 `json:"share_of_spend_pct"`
	IncomeRatioPct      float64 `json:"income_ratio_pct"`
	// CategoryDuplicates maps a category to how many overlapping services the
	// user pays for in it (e.g. two music-streaming subscriptions).
	CategoryDuplicates map[string]int `json:"category_duplicates,omitempty"`
}

// HasDuplicateCategory reports whether any category carries more than one
// recurring service.
func (s SubscriptionFeatures) HasDuplicateCategory() bool {
	for _, n := range s.CategoryDuplicates {
		if n > 1 {
			return true
		}
	}
	return false
}

// SavingsFeatures covers savings balance and growth signals.
type SavingsFeatures struct {
	GrowthRatePct    float64 `json:"growth_rate_pct"`
	MonthlyNetInflow float64 `json:"monthly_net_inflow"`
	TotalBalance     float64 `json:"total_balance"`
}

// FeeFeatures covers avoidable-fee signals.
type FeeFeatures struct {
	OverdraftCount90d    int     `json:"overdraft_count_90d"`
	TotalFeesLastMonth   float64 `json:"total_fees_last_month"`
	ATMFeeCount          int     `json:"atm_fee_count"`
	AccountsWithLateFees int     `json:"accounts_with_late_fees"`
	HasMaintenanceFees   bool    `json:"has_maintenance_fees"`
}

// Valid assignment windows, in days.
const (
	WindowShort = 30
	WindowLong  = 180
)

// ValidWindow reports whether windowDays is one of the supported windows.
func ValidWindow(windowDays int) bool {
	return windowDays == WindowShort || windowDays == WindowLong
}
