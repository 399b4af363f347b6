package catalog

import (
	"fmt"

	"github.com/finwellhq/personaflow/internal/model"
)

// Criterion thresholds. Tuned against the behavioral-signal distributions
// observed upstream; kept in one place so product can review them.
const (
	utilizationElevatedPct = 50.0
	utilizationSeverePct   = 80.0

	overdraftCountMin  = 3
	monthlyFeesMinUSD  = 30.0
	atmFeeCountMin     = 3
	lateFeeAccountsMin = 1

	payGapIrregularDays  = 45.0
	bufferThinMonths     = 1.0
	incomeVariationMinCV = 0.30
	incomeSourcesMin     = 2

	recurringMerchantsMin = 5
	recurringSpendMinUSD  = 100.0
	subscriptionSharePct  = 10.0
	subscriptionIncomePct = 5.0

	savingsGrowthMinPct  = 2.0
	savingsBalanceMinUSD = 500.0
	bufferHealthyMonths  = 3.0
)

// DefaultPersonas returns the built-in persona catalog. Order matters: it is
// the final tie-break when match count and risk tier are both equal.
func DefaultPersonas() []model.PersonaDefinition {
	return []model.PersonaDefinition{
		creditRevolver(),
		feeFighter(),
		incomeSmoother(),
		subscriptionAuditor(),
		momentumSaver(),
	}
}

func creditRevolver() model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:                "high_utilization",
		Name:              "Credit Revolver",
		Description:       "Carries high revolving balances and pays for it in interest.",
		RiskTier:          model.RiskCritical,
		FocusArea:         "credit",
		RationaleTemplate: "Credit usage signals need attention: %s",
		Criteria: []model.Criterion{
			{
				Name: "utilization_elevated",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					u := s.Credit.MaxUtilizationPct
					if u >= utilizationElevatedPct {
						return true, fmt.Sprintf("credit utilization at %.0f%% (above %.0f%%)", u, utilizationElevatedPct)
					}
					return false, ""
				},
			},
			{
				Name: "utilization_severe",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					u := s.Credit.MaxUtilizationPct
					if u >= utilizationSeverePct {
						return true, fmt.Sprintf("credit utilization at %.0f%% is in the severe range", u)
					}
					return false, ""
				},
			},
			{
				Name: "interest_charges",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					if s.Credit.HasInterestCharges {
						return true, "paying interest charges on carried balances"
					}
					return false, ""
				},
			},
			{
				Name: "minimum_payments",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					if s.Credit.MinimumPaymentOnly {
						return true, "making only minimum payments"
					}
					return false, ""
				},
			},
			{
				Name: "overdue_payment",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					if s.Credit.HasOverduePayment {
						return true, "has an overdue credit payment"
					}
					return false, ""
				},
			},
		},
	}
}

func feeFighter() model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:                "fee_burdened",
		Name:              "Fee Fighter",
		Description:       "Loses a meaningful share of income to avoidable bank fees.",
		RiskTier:          model.RiskHigh,
		FocusArea:         "fees",
		RationaleTemplate: "Avoidable fees are draining this account: %s",
		Criteria: []model.Criterion{
			{
				Name: "overdrafts",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					n := s.Fees.OverdraftCount90d
					if n >= overdraftCountMin {
						return true, fmt.Sprintf("%d overdraft/NSF fees in the last 90 days", n)
					}
					return false, ""
				},
			},
			{
				Name: "monthly_fees",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					f := s.Fees.TotalFeesLastMonth
					if f >= monthlyFeesMinUSD {
						return true, fmt.Sprintf("$%.2f in fees last month", f)
					}
					return false, ""
				},
			},
			{
				Name: "atm_fees",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					n := s.Fees.ATMFeeCount
					if n >= atmFeeCountMin {
						return true, fmt.Sprintf("%d out-of-network ATM fees", n)
					}
					return false, ""
				},
			},
			{
				Name: "late_fees",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					n := s.Fees.AccountsWithLateFees
					if n >= lateFeeAccountsMin {
						return true, fmt.Sprintf("late fees on %d account(s)", n)
					}
					return false, ""
				},
			},
			{
				Name: "maintenance_fees",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					if s.Fees.HasMaintenanceFees {
						return true, "paying recurring account maintenance fees"
					}
					return false, ""
				},
			},
		},
	}
}

func incomeSmoother() model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:                "variable_income",
		Name:              "Income Smoother",
		Description:       "Irregular income with a thin buffer between paychecks.",
		RiskTier:          model.RiskMedium,
		FocusArea:         "income",
		RationaleTemplate: "Income volatility calls for smoothing: %s",
		Criteria: []model.Criterion{
			{
				Name: "irregular_pay_gap",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					d := s.Income.MedianPayGapDays
					if d > payGapIrregularDays {
						return true, fmt.Sprintf("median gap between deposits is %.0f days", d)
					}
					return false, ""
				},
			},
			{
				Name: "thin_buffer",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					// Buffer is measured in months of expenses, so it means
					// nothing when no expenses were reported.
					b := s.Income.CashFlowBufferMonths
					if s.Income.AvgMonthlyExpenses > 0 && b < bufferThinMonths {
						return true, fmt.Sprintf("cash-flow buffer covers %.1f months of expenses", b)
					}
					return false, ""
				},
			},
			{
				Name: "income_variation",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					cv := s.Income.VariationCoefficient
					if cv >= incomeVariationMinCV {
						return true, fmt.Sprintf("income varies %.0f%% month to month", cv*100)
					}
					return false, ""
				},
			},
			{
				Name: "multiple_sources",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					n := s.Income.DistinctSources
					if n >= incomeSourcesMin {
						return true, fmt.Sprintf("income arrives from %d distinct sources", n)
					}
					return false, ""
				},
			},
			{
				Name: "lean_months",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					min, exp := s.Income.MinMonthlyIncome, s.Income.AvgMonthlyExpenses
					if exp > 0 && min < exp {
						return true, fmt.Sprintf("lowest month's income ($%.0f) falls below typical expenses ($%.0f)", min, exp)
					}
					return false, ""
				},
			},
		},
	}
}

func subscriptionAuditor() model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:                "subscription_heavy",
		Name:              "Subscription Auditor",
		Description:       "Recurring services have quietly become a significant spend category.",
		RiskTier:          model.RiskLow,
		FocusArea:         "subscriptions",
		RationaleTemplate: "Recurring spend is worth an audit: %s",
		Criteria: []model.Criterion{
			{
				Name: "many_merchants",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					n := s.Subscriptions.RecurringMerchants
					if n >= recurringMerchantsMin {
						return true, fmt.Sprintf("%d recurring merchants billed monthly", n)
					}
					return false, ""
				},
			},
			{
				Name: "recurring_spend",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					usd := s.Subscriptions.MonthlyRecurringUSD
					if usd >= recurringSpendMinUSD {
						return true, fmt.Sprintf("$%.0f/month in recurring charges", usd)
					}
					return false, ""
				},
			},
			{
				Name: "share_of_spend",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					p := s.Subscriptions.ShareOfSpendPct
					if p >= subscriptionSharePct {
						return true, fmt.Sprintf("subscriptions are %.0f%% of total spend", p)
					}
					return false, ""
				},
			},
			{
				Name: "share_of_income",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					p := s.Subscriptions.IncomeRatioPct
					if p >= subscriptionIncomePct {
						return true, fmt.Sprintf("subscriptions consume %.0f%% of income", p)
					}
					return false, ""
				},
			},
			{
				Name: "duplicate_categories",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					if s.Subscriptions.HasDuplicateCategory() {
						return true, "paying for overlapping services in the same category"
					}
					return false, ""
				},
			},
		},
	}
}

func momentumSaver() model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:                "savings_builder",
		Name:              "Momentum Saver",
		Description:       "Savings habit is forming; the goal is to keep it compounding.",
		RiskTier:          model.RiskMinimal,
		FocusArea:         "savings",
		RationaleTemplate: "Savings momentum worth reinforcing: %s",
		Criteria: []model.Criterion{
			{
				Name: "growth_rate",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					g := s.Savings.GrowthRatePct
					if g >= savingsGrowthMinPct {
						return true, fmt.Sprintf("savings grew %.1f%% over the window", g)
					}
					return false, ""
				},
			},
			{
				Name: "positive_inflow",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					in := s.Savings.MonthlyNetInflow
					if in > 0 {
						return true, fmt.Sprintf("net $%.0f/month flowing into savings", in)
					}
					return false, ""
				},
			},
			{
				Name: "meaningful_balance",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					b := s.Savings.TotalBalance
					if b >= savingsBalanceMinUSD {
						return true, fmt.Sprintf("savings balance of $%.0f established", b)
					}
					return false, ""
				},
			},
			{
				Name: "healthy_buffer",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					b := s.Income.CashFlowBufferMonths
					if b >= bufferHealthyMonths {
						return true, fmt.Sprintf("cash-flow buffer covers %.1f months", b)
					}
					return false, ""
				},
			},
			{
				Name: "no_overdrafts",
				Evaluate: func(s *model.FeatureSnapshot) (bool, string) {
					// Guarded on a real balance so an empty snapshot does not
					// count as a match.
					if s.Savings.TotalBalance > 0 && s.Fees.OverdraftCount90d == 0 {
						return true, "maintaining savings without overdrafts"
					}
					return false, ""
				},
			},
		},
	}
}
