package payroll

import "github.com/shopspring/decimal"

// Tier is one row of a contribution table. A tier applies to salaries up to and
// including UpTo; a nil UpTo matches every salary. When Fixed is set the tier yields that
// amount, otherwise salary × Rate bounded by Floor and Cap (nil bounds are open).
type Tier struct {
	UpTo  *decimal.Decimal
	Fixed *decimal.Decimal
	Rate  decimal.Decimal
	Floor *decimal.Decimal
	Cap   *decimal.Decimal
}

// Schedule is an ordered tier table; the first matching tier wins.
type Schedule []Tier

func (s Schedule) Apply(salary decimal.Decimal) decimal.Decimal {
	for _, t := range s {
		if t.UpTo != nil && salary.GreaterThan(*t.UpTo) {
			continue
		}
		return t.amount(salary)
	}
	return decimal.Zero
}

func (t Tier) amount(salary decimal.Decimal) decimal.Decimal {
	if t.Fixed != nil {
		return *t.Fixed
	}
	v := salary.Mul(t.Rate)
	if t.Cap != nil && v.GreaterThan(*t.Cap) {
		v = *t.Cap
	}
	if t.Floor != nil && v.LessThan(*t.Floor) {
		v = *t.Floor
	}
	return v
}

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var (
	SSSSchedule = Schedule{
		{UpTo: amt("4000"), Fixed: amt("180.00")},
		{UpTo: amt("25000"), Rate: decimal.RequireFromString("0.045"), Cap: amt("1125.00")},
		{Fixed: amt("1125.00")},
	}

	PhilHealthSchedule = Schedule{
		{Rate: decimal.RequireFromString("0.025"), Floor: amt("500.00"), Cap: amt("5000.00")},
	}

	PagIBIGSchedule = Schedule{
		{UpTo: amt("1500"), Rate: decimal.RequireFromString("0.01")},
		{Rate: decimal.RequireFromString("0.02"), Cap: amt("200.00")},
	}
)

func SSS(salary decimal.Decimal) decimal.Decimal {
	return SSSSchedule.Apply(salary)
}

func PhilHealth(salary decimal.Decimal) decimal.Decimal {
	return PhilHealthSchedule.Apply(salary)
}

func PagIBIG(salary decimal.Decimal) decimal.Decimal {
	return PagIBIGSchedule.Apply(salary)
}

// GovernmentContributions computes all three contributions for a monthly salary.
func GovernmentContributions(monthlySalary decimal.Decimal) Contributions {
	return Contributions{
		SSS:        SSS(monthlySalary),
		PhilHealth: PhilHealth(monthlySalary),
		PagIBIG:    PagIBIG(monthlySalary),
	}
}
