package plans

import "fmt"

type Tier string

const (
	Daily      Tier = "daily"
	Weekly     Tier = "weekly"
	Monthly    Tier = "monthly"
	HalfYearly Tier = "half_yearly"
	Yearly     Tier = "yearly"
)

// SaunaGrant is replenished on every renewal of a qualifying plan.
const SaunaGrant = 4

// Plan is one subscription tier: a fixed price, a fixed duration and
// whether renewal replenishes the sauna counter.
type Plan struct {
	Tier         Tier
	Price        int64 // minor units (kopecks/cents)
	DurationDays int
	GrantsSauna  bool
}

// Catalog maps every tier to its plan. Built once at startup and passed
// to the services; never mutated afterwards.
type Catalog struct {
	plans map[Tier]Plan
}

func DefaultCatalog() *Catalog {
	return &Catalog{plans: map[Tier]Plan{
		Daily:      {Tier: Daily, Price: 200_00, DurationDays: 1},
		Weekly:     {Tier: Weekly, Price: 1_000_00, DurationDays: 7},
		Monthly:    {Tier: Monthly, Price: 3_000_00, DurationDays: 30, GrantsSauna: true},
		HalfYearly: {Tier: HalfYearly, Price: 15_000_00, DurationDays: 180, GrantsSauna: true},
		Yearly:     {Tier: Yearly, Price: 30_000_00, DurationDays: 365, GrantsSauna: true},
	}}
}

func (c *Catalog) Get(t Tier) (Plan, bool) {
	p, ok := c.plans[t]
	return p, ok
}

// SaunaBaseline is the session count a member starts (or restarts) with
// on the given tier.
func (c *Catalog) SaunaBaseline(t Tier) int {
	if p, ok := c.plans[t]; ok && p.GrantsSauna {
		return SaunaGrant
	}
	return 0
}

func (c *Catalog) Tiers() []Tier {
	return []Tier{Daily, Weekly, Monthly, HalfYearly, Yearly}
}

func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case Daily, Weekly, Monthly, HalfYearly, Yearly:
		return Tier(s), nil
	}
	return "", fmt.Errorf("plans: unknown tier %q", s)
}

// FormatAmount renders minor units with two decimals for display and export.
func FormatAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
