package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BadgeCategory groups achievements.
type BadgeCategory string

const (
	BadgeWasteReduction BadgeCategory = "waste_reduction"
	BadgeMoneySaved     BadgeCategory = "money_saved"
	BadgeEnvironmental  BadgeCategory = "environmental"
	BadgeSocial         BadgeCategory = "social"
)

// LevelStepKg is the food waste needed per level.
var LevelStepKg = decimal.NewFromInt(10)

// Badge is an achievement earned by crossing a cumulative threshold.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	EarnedAt    time.Time
	Category    BadgeCategory
}

type badgeRule struct {
	badge   Badge
	reached func(SustainabilityImpact) bool
}

var badgeRules = []badgeRule{
	{
		badge: Badge{ID: "first-rescue", Name: "First Rescue", Description: "Rescued the first item", Icon: "🥕", Category: BadgeSocial},
		reached: func(i SustainabilityImpact) bool {
			return i.ItemsRescued >= 1
		},
	},
	{
		badge: Badge{ID: "eco-warrior", Name: "Eco Warrior", Description: "Prevented more than 40 kg of food waste", Icon: "🌱", Category: BadgeWasteReduction},
		reached: func(i SustainabilityImpact) bool {
			return i.FoodWastePreventedKg.GreaterThanOrEqual(decimal.NewFromInt(40))
		},
	},
	{
		badge: Badge{ID: "money-saver", Name: "Money Saver", Description: "Saved more than R$ 200", Icon: "💰", Category: BadgeMoneySaved},
		reached: func(i SustainabilityImpact) bool {
			return i.MoneySaved.GreaterThanOrEqual(decimal.NewFromInt(200))
		},
	},
	{
		badge: Badge{ID: "planet-friend", Name: "Planet Friend", Description: "Avoided 20 kg of CO2 emissions", Icon: "🌍", Category: BadgeEnvironmental},
		reached: func(i SustainabilityImpact) bool {
			return i.CO2SavedKg.GreaterThanOrEqual(decimal.NewFromInt(20))
		},
	},
}

// SustainabilityStats summarises one user's rescue history.
type SustainabilityStats struct {
	TotalImpact          SustainabilityImpact
	MonthlyImpact        SustainabilityImpact
	WeeklyImpact         SustainabilityImpact
	Badges               []Badge
	Level                int
	NextLevelRequirement decimal.Decimal
	GlobalRanking        int
}

// ComputeStats derives the stats of userID from every order in the system.
// Cancelled orders count for nobody.
func ComputeStats(userID string, all []*Order, now time.Time) SustainabilityStats {
	mine := make([]*Order, 0)
	perUser := map[string]decimal.Decimal{}
	for _, o := range all {
		if o.IsCancelled() {
			continue
		}
		current, ok := perUser[o.UserID]
		if !ok {
			current = decimal.Zero
		}
		perUser[o.UserID] = current.Add(o.SustainabilityImpact.FoodWastePreventedKg)
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.Before(mine[j].CreatedAt) })

	stats := SustainabilityStats{
		TotalImpact:   ZeroImpact(),
		MonthlyImpact: ZeroImpact(),
		WeeklyImpact:  ZeroImpact(),
		Badges:        []Badge{},
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := now.Add(-7 * 24 * time.Hour)
	earned := map[string]bool{}
	for _, o := range mine {
		stats.TotalImpact = stats.TotalImpact.Add(o.SustainabilityImpact)
		if !o.CreatedAt.Before(monthStart) {
			stats.MonthlyImpact = stats.MonthlyImpact.Add(o.SustainabilityImpact)
		}
		if o.CreatedAt.After(weekStart) {
			stats.WeeklyImpact = stats.WeeklyImpact.Add(o.SustainabilityImpact)
		}
		for _, rule := range badgeRules {
			if earned[rule.badge.ID] || !rule.reached(stats.TotalImpact) {
				continue
			}
			earned[rule.badge.ID] = true
			badge := rule.badge
			badge.EarnedAt = o.CreatedAt
			stats.Badges = append(stats.Badges, badge)
		}
	}

	stats.Level = int(stats.TotalImpact.FoodWastePreventedKg.Div(LevelStepKg).Floor().IntPart()) + 1
	stats.NextLevelRequirement = LevelStepKg.Mul(decimal.NewFromInt(int64(stats.Level)))
	if len(mine) > 0 {
		stats.GlobalRanking = 1
		own := perUser[userID]
		for user, kg := range perUser {
			if user != userID && kg.GreaterThan(own) {
				stats.GlobalRanking++
			}
		}
	}
	return stats
}
