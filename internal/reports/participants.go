package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bottegalab/gestionale/internal/models"
)

// WorkshopEconomics is one workshop's financial line in the participants
// report.
type WorkshopEconomics struct {
	WorkshopID   string          `json:"workshopId"`
	WorkshopName string          `json:"workshopName"`
	Participants int             `json:"participants"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`

	RevenuePerParticipant decimal.Decimal `json:"revenuePerParticipant"`
	ProfitPerParticipant  decimal.Decimal `json:"profitPerParticipant"`
}

// ParticipantStats aggregates per-participant revenue across all workshops
// that have at least one registration.
type ParticipantStats struct {
	Workshops []WorkshopEconomics `json:"workshops"`

	MinRevenuePerParticipant decimal.Decimal `json:"minRevenuePerParticipant"`
	AvgRevenuePerParticipant decimal.Decimal `json:"avgRevenuePerParticipant"`
	MaxRevenuePerParticipant decimal.Decimal `json:"maxRevenuePerParticipant"`
}

// PerParticipant computes revenue and profit per enrolled child, workshop by
// workshop. Workshops with zero registrations carry no per-participant
// figure and are excluded entirely, so no division by zero ever happens.
// A cost tagged with several workshops is split equally between them.
func PerParticipant(workshops []models.Workshop, registrations []models.Registration, payments []models.Payment, costs []models.OperationalCost) ParticipantStats {
	regCount := make(map[string]int)
	for _, r := range registrations {
		regCount[r.WorkshopID]++
	}

	revenue := make(map[string]decimal.Decimal)
	for _, p := range payments {
		revenue[p.WorkshopID] = revenue[p.WorkshopID].Add(p.Amount)
	}

	costShare := make(map[string]decimal.Decimal)
	for _, c := range costs {
		if len(c.WorkshopIDs) == 0 {
			continue
		}
		share := c.Amount.DivRound(decimal.NewFromInt(int64(len(c.WorkshopIDs))), 2)
		for _, id := range c.WorkshopIDs {
			costShare[id] = costShare[id].Add(share)
		}
	}

	stats := ParticipantStats{Workshops: make([]WorkshopEconomics, 0, len(workshops))}
	for _, w := range workshops {
		n := regCount[w.ID]
		if n == 0 {
			continue
		}
		participants := decimal.NewFromInt(int64(n))
		rev := revenue[w.ID]
		cost := costShare[w.ID]
		e := WorkshopEconomics{
			WorkshopID:            w.ID,
			WorkshopName:          w.Name,
			Participants:          n,
			Revenue:               rev,
			Cost:                  cost,
			Profit:                rev.Sub(cost),
			RevenuePerParticipant: rev.DivRound(participants, 2),
			ProfitPerParticipant:  rev.Sub(cost).DivRound(participants, 2),
		}
		stats.Workshops = append(stats.Workshops, e)
	}

	sort.Slice(stats.Workshops, func(i, j int) bool {
		return stats.Workshops[i].WorkshopName < stats.Workshops[j].WorkshopName
	})

	if len(stats.Workshops) == 0 {
		return stats
	}

	sum := decimal.Zero
	stats.MinRevenuePerParticipant = stats.Workshops[0].RevenuePerParticipant
	stats.MaxRevenuePerParticipant = stats.Workshops[0].RevenuePerParticipant
	for _, e := range stats.Workshops {
		sum = sum.Add(e.RevenuePerParticipant)
		if e.RevenuePerParticipant.LessThan(stats.MinRevenuePerParticipant) {
			stats.MinRevenuePerParticipant = e.RevenuePerParticipant
		}
		if e.RevenuePerParticipant.GreaterThan(stats.MaxRevenuePerParticipant) {
			stats.MaxRevenuePerParticipant = e.RevenuePerParticipant
		}
	}
	stats.AvgRevenuePerParticipant = sum.DivRound(decimal.NewFromInt(int64(len(stats.Workshops))), 2)
	return stats
}
