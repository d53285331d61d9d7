package reports

import (
	"testing"

	"github.com/bottegalab/gestionale/internal/models"
)

func reg(childID, workshopID string) models.Registration {
	return models.Registration{ChildID: childID, WorkshopID: workshopID}
}

func TestPerParticipant(t *testing.T) {
	workshops := []models.Workshop{
		{ID: "w1", Name: "Robotica"},
		{ID: "w2", Name: "Pittura"},
		{ID: "w3", Name: "Deserto"}, // zero registrations: must be excluded
	}
	registrations := []models.Registration{
		reg("c1", "w1"), reg("c2", "w1"), reg("c3", "w1"), reg("c4", "w1"),
		reg("c1", "w2"), reg("c2", "w2"),
	}
	payments := []models.Payment{
		pay("w1", "400.00", models.MethodCash),
		pay("w2", "100.00", models.MethodTransfer),
	}
	costs := []models.OperationalCost{
		// split equally between w1 and w2: 50 each
		{Amount: amt("100.00"), WorkshopIDs: []string{"w1", "w2"}},
	}

	stats := PerParticipant(workshops, registrations, payments, costs)
	if len(stats.Workshops) != 2 {
		t.Fatalf("want 2 qualifying workshops, got %d", len(stats.Workshops))
	}

	byName := map[string]WorkshopEconomics{}
	for _, e := range stats.Workshops {
		byName[e.WorkshopName] = e
	}

	w1 := byName["Robotica"]
	if w1.Participants != 4 {
		t.Errorf("Robotica participants: want 4, got %d", w1.Participants)
	}
	if !w1.RevenuePerParticipant.Equal(amt("100.00")) {
		t.Errorf("Robotica revenue/participant: want 100.00, got %s", w1.RevenuePerParticipant)
	}
	if !w1.ProfitPerParticipant.Equal(amt("87.50")) { // (400-50)/4
		t.Errorf("Robotica profit/participant: want 87.50, got %s", w1.ProfitPerParticipant)
	}

	w2 := byName["Pittura"]
	if !w2.RevenuePerParticipant.Equal(amt("50.00")) {
		t.Errorf("Pittura revenue/participant: want 50.00, got %s", w2.RevenuePerParticipant)
	}

	if !stats.MinRevenuePerParticipant.Equal(amt("50.00")) {
		t.Errorf("min: want 50.00, got %s", stats.MinRevenuePerParticipant)
	}
	if !stats.MaxRevenuePerParticipant.Equal(amt("100.00")) {
		t.Errorf("max: want 100.00, got %s", stats.MaxRevenuePerParticipant)
	}
	if !stats.AvgRevenuePerParticipant.Equal(amt("75.00")) {
		t.Errorf("avg: want 75.00, got %s", stats.AvgRevenuePerParticipant)
	}
}

func TestPerParticipant_NoQualifyingWorkshops(t *testing.T) {
	workshops := []models.Workshop{{ID: "w1", Name: "Vuoto"}}
	stats := PerParticipant(workshops, nil, nil, nil)
	if len(stats.Workshops) != 0 {
		t.Fatalf("want no rows, got %d", len(stats.Workshops))
	}
	if !stats.AvgRevenuePerParticipant.IsZero() {
		t.Errorf("avg with no rows: want 0, got %s", stats.AvgRevenuePerParticipant)
	}
}
