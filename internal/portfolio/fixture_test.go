package portfolio

import "testing"

func sampleVentures() []Venture {
	return []Venture{
		{ID: "1", Name: "VCTronics", Tagline: "Wearable diagnostics for continuous care", Description: "Clinical-grade sensors that stream vitals to care teams in real time.", Category: CategoryHealth, Stage: StageGrowth, Founded: "2020", Featured: true},
		{ID: "2", Name: "Cortexa", Tagline: "Reasoning engines for enterprise decisions", Description: "Decision support models trained on private operating data.", Category: CategoryAI, Stage: StageMVP, Founded: "2023", Featured: true},
		{ID: "3", Name: "Lumina Materials", Tagline: "Self-healing surfaces at industrial scale", Description: "Develops nano-material coatings that repair micro-fractures in aircraft skins.", Category: CategoryNanotech, Stage: StageScale, Founded: "2021", Featured: true},
		{ID: "4", Name: "Helix Labs", Tagline: "Open research into protein folding", Description: "University spin-out acquired by a global pharma group.", Category: CategoryResearch, Stage: StageExit, Founded: "2019"},
		{ID: "5", Name: "Brightpath", Tagline: "Adaptive tutoring for every classroom", Description: "Lesson plans that adjust to each student's pace.", Category: CategoryEducation, Stage: StageGrowth, Founded: "2022"},
		{ID: "6", Name: "Parcel & Pine", Tagline: "Sustainable home goods, delivered monthly", Description: "A subscription box of low-waste household staples.", Category: CategoryConsumer, Stage: StageIdeation, Founded: "2024"},
		{ID: "7", Name: "Ledgerly", Tagline: "Bookkeeping automation for small teams", Description: "Reconciles bank feeds and invoices without spreadsheets.", Category: CategorySaaS, Stage: StageScale, Founded: "2021", Featured: true},
		{ID: "8", Name: "ShiftDesk", Tagline: "Scheduling for hourly workforces", Description: "Shift swaps, time clocks and payroll exports in one place.", Category: CategorySaaS, Stage: StageMVP, Founded: "2020"},
		{ID: "9", Name: "Quorum Cloud", Tagline: "Board management platform", Description: "Secure board packs, votes and minutes for public companies.", Category: CategorySaaS, Stage: StageExit, Founded: "2018", Featured: true},
	}
}

func sampleCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(sampleVentures())
	if err != nil {
		t.Fatalf("building sample catalog: %v", err)
	}
	return c
}

func ids(vs []Venture) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}
