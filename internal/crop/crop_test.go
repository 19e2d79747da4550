package crop

import "testing"

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }

func TestEntrySummary(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name: "all fields",
			entry: Entry{
				TotalSeedCost:   f64(12.5),
				PoundsHarvested: i32(340),
				TotalRevenue:    f64(410),
				TotalProfit:     f64(397.5),
			},
			want: "Seed cost: $12.5, Harvested: 340 lbs, Revenue: $410, Profit: $397.5",
		},
		{
			name:  "missing fields render as n/a",
			entry: Entry{TotalSeedCost: f64(8)},
			want:  "Seed cost: $8, Harvested: n/a lbs, Revenue: $n/a, Profit: $n/a",
		},
		{
			name: "negative profit",
			entry: Entry{
				TotalSeedCost:   f64(50),
				PoundsHarvested: i32(10),
				TotalRevenue:    f64(20),
				TotalProfit:     f64(-30),
			},
			want: "Seed cost: $50, Harvested: 10 lbs, Revenue: $20, Profit: $-30",
		},
		{
			name: "cents are kept",
			entry: Entry{
				TotalSeedCost:   f64(3.25),
				PoundsHarvested: i32(5),
				TotalRevenue:    f64(10.1),
				TotalProfit:     f64(6.85),
			},
			want: "Seed cost: $3.25, Harvested: 5 lbs, Revenue: $10.1, Profit: $6.85",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
