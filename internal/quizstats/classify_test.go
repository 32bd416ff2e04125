package quizstats

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		average float64
		best    float64
		want    Status
	}{
		{"both thresholds met", 80, 90, StatusMastered},
		{"high average but best below 90", 85, 85, StatusLearning},
		{"average below 80 with high best", 79, 95, StatusLearning},
		{"learning via best alone", 50, 70, StatusLearning},
		{"learning via average alone", 60, 0, StatusLearning},
		{"below every threshold", 50, 50, StatusNew},
		{"zero scores", 0, 0, StatusNew},
		{"perfect", 100, 100, StatusMastered},
		{"boundary just under learning", 59.99, 69.99, StatusNew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.average, tt.best)
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.average, tt.best, got, tt.want)
			}
		})
	}
}
