package safety

import (
	"errors"
	"testing"
)

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		want    Tier
		wantErr bool
	}{
		{"young child", 5, TierChild, false},
		{"last child year", 10, TierChild, false},
		{"first teen year", 11, TierTeen, false},
		{"last teen year", 14, TierTeen, false},
		{"first adult year", 15, TierAdult, false},
		{"adult", 42, TierAdult, false},
		{"lower bound", 3, TierChild, false},
		{"upper bound", 120, TierAdult, false},
		{"too young", 2, "", true},
		{"too old", 121, "", true},
		{"negative", -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTier(tt.age)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveTier(%d) error = %v, wantErr %v", tt.age, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrImplausibleAge) {
				t.Errorf("expected ErrImplausibleAge, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveTier(%d) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name         string
		text         string
		tier         Tier
		wantAllowed  bool
		wantSeverity Severity
	}{
		{"high risk blocks child", "c'est quoi le terrorisme ?", TierChild, false, SeverityHigh},
		{"high risk blocks teen", "le suicide augmente, vrai ?", TierTeen, false, SeverityHigh},
		{"high risk ignored for adult", "le suicide augmente, vrai ?", TierAdult, true, SeveritySafe},
		{"medium risk blocks child", "la drogue est dangereuse ?", TierChild, false, SeverityMedium},
		{"medium risk flags teen", "la drogue est dangereuse ?", TierTeen, true, SeverityMedium},
		{"medium risk ignored for adult", "la drogue est dangereuse ?", TierAdult, true, SeveritySafe},
		{"supervision blocks child", "la guerre est finie ?", TierChild, false, SeveritySupervision},
		{"supervision ignored for teen", "la guerre est finie ?", TierTeen, true, SeveritySafe},
		{"case insensitive", "VIOLENCE partout", TierChild, false, SeverityMedium},
		{"high wins over medium", "violence et meurtre", TierChild, false, SeverityHigh},
		{"safe question", "les chats ont-ils 9 vies ?", TierChild, true, SeveritySafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Classify(tt.text, tt.tier)
			if v.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", v.Allowed, tt.wantAllowed)
			}
			if v.Severity != tt.wantSeverity {
				t.Errorf("Severity = %v, want %v", v.Severity, tt.wantSeverity)
			}
			if !v.Allowed && v.Refusal == "" {
				t.Error("blocked verdict must carry a refusal message")
			}
			if v.Allowed && v.Refusal != "" {
				t.Error("allowed verdict must not carry a refusal message")
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier()
	first := c.Classify("la drogue est dangereuse ?", TierTeen)
	second := c.Classify("la drogue est dangereuse ?", TierTeen)
	if first != second {
		t.Errorf("verdicts differ between identical calls: %+v vs %+v", first, second)
	}
}
