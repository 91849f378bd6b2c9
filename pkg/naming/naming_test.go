package naming

import "testing"

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"development", "Development"},
		{"staging", "Staging"},
		{"demo", "Demo"},
		{"production", "Production"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayLabel(tt.in); got != tt.want {
			t.Fatalf("DisplayLabel(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStackName(t *testing.T) {
	if got := StackName("", "staging"); got != "StagingTanStackStartRootStack" {
		t.Fatalf("StackName default app: %q", got)
	}
	if got := StackName("Shop", "production"); got != "ProductionShopRootStack" {
		t.Fatalf("StackName custom app: %q", got)
	}
}

func TestDistributionComment(t *testing.T) {
	if got := DistributionComment("", "demo"); got != "DemoTanStackStartCDK" {
		t.Fatalf("DistributionComment: %q", got)
	}
}
