package player

import "testing"

func TestParsePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "def", want: PositionDefender},
		{raw: " Midfielder ", want: PositionMidfielder},
		{raw: "striker", want: PositionForward},
		{raw: "GK", want: PositionGoalkeeper},
		{raw: "", want: PositionUnknown},
		{raw: "libero", want: PositionUnknown, wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParsePosition(tc.raw)
		if tc.wantErr != (err != nil) {
			t.Fatalf("ParsePosition(%q) error=%v wantErr=%v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParsePosition(%q): got=%q want=%q", tc.raw, got, tc.want)
		}
	}
}
