package servo

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		moves []Move
		mode  SendMode
		want  string
	}{
		{[]Move{{0, 90}}, SendSingle, "0,90"},
		{[]Move{{0, 90}}, SendBatch, "0,90"},
		{[]Move{{0, 45}, {1, 90}, {2, 135}, {3, 180}}, SendBatch, "0,45;1,90;2,135;3,180"},
		{[]Move{{0, 45}, {1, 90}, {2, 135}, {3, 180}}, SendSingle, "0,45"},
		{[]Move{{3, 0}, {0, 180}}, SendBatch, "3,0;0,180"},
	}

	for _, tt := range tests {
		got := Encode(tt.moves, tt.mode)
		if got != tt.want {
			t.Errorf("Encode(%v, %s) = %q, want %q", tt.moves, tt.mode, got, tt.want)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	moves := []Move{{2, 10}, {0, 20}, {3, 30}, {1, 40}}
	first := Encode(moves, SendBatch)
	for i := 0; i < 10; i++ {
		if got := Encode(moves, SendBatch); got != first {
			t.Fatalf("Encode changed between calls: %q vs %q", got, first)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		moves   []Move
		wantErr error
	}{
		{[]Move{{0, 0}}, nil},
		{[]Move{{3, 180}}, nil},
		{nil, ErrEmptyBatch},
		{[]Move{{0, 90}, {4, 90}}, ErrOutOfRange},
		{[]Move{{0, 181}}, ErrOutOfRange},
	}

	for _, tt := range tests {
		err := Validate(tt.moves)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Validate(%v) = %v, want %v", tt.moves, err, tt.wantErr)
		}
	}
}

func TestRangeError_Message(t *testing.T) {
	err := &RangeError{Field: "angle", Value: 200, Min: 0, Max: 180}
	want := "angle 200 out of range [0, 180]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCenterMoves(t *testing.T) {
	moves := CenterMoves()
	if len(moves) != NumChannels {
		t.Fatalf("CenterMoves returned %d moves, want %d", len(moves), NumChannels)
	}
	for i, m := range moves {
		if m.Channel != i || m.Angle != CenterAngle {
			t.Errorf("CenterMoves()[%d] = %+v", i, m)
		}
	}
}
