package process

import (
	"errors"
	"testing"
)

// Killing a live browser is exercised by the PDF preview; here only the
// pid guard and a pid that cannot exist are checked.
func TestKillTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pid     int
		wantErr error
	}{
		{name: "zero", pid: 0, wantErr: ErrInvalidPID},
		{name: "negative", pid: -42, wantErr: ErrInvalidPID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := KillTree(tt.pid); !errors.Is(err, tt.wantErr) {
				t.Errorf("KillTree(%d) = %v, want %v", tt.pid, err, tt.wantErr)
			}
		})
	}
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	if err := KillTree(999999999); err == nil {
		t.Error("KillTree() on a missing process should report an error")
	}
}
