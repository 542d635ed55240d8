package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		machine *Machine
		want    string
		wantErr bool
	}{
		{
			name: "public address preferred",
			machine: &Machine{
				Name:          "m1",
				PublicAddress: "203.0.113.10",
				Networks:      []Network{{Kind: NetworkPrivate, IP: "10.0.0.5"}},
			},
			want: "203.0.113.10",
		},
		{
			name: "loopback public address falls back to private network",
			machine: &Machine{
				Name:          "m1",
				PublicAddress: "127.0.0.1",
				Networks:      []Network{{Kind: NetworkPrivate, IP: "10.0.0.5"}},
			},
			want: "10.0.0.5",
		},
		{
			name: "non private networks are skipped",
			machine: &Machine{
				Name: "a1",
				Networks: []Network{
					{Kind: NetworkForwardedPort, IP: "192.168.1.1"},
					{Kind: NetworkPrivate, IP: "10.0.0.8"},
				},
			},
			want: "10.0.0.8",
		},
		{
			name:    "nothing usable",
			machine: &Machine{Name: "a2", PublicAddress: "::1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveAddress(tt.machine)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoAddressFound))
				var nerr *NoAddressFoundError
				require.ErrorAs(t, err, &nerr)
				assert.Equal(t, tt.machine.Name, nerr.Machine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
