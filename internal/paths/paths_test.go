package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/groups.json", want: filepath.Join(home, "groups.json")},
		{in: "~/a/../b.db", want: filepath.Join(home, "b.db")},
		{in: "~other/x", want: "~other/x"},
		{in: "data/./groups.yaml", want: filepath.Join("data", "groups.yaml")},
		{in: "/abs/groups.xml", want: "/abs/groups.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "pulsar"), ConfigDir())
}
