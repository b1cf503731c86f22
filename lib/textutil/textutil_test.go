package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripNbsp(t *testing.T) {
	require.Equal(t, "09:00-10:30", StripNbsp("09:00&nbsp;-&nbsp;10:30"))
	require.Equal(t, "", StripNbsp("  "))
	require.Equal(t, "plain", StripNbsp("plain"))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "гму-101", NormalizeName("  ГМУ-101 "))
	require.Equal(t, "иванови.и.", NormalizeName("Иванов  И.И.\n"))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("ГМУ-101", []string{"гму-101"}))
	require.True(t, MatchName("Иванов И.И.", []string{"петров", "иванов"}))
	require.False(t, MatchName("ГМУ-101", []string{"мен"}))
}
