package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNumber(t *testing.T) {
	cases := []struct {
		name string
		last string
		want string
	}{
		{name: "first invoice", last: "", want: "INV-0001"},
		{name: "increments", last: "INV-0042", want: "INV-0043"},
		{name: "pads to four digits", last: "INV-0009", want: "INV-0010"},
		{name: "grows past padding", last: "INV-9999", want: "INV-10000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextNumber(tc.last)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextNumberMalformed(t *testing.T) {
	_, err := NextNumber("INVOICE42")
	require.Error(t, err)

	_, err = NextNumber("INV-abc")
	require.Error(t, err)
}
