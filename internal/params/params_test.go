package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		query   string
		want    Set
		wantErr bool
	}{
		{query: "", want: Set{Index: 0, Limit: 5, Offset: 0}},
		{query: "set=0", want: Set{Index: 0, Limit: 5, Offset: 0}},
		{query: "set=1", want: Set{Index: 1, Limit: 5, Offset: 5}},
		{query: "set=%203%20", want: Set{Index: 3, Limit: 5, Offset: 15}},
		{query: "set=-1", want: Set{Index: -1, Limit: 5, Offset: -5}},
		{query: "set=2000000000000000000", want: Set{Index: 2000000000000000000, Limit: 5, Offset: 0}},
		{query: "set=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseSet(q)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSet(t *testing.T) {
	assert.Equal(t, Set{Index: 2, Limit: SetSize, Offset: 10}, NewSet(2))
}

func TestMaxSetOffsetFits(t *testing.T) {
	s := NewSet(MaxSet)
	assert.Positive(t, s.Offset)
	assert.Equal(t, MaxSet*SetSize, s.Offset)
}
