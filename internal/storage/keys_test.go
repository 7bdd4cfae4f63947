package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{BillKey(1), "bill/0000000001"},
		{BillKey(4294967295), "bill/4294967295"},
		{BillCounterKey(), "bill_counter"},
		{AccountKey("Alice@Example.com"), "account/alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.key.String())
			require.Equal(t, []byte(tt.want), tt.key.Bytes())
		})
	}
}

func TestBillKeysSortByID(t *testing.T) {
	require.Less(t, BillKey(2).String(), BillKey(10).String())
}
