package common

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ModernExodus/tontoken/lib/common"
)

func TestParseAmountFromString(t *testing.T) {
	cases := map[string]common.Amount{
		"1":             common.Amount(1),
		"1.000000":      common.Tontokens(1),
		"1,000.000000":  common.Tontokens(1000),
		"1_000_000_000": common.Tontokens(1000),
	}

	for input, expected := range cases {
		amount, err := ParseAmountFromString(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, amount, input)
	}

	_, err := ParseAmountFromString("-1")
	require.Error(t, err)
	_, err = ParseAmountFromString("1e6")
	require.Error(t, err)
}

func TestListFlags(t *testing.T) {
	var l ListFlags
	require.NoError(t, l.Set("a"))
	require.NoError(t, l.Set("b"))
	require.Equal(t, "a b", l.String())
}

func TestEncodes(t *testing.T) {
	v := map[string]interface{}{"balance": common.Tontokens(1)}

	{
		var b bytes.Buffer
		require.NoError(t, DefaultEncodes["json"](v, &b))
		require.Equal(t, "{\"balance\":\"1000000\"}\n", b.String())
	}
	{
		var b bytes.Buffer
		require.NoError(t, DefaultEncodes["yaml"](v, &b))
		require.Equal(t, "balance: \"1000000\"\n", b.String())
	}
}

func TestSignalContext(t *testing.T) {
	ctx, cancel := SignalContext(context.Background())
	require.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()
	require.Equal(t, context.Canceled, ctx.Err())
}
