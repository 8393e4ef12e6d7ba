package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ModernExodus/tontoken/lib/common"
	"github.com/ModernExodus/tontoken/lib/errors"
)

func errorString(err error) string {
	if e, ok := err.(*errors.Error); ok {
		if len(e.Data) > 0 {
			return fmt.Sprintf("%s; %v", e.Message, e.Data)
		}
		return e.Message
	}
	return err.Error()
}

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints the error without usage; the errors of the ledger are
// not the mistakes of command line.
func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorString(err))
	}

	os.Exit(1)
}

// Parse an input string as an amount in borks
//
// Commas (','), and dots ('.') and underscores ('_')
// are treated as digit separator, and not decimal separators,
// and will be skipped; `1.000000` is 1 TONT.
func ParseAmountFromString(input string) (common.Amount, error) {
	amountStr := strings.Replace(input, ",", "", -1)
	amountStr = strings.Replace(amountStr, ".", "", -1)
	amountStr = strings.Replace(amountStr, "_", "", -1)
	return common.AmountFromString(amountStr)
}

type ListFlags []string

var _ pflag.Value = (*ListFlags)(nil)

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
