package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zostay/go-mimestream/filter"
)

var (
	errUnknownFilter = errors.New("unknown filter")
	errBadArguments  = errors.New("wrong number of filter arguments")
)

// filterUsage lists the filter names newFilter accepts.
var filterUsage = []string{
	"anonymize",
	"armored-from",
	"charset:<from>:<to>[:strict]",
	"decode:<encoding>",
	"dkim-relaxed",
	"dkim-simple",
	"dos2unix",
	"dos2unix-nl",
	"encode:<encoding>",
	"mbox-from",
	"pass",
	"trailing-whitespace",
	"unix2dos",
	"unix2dos-nl",
}

// check keeps a failed constructor from returning a non-nil Filter holding a
// nil pointer.
func check[F filter.Filter](f F, err error) (filter.Filter, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

// newFilter builds a filter from a name such as "mbox-from" or
// "charset:iso-8859-1:utf-8".
func newFilter(desc string) (filter.Filter, error) {
	name, rest, _ := strings.Cut(desc, ":")

	var args []string
	if rest != "" {
		args = strings.Split(rest, ":")
	}

	wantArgs := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("filter %q: %w: want %d arguments, got %d", desc, errBadArguments, n, len(args))
		}
		return nil
	}

	switch name {
	case "decode", "encode":
		if err := wantArgs(1); err != nil {
			return nil, err
		}
		if name == "decode" {
			return check(filter.NewDecoderFor(args[0]))
		}
		return check(filter.NewEncoderFor(args[0]))
	case "charset":
		var opts []filter.CharsetOption
		if len(args) == 3 && args[2] == "strict" {
			opts = append(opts, filter.StrictEncoding())
			args = args[:2]
		}
		if err := wantArgs(2); err != nil {
			return nil, err
		}
		return check(filter.NewCharset(args[0], args[1], opts...))
	}

	if err := wantArgs(0); err != nil {
		return nil, err
	}

	switch name {
	case "pass":
		return filter.NewPassThrough(), nil
	case "mbox-from":
		return filter.NewMboxFrom(), nil
	case "armored-from":
		return filter.NewArmoredFrom(), nil
	case "dos2unix":
		return filter.NewDos2Unix(false), nil
	case "dos2unix-nl":
		return filter.NewDos2Unix(true), nil
	case "unix2dos":
		return filter.NewUnix2Dos(false), nil
	case "unix2dos-nl":
		return filter.NewUnix2Dos(true), nil
	case "trailing-whitespace":
		return filter.NewTrailingWhitespace(), nil
	case "anonymize":
		return filter.NewAnonymize(), nil
	case "dkim-simple":
		return filter.NewDkimSimpleBody(), nil
	case "dkim-relaxed":
		return filter.NewDkimRelaxedBody(), nil
	}

	return nil, fmt.Errorf("%w %q", errUnknownFilter, name)
}

// newChain builds a fresh chain of every filter named by the --filter flag.
func newChain() (filter.Chain, error) {
	descs := viper.GetStringSlice("filter")

	chain := make(filter.Chain, 0, len(descs))
	for _, desc := range descs {
		f, err := newFilter(desc)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Lists the filters that may be passed to --filter",
	Args:  cobra.NoArgs,
	Run:   RunFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func RunFilters(cmd *cobra.Command, _ []string) {
	for _, u := range filterUsage {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), u)
	}
}
