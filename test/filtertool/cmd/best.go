package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-mimestream/filter"
	"github.com/zostay/go-mimestream/stream"
)

var bestCmd = &cobra.Command{
	Use:   "best-encoding file...",
	Short: "Recommends a Content-transfer-encoding for each file",
	Long: `Recommends a Content-transfer-encoding for each file under each of the
7bit, 8bit, and unconstrained transports. The files are passed through the
--filter chain first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: RunBest,
}

func init() {
	rootCmd.AddCommand(bestCmd)

	bestCmd.Flags().Int("max-line-length", filter.DefaultMaxLineLength, "longest line allowed without encoding")
	_ = viper.BindPFlag("max-line-length", bestCmd.Flags().Lookup("max-line-length"))

	bestCmd.Flags().Int("jobs", 4, "files to examine at once")
	_ = viper.BindPFlag("jobs", bestCmd.Flags().Lookup("jobs"))
}

var constraints = []struct {
	name string
	c    filter.Constraint
}{
	{"7bit", filter.SevenBit},
	{"8bit", filter.EightBit},
	{"none", filter.NoConstraint},
}

// bestEncoding returns one line describing the recommendations for path.
func bestEncoding(path string, maxLineLength int) (string, error) {
	chain, err := newChain()
	if err != nil {
		return "", err
	}

	src, err := openInputs([]string{path})
	if err != nil {
		return "", err
	}

	be := filter.NewBestEncoding()
	fs := stream.NewFiltered(src, stream.WithLogger(logger), stream.FlushOnEOF())
	for _, f := range chain {
		fs.Add(f)
	}
	fs.Add(be)
	defer func() { _ = fs.Close() }()

	if _, err := io.Copy(io.Discard, fs); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	line := path + ":"
	for _, c := range constraints {
		enc, err := be.BestEncoding(c.c, maxLineLength)
		if err != nil {
			return "", err
		}
		line += fmt.Sprintf(" %s=%s", c.name, enc)
	}
	return line, nil
}

func RunBest(cmd *cobra.Command, args []string) error {
	maxLineLength := viper.GetInt("max-line-length")

	lines := make([]string, len(args))
	var g errgroup.Group
	g.SetLimit(max(viper.GetInt("jobs"), 1))
	for i, path := range args {
		g.Go(func() error {
			line, err := bestEncoding(path, maxLineLength)
			lines[i] = line
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, line := range lines {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
