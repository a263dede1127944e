package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var errChunkMismatch = errors.New("output depends on how the input was chunked")

var chunksCmd = &cobra.Command{
	Use:   "chunks file...",
	Short: "Checks that the filters give the same output however the input is chunked",
	Long: `Runs each file through the --filter chain whole, one byte at a time, and in
randomly sized chunks, and shows a diff for every run whose output differs
from the whole run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: RunChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)

	chunksCmd.Flags().Int("rounds", 20, "number of random chunkings to try per file")
	_ = viper.BindPFlag("rounds", chunksCmd.Flags().Lookup("rounds"))

	chunksCmd.Flags().Uint64("seed", 1, "seed for the random chunk sizes")
	_ = viper.BindPFlag("seed", chunksCmd.Flags().Lookup("seed"))

	chunksCmd.Flags().Int("max-chunk", 64, "largest random chunk size")
	_ = viper.BindPFlag("max-chunk", chunksCmd.Flags().Lookup("max-chunk"))

	chunksCmd.Flags().Int("jobs", 4, "files to check at once")
	_ = viper.BindPFlag("jobs", chunksCmd.Flags().Lookup("jobs"))
}

// runChunks runs data through a new filter chain in chunks of the given
// sizes, with whatever is left over as the final chunk.
func runChunks(data []byte, sizes func() int) ([]byte, error) {
	chain, err := newChain()
	if err != nil {
		return nil, err
	}

	var out []byte
	for len(data) > 0 {
		n := min(sizes(), len(data))
		b, err := chain.Filter(data[:n])
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		data = data[n:]
	}

	b, err := chain.Flush(nil)
	if err != nil {
		return nil, err
	}
	return append(out, b...), nil
}

type chunkReport struct {
	path  string
	diffs []string
}

func checkChunks(path string, rounds, maxChunk int, seed uint64, pretty bool) (*chunkReport, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	whole, err := runChunks(data, func() int { return len(data) })
	if err != nil {
		return nil, err
	}

	report := &chunkReport{path: path}
	compare := func(label string, got []byte) {
		if bytes.Equal(whole, got) {
			logger.Debug("chunking matches", "path", path, "run", label)
			return
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(whole), string(got), false)

		var text string
		if pretty {
			text = dmp.DiffPrettyText(diffs)
		} else {
			text = dmp.PatchToText(dmp.PatchMake(string(whole), diffs))
		}
		report.diffs = append(report.diffs, fmt.Sprintf("--- %s (%s)\n%s", path, label, text))
	}

	got, err := runChunks(data, func() int { return 1 })
	if err != nil {
		return nil, err
	}
	compare("one byte at a time", got)

	rng := rand.New(rand.NewPCG(seed, uint64(len(data))))
	for i := range rounds {
		got, err := runChunks(data, func() int { return 1 + rng.IntN(maxChunk) })
		if err != nil {
			return nil, err
		}
		compare(fmt.Sprintf("random round %d", i+1), got)
	}

	return report, nil
}

func RunChunks(cmd *cobra.Command, args []string) error {
	var (
		rounds   = viper.GetInt("rounds")
		maxChunk = max(viper.GetInt("max-chunk"), 1)
		seed     = viper.GetUint64("seed")
		pretty   = term.IsTerminal(int(os.Stdout.Fd()))
	)

	reports := make([]*chunkReport, len(args))
	var g errgroup.Group
	g.SetLimit(max(viper.GetInt("jobs"), 1))
	for i, path := range args {
		g.Go(func() error {
			r, err := checkChunks(path, rounds, maxChunk, seed, pretty)
			reports[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if len(r.diffs) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", r.path)
			continue
		}

		failed++
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%s\n", r.path, strings.Join(r.diffs, "\n"))
	}

	if failed > 0 {
		return fmt.Errorf("%w in %d of %d files", errChunkMismatch, failed, len(reports))
	}
	return nil
}
