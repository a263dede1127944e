package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zostay/go-mimestream/stream"
)

var pipeCmd = &cobra.Command{
	Use:   "pipe [file...]",
	Short: "Copies files, or standard input, to standard output through the filters",
	RunE:  RunPipe,
}

func init() {
	rootCmd.AddCommand(pipeCmd)

	pipeCmd.Flags().Bool("write", false, "filter while writing to standard output rather than while reading")
	_ = viper.BindPFlag("write", pipeCmd.Flags().Lookup("write"))

	pipeCmd.Flags().Int("block-size", stream.DefaultBlockSize, "bytes to read at a time")
	_ = viper.BindPFlag("block-size", pipeCmd.Flags().Lookup("block-size"))
}

func RunPipe(cmd *cobra.Command, args []string) (err error) {
	chain, err := newChain()
	if err != nil {
		return err
	}

	in, err := openInputs(args)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, in.Close()) }()

	out, err := stream.Wrap(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if viper.GetBool("write") {
		fs := stream.NewFiltered(out, stream.WithLogger(logger), stream.LeaveOpen())
		for _, f := range chain {
			fs.Add(f)
		}

		if _, err := io.Copy(fs, in); err != nil {
			return err
		}
		if err := fs.Flush(); err != nil {
			return err
		}
		return fs.Close()
	}

	fs := stream.NewFiltered(in,
		stream.WithLogger(logger),
		stream.WithBlockSize(viper.GetInt("block-size")),
		stream.FlushOnEOF(),
		stream.LeaveOpen())
	for _, f := range chain {
		fs.Add(f)
	}

	if _, err := io.Copy(out, fs); err != nil {
		return err
	}
	return fs.Close()
}
