package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/zostay/go-mimestream/stream"
)

// openInputs returns the named files as one stream, in order, each cut down
// to the window given by --start and --end. With no names, it returns
// standard input.
func openInputs(paths []string) (stream.Stream, error) {
	if len(paths) == 0 {
		return stream.Wrap(os.Stdin)
	}

	start := viper.GetInt64("start")
	end := viper.GetInt64("end")

	c := stream.NewChained(stream.WithLogger(logger))
	for _, path := range paths {
		s, err := openWindow(path, start, end)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.Add(s, false)
	}

	return c, nil
}

func openWindow(path string, start, end int64) (stream.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := stream.Wrap(f)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	if start == 0 && end == stream.Unbounded {
		return s, nil
	}

	b, err := stream.NewBounded(s, start, end, stream.WithLogger(logger))
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	logger.Debug("opened window", "path", path, "start", start, "end", end)
	return b, nil
}

// readInput reads a whole file, or standard input when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		s, err := stream.Wrap(os.Stdin)
		if err != nil {
			return nil, err
		}
		return io.ReadAll(s)
	}

	s, err := openWindow(path, viper.GetInt64("start"), viper.GetInt64("end"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	return io.ReadAll(s)
}
