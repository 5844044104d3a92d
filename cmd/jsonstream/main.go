// Command jsonstream is a small CLI around the streamjson package:
// validate a document (building and discarding a maps-and-lists
// tree, so duplicate keys are caught too), debug-print it as a
// DomValue, or lint it against a configured set of BuilderLimits.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	streamjson "github.com/run2000/JSON-java-sub000"
	"github.com/run2000/JSON-java-sub000/internal/charset"
	"github.com/run2000/JSON-java-sub000/internal/config"
)

var (
	configPath     string
	gzipInput      bool
	encName        string
	secureDefaults bool
	maxDepth       int
	maxContentNode int
)

func main() {
	root := &cobra.Command{
		Use:   "jsonstream",
		Short: "Parse and inspect JSON documents with the streamjson package",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML BuilderLimits file")
	root.PersistentFlags().BoolVar(&gzipInput, "gzip", false, "decompress input as gzip before parsing")
	root.PersistentFlags().StringVar(&encName, "charset", "", "input charset (latin1, windows-1252, iso-8859-15); default UTF-8")
	root.PersistentFlags().BoolVar(&secureDefaults, "secure-defaults", false, "start from SecureDefaults() instead of DefaultLimits() before --config/--max-* overrides")
	root.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "override MaxNestingDepth (0 keeps whatever --config/--secure-defaults set)")
	root.PersistentFlags().IntVar(&maxContentNode, "max-content-nodes", 0, "override MaxContentNodesPerContainer (0 keeps whatever --config/--secure-defaults set)")

	root.AddCommand(validateCmd(), debugPrintCmd(), lintCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runID() string {
	return uuid.NewString()
}

// limitsFromFlags builds the base BuilderLimits from --secure-defaults or
// --config (--config wins if both are given), then applies --max-depth
// and --max-content-nodes as overrides on top.
func limitsFromFlags() (streamjson.BuilderLimits, error) {
	limits := streamjson.DefaultLimits()
	if secureDefaults {
		limits = streamjson.SecureDefaults()
	}
	if configPath != "" {
		var err error
		limits, err = config.Load(configPath)
		if err != nil {
			return streamjson.BuilderLimits{}, err
		}
	}
	if maxDepth > 0 {
		limits.MaxNestingDepth = maxDepth
	}
	if maxContentNode > 0 {
		limits.MaxContentNodesPerContainer = maxContentNode
	}
	return limits, nil
}

func openInput(path string) (io.ReadCloser, error) {
	var r io.Reader
	var closer io.Closer
	if path == "" || path == "-" {
		r = os.Stdin
		closer = io.NopCloser(nil)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		r = f
		closer = f
	}
	if gzipInput {
		gz, err := gzip.NewReader(bufio.NewReader(r))
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return struct {
			io.Reader
			io.Closer
		}{gz, closer}, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{r, closer}, nil
}

func characterSourceFor(r io.Reader) streamjson.CharacterSource {
	return charset.New(r, charset.ByName(encName))
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that each file is a well-formed JSON document, logging only a summary line on success",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := runID()
			limits, err := limitsFromFlags()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, arg := range args {
				in, err := openInput(arg)
				if err != nil {
					return err
				}
				reader := streamjson.NewEventReader(characterSourceFor(in)).WithLimits(limits)
				_, err = streamjson.BuildValue(reader, limits, streamjson.ImmutableMapListCollector{})
				in.Close()
				if err != nil {
					log.Printf("run=%s invalid=%s err=%v", id, arg, err)
					return err
				}
			}
			log.Printf("run=%s validated=%d", id, len(args))
			return nil
		},
	}
}

func debugPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-print [file]",
		Short: "Parse a single document and print its DomValue debug form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := runID()
			limits, err := limitsFromFlags()
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			in, err := openInput(path)
			if err != nil {
				return err
			}
			defer in.Close()
			reader := streamjson.NewEventReader(characterSourceFor(in)).WithLimits(limits)
			v, err := streamjson.BuildValue(reader, limits, streamjson.DomCollector{})
			if err != nil {
				log.Printf("run=%s err=%v", id, err)
				return err
			}
			fmt.Println(streamjson.AsDomValue(v).String())
			return nil
		},
	}
}

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file...]",
		Short: "Validate each file against the configured limits (--secure-defaults, --config, --max-*) and report every failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := runID()
			limits, err := limitsFromFlags()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			var failures []string
			for _, arg := range args {
				in, err := openInput(arg)
				if err != nil {
					return err
				}
				reader := streamjson.NewEventReader(characterSourceFor(in)).WithLimits(limits)
				_, err = streamjson.BuildValue(reader, limits, streamjson.ImmutableMapListCollector{})
				in.Close()
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", arg, err))
				}
			}
			log.Printf("run=%s checked=%d failed=%d", id, len(args), len(failures))
			if len(failures) > 0 {
				return fmt.Errorf("lint failures:\n%s", strings.Join(failures, "\n"))
			}
			return nil
		},
	}
	return cmd
}
