package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webdesk/pkg/wm"
)

func newDecodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode <value>",
		Short: "Decode a windows query value into records",
		Long: "Decode the value of the ?windows= parameter. The argument may be the raw value, " +
			"its URL-escaped form or a whole query string.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := decodeArg(args[0])
			if err != nil {
				return err
			}
			return writeWindows(cmd.OutOrStdout(), windows, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	var query bool
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode YAML records from stdin into a windows query value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := readWindows(cmd.InOrStdin())
			if err != nil {
				return err
			}
			value := wm.Encode(windows)
			if query {
				value = url.Values{wm.QueryParam: {value}}.Encode()
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&query, "query", false, "Print a URL-escaped windows=... query string")
	return cmd
}

// decodeArg accepts the raw value, a query string or a URL-escaped value.
// Raw values always contain ':' so an escaped one is told apart by its
// absence.
func decodeArg(arg string) ([]wm.Window, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "?") || strings.HasPrefix(arg, wm.QueryParam+"=") {
		q, err := url.ParseQuery(strings.TrimPrefix(arg, "?"))
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		return wm.Decode(q.Get(wm.QueryParam)), nil
	}
	if !strings.Contains(arg, ":") && strings.Contains(strings.ToUpper(arg), "%3A") {
		raw, err := url.QueryUnescape(arg)
		if err != nil {
			return nil, fmt.Errorf("unescape value: %w", err)
		}
		arg = raw
	}
	return wm.Decode(arg), nil
}

func writeWindows(w io.Writer, windows []wm.Window, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(windows); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
	}
}

// readWindows reads a YAML list of records. A record without a size gets
// the default size.
func readWindows(r io.Reader) ([]wm.Window, error) {
	var windows []wm.Window
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&windows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read records: %w", err)
	}

	if err := wm.Normalize(windows); err != nil {
		return nil, err
	}
	return windows, nil
}
