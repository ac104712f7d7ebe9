// Package main is nexuscli, a minimal native-protocol client: it sends
// one command's text as a single framed message and prints the framed
// response back.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"nexusdb/internal/wireproto"
)

type runFlags struct {
	address string
	verbose bool
}

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "nexuscli <command text>",
		Short: "NexusDB native-protocol client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(flags, strings.Join(args, " "))
		},
	}
	rootCmd.Flags().StringVar(&flags.address, "address", "127.0.0.1:50000", "nexusiomgr native protocol address")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "pretty-print the raw response frame")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags *runFlags, commandText string) error {
	conn, err := net.Dial("tcp", flags.address)
	if err != nil {
		return fmt.Errorf("nexuscli: connecting to %s: %w", flags.address, err)
	}
	defer conn.Close()

	if err := wireproto.WriteFrame(conn, []byte(commandText)); err != nil {
		return fmt.Errorf("nexuscli: sending command: %w", err)
	}

	r := bufio.NewReader(conn)
	meta, err := wireproto.ReadFrame(r)
	if err != nil {
		return fmt.Errorf("nexuscli: reading response: %w", err)
	}

	if flags.verbose {
		pp.Println(meta)
	}

	rows, err := readRows(r)
	if err != nil {
		return fmt.Errorf("nexuscli: reading rows: %w", err)
	}

	fmt.Printf("%d row frame(s) received\n", len(rows))
	if flags.verbose {
		pp.Println(rows)
	}
	return nil
}

// readRows reads the varint-length-prefixed row stream that follows a
// response frame, terminated by a zero-length row, returning each row's
// raw bytes without decoding them (decoding requires the column types
// nexuscli doesn't itself track; see internal/rowset for the decoder
// used server-side).
func readRows(r *bufio.Reader) ([][]byte, error) {
	var rows [][]byte
	for {
		row, err := wireproto.ReadFrame(r)
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			return rows, nil
		}
		rows = append(rows, row)
	}
}
