package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// printer writes command results to the command's output stream.
type printer struct {
	json   bool
	writer io.Writer
}

func newPrinter(cmd *cobra.Command, jsonFlag bool) *printer {
	return &printer{json: jsonFlag, writer: cmd.OutOrStdout()}
}

// JSON writes v as indented JSON.
func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Human writes a formatted human-readable line.
func (p *printer) Human(format string, args ...any) {
	fmt.Fprintf(p.writer, format+"\n", args...)
}
