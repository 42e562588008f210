package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/io"
)

// convertCommand creates the convert command for rewriting graph files.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [graph] [output]",
		Short: "Convert a graph file between JSON, YAML and TOML",
		Long: `Convert a graph file to another format, chosen by the output extension.

Edges with the default cost are written without a cost field.`,
		Example: `  waypoint convert examples/graphs/roads.json roads.toml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], args[1])
		},
	}
}

func runConvert(ctx context.Context, p printer, input, output string) error {
	format, err := io.FormatFromPath(output)
	if err != nil {
		return err
	}
	w, err := loadWorld(ctx, input)
	if err != nil {
		return err
	}
	if w.graph == nil {
		return errors.New(errors.ErrCodeUnsupported, "%s is a grid map; only graph files can be converted", input)
	}

	var buf bytes.Buffer
	if err := io.Write(w.graph, &buf, format); err != nil {
		return err
	}
	if err := writeFile(output, buf.Bytes()); err != nil {
		return err
	}

	p.success("Wrote %s", strings.ToUpper(string(format)))
	p.file(output)
	p.stats(fmt.Sprintf("%d vertices", w.graph.VertexCount()), fmt.Sprintf("%d edges", w.graph.EdgeCount()))
	return nil
}
