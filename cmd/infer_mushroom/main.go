package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurlang/mushroom/datasets/mushroom"
	"github.com/neurlang/mushroom/inference"
	"github.com/neurlang/mushroom/net/feedforward"
	"github.com/neurlang/mushroom/onehot"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var model, input, unknown string
	var threads int

	cmd := &cobra.Command{
		Use:   "infer_mushroom",
		Short: "Classify mushrooms with a trained model",
		Example: `  echo "x,s,n,t,p,f,c,n,k,e,e,s,s,w,w,p,w,o,p,k,s,u" | infer_mushroom --model mushroom.model`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return classify(cmd.OutOrStdout(), r, model, unknown, threads)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Path to the trained model (required)")
	cmd.Flags().StringVar(&input, "input", "-", "CSV rows to classify, - for stdin")
	cmd.Flags().StringVar(&unknown, "unknown", "", "Override the model's unknown token policy: reject or zero")
	cmd.Flags().IntVar(&threads, "threads", 0, "Worker goroutines, 0 means one per core")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func classify(w io.Writer, r io.Reader, path, unknown string, threads int) error {
	m, err := inference.LoadFile(path)
	if err != nil {
		return err
	}
	if unknown != "" {
		if m.Encoder.Unknown, err = onehot.ParseUnknownPolicy(unknown); err != nil {
			return err
		}
	}
	rows, err := mushroom.ParseRows(r)
	if err != nil {
		return err
	}
	acts, err := m.ClassifyAll(rows, threads)
	if err != nil {
		return err
	}
	for _, act := range acts {
		label, err := m.Encoder.LabelOf(feedforward.Argmax(act))
		if err != nil {
			return err
		}
		values := make([]string, len(act))
		for i, a := range act {
			values[i] = fmt.Sprintf("%.4f", a)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", label, mushroom.Label(label), strings.Join(values, " "))
	}
	return nil
}
