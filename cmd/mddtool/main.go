// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command mddtool is a small command-line front end over the mdd package:
// it loads a PLA description of a structure function, builds the diagram,
// and reports its size and its availability figures.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-mdd/mdd"
)

var (
	output    int
	threshold int32
	probFlag  float64
)

func main() {
	root := &cobra.Command{
		Use:   "mddtool",
		Short: "inspect a structure function described as a PLA file",
	}

	statsCmd := &cobra.Command{
		Use:   "stats PLA-FILE",
		Short: "print node count and variable count for the on-set of an output column",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&output, "output", 0, "output column to build")

	availCmd := &cobra.Command{
		Use:   "availability PLA-FILE",
		Short: "print P(f >= threshold) assuming every variable is Bernoulli(p)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAvailability,
	}
	availCmd.Flags().IntVar(&output, "output", 0, "output column to build")
	availCmd.Flags().Int32Var(&threshold, "threshold", 1, "terminal value the system must reach or exceed")
	availCmd.Flags().Float64Var(&probFlag, "p", 0.5, "probability that each variable is in its top state")

	root.AddCommand(statsCmd, availCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDiagram(path string) (*mdd.Manager, mdd.Node, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()

	pla, err := mdd.LoadPLA(fh)
	if err != nil {
		return nil, nil, err
	}
	m, err := mdd.New(pla.Nin)
	if err != nil {
		return nil, nil, err
	}
	columns, err := m.FromPLA(pla, mdd.FoldTree)
	if err != nil {
		return nil, nil, err
	}
	if output >= len(columns) {
		return nil, nil, fmt.Errorf("output column %d out of range, PLA declares %d outputs", output, len(columns))
	}
	return m, columns[output], nil
}

func runStats(cmd *cobra.Command, args []string) error {
	m, f, err := loadDiagram(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("variables: %d\n", m.Varnum())
	fmt.Printf("nodes:     %d\n", m.Size(f))
	return nil
}

func runAvailability(cmd *cobra.Command, args []string) error {
	m, f, err := loadDiagram(args[0])
	if err != nil {
		return err
	}
	probs := make([][]float64, m.Varnum())
	for i := range probs {
		probs[i] = []float64{1 - probFlag, probFlag}
	}
	fmt.Printf("availability:   %.6f\n", m.Availability(f, probs, threshold))
	fmt.Printf("unavailability: %.6f\n", m.Unavailability(f, probs, threshold))
	return nil
}
