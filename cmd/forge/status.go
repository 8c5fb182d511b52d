package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeworks/idea-forge/internal/results"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress for a running or finished batch",
		RunE:  runStatus,
	}

	cmd.Flags().String("batch", "", "batch id (required)")
	cmd.Flags().String("out", "results", "output directory the batch writes to")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	batchID, _ := cmd.Flags().GetString("batch")
	outDir, _ := cmd.Flags().GetString("out")

	progress, err := results.ReadProgress(results.ProgressPath(outDir, batchID))
	if err != nil {
		return err
	}

	fmt.Printf("Batch:     %s\n", batchID)
	fmt.Printf("Status:    %s\n", progress.Status)
	fmt.Printf("Progress:  %d/%d ideas\n", progress.ProcessedIdeas, progress.TotalIdeas)
	if progress.EstimatedTimeRemaining != "" {
		fmt.Printf("Remaining: %s\n", progress.EstimatedTimeRemaining)
	}
	if progress.Error != "" {
		fmt.Printf("Error:     %s\n", progress.Error)
	}

	return nil
}
