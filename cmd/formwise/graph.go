package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwise"
	"github.com/aretw0/formwise/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [form-id]",
	Short: "Export a form's step graph visualization",
	Long:  `Loads a form definition and outputs a Mermaid diagram (graph TD) of its steps, sequential progression, navigation rules and field navigation.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		engine, err := formwise.New(dir)
		if err != nil {
			fmt.Printf("Error initializing formwise: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		formID := ""
		if len(args) > 0 {
			formID = args[0]
		} else {
			ids, err := engine.Forms(ctx)
			if err != nil || len(ids) == 0 {
				fmt.Println("Error: no form definitions found")
				os.Exit(1)
			}
			formID = ids[0]
		}

		form, err := engine.Form(ctx, formID)
		if err != nil {
			fmt.Printf("Error loading form %q: %v\n", formID, err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(form))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
