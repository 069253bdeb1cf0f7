package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwise/internal/definition"
	"github.com/aretw0/formwise/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate all form definitions in the directory",
	Long: `Loads every form definition and reports the first configuration error
found: malformed files, duplicate ids, dangling rule targets or
condition references, choice fields without options.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		src, err := definition.NewDirSource(dir)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		ids, err := src.List(context.Background())
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		for _, id := range ids {
			form, _ := src.Load(context.Background(), id)
			fmt.Printf("ok  %s (%d steps, %d rules)\n", id, form.StepCount(), len(form.Rules))
			if err := validator.ValidateReachability(form); err != nil {
				fmt.Printf("warning: %v\n", err)
			}
		}
		fmt.Printf("%d form(s) valid\n", len(ids))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
