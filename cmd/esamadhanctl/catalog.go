package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect task catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and tasks",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()
	if catalogFile != "" {
		var err error
		if cat, err = catalog.LoadFile(catalogFile); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, c := range cat.Categories() {
		fmt.Fprintf(w, "%s\t%s\t%d tasks\n", c.ID, c.Name, len(c.Tasks))
		for _, t := range c.Tasks {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.ID, t.Title, t.Difficulty, strings.Join(t.RequiredSkills, ", "))
		}
	}
	return w.Flush()
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cat, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	tasks := 0
	for _, c := range cat.Categories() {
		tasks += len(c.Tasks)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d categories, %d tasks)\n", args[0], cat.Len(), tasks)
	return nil
}
