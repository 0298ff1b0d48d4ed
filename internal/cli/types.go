package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storeman/graph-uml/pkg/model"
)

// newTypesCmd creates the types command, which lists the types and
// extensions a model file defines without building anything.
func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [file]",
		Short: "List the types and extensions a model file defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.Load(args[0])
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			for i := range m.Types {
				t := &m.Types[i]
				kind := t.Kind
				if kind == "" {
					kind = "class"
				}
				line := fmt.Sprintf("%-30s %s", t.Name, StyleDim.Render(kind))
				if t.Extends != "" {
					line += StyleDim.Render(" extends ") + t.Extends
				}
				fmt.Println(line)
			}
			for i := range m.Extensions {
				e := &m.Extensions[i]
				fmt.Printf("%-30s %s\n", e.Name, StyleDim.Render("extension"))
			}

			printStats(len(m.Types)+len(m.Extensions), 0, false)
			return nil
		},
	}
}
