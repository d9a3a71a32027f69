package cli

import (
	"fmt"

	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// FieldInfo describes one predefined field
type FieldInfo struct {
	Name          string `json:"name"`
	Size          int    `json:"size"`
	Primitive     string `json:"primitive"`
	GeneratorBase int    `json:"generator_base"`
}

func listFields() []FieldInfo {
	names := reedsolomon.PresetNames()
	infos := make([]FieldInfo, 0, len(names))
	for _, name := range names {
		field, _ := reedsolomon.Preset(name)
		infos = append(infos, FieldInfo{
			Name:          name,
			Size:          field.Size(),
			Primitive:     fmt.Sprintf("0x%x", field.Primitive()),
			GeneratorBase: field.GeneratorBase(),
		})
	}
	return infos
}

func NewFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the predefined Galois fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := listFields()
			out := cmd.OutOrStdout()

			if outputJSON, _ := cmd.Flags().GetBool("json"); outputJSON {
				return writeJSON(out, infos)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			fmt.Fprintln(out)
			cyan.Fprintln(out, "Predefined fields:")
			for _, info := range infos {
				fmt.Fprintf(out, "  %-14s GF(%d)  primitive %-7s generator base %d\n",
					info.Name, info.Size, info.Primitive, info.GeneratorBase)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --field custom with field.primitive, field.size and")
			fmt.Fprintln(out, "field.generator_base in the config file for other fields.")
			return nil
		},
	}
}
