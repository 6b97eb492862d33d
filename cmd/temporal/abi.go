package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/host"
)

func newABICommand(a *app) *cobra.Command {
	var recordsOnly, functionsOnly bool
	cmd := &cobra.Command{
		Use:   "abi",
		Short: "List flat record layouts and host exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s@%s\n", host.ModuleName, host.Version)
			if !functionsOnly {
				printRecords(out)
			}
			if !recordsOnly {
				m, err := host.New(host.Options{Surface: a.surface, Logger: a.log})
				if err != nil {
					return err
				}
				defer m.Close()
				fmt.Fprintf(out, "\nexports (%d):\n", len(m.Functions()))
				for _, f := range m.Functions() {
					fmt.Fprintf(out, "  %s\n", f.Signature())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&recordsOnly, "records", false, "list records only")
	cmd.Flags().BoolVar(&functionsOnly, "functions", false, "list exports only")
	return cmd
}

func printRecords(w io.Writer) {
	for _, r := range capi.Records() {
		l := capi.LayoutOf(r)
		fmt.Fprintf(w, "\nrecord %s  size %d align %d\n", *r.Name, l.Size, l.Align)
		rec, ok := r.Kind.(*wit.Record)
		if !ok {
			continue
		}
		for _, f := range rec.Fields {
			fmt.Fprintf(w, "  %4d  %-24s %s\n", l.Offset(f.Name), f.Name, witTypeStr(f.Type))
		}
	}
}

// witTypeStr names a field type, listing the cases of enumerations.
func witTypeStr(t wit.Type) string {
	if td, ok := t.(*wit.TypeDef); ok {
		if e, ok := td.Kind.(*wit.Enum); ok {
			names := make([]string, len(e.Cases))
			for i, c := range e.Cases {
				names[i] = c.Name
			}
			return capi.WITTypeName(t) + " {" + strings.Join(names, ", ") + "}"
		}
	}
	return capi.WITTypeName(t)
}
