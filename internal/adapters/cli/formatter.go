package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatNumber trims trailing zeros so 2.50000 prints as 2.5
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// writeParameters prints one row per node with its effective parameters
func writeParameters(w io.Writer, nodes []*production.Node, params []production.RecipeParameters) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tRECIPE\tMACHINE\tTIME (s)\tPRODUCTIVITY\tFUEL/s/BUILDING\tWARNINGS")
	for i, node := range nodes {
		p := params[i]
		machine := "-"
		if node.Machine != nil {
			machine = node.Machine.Name()
		}
		warnings := "-"
		if p.Warnings() != 0 {
			warnings = p.Warnings().String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			node.Recipe.Name(),
			machine,
			formatRounded(p.RecipeTime()),
			formatRounded(p.Productivity()),
			formatRounded(p.FuelUsagePerSecondPerBuilding()),
			warnings,
		)
	}
	return tw.Flush()
}

// formatModules renders the module configuration of a node as a tree
func formatModules(node *production.Node) string {
	used := node.UsedModules
	if used.IsEmpty() {
		return ""
	}

	var internal, beacon []production.UsedModule
	for _, m := range used.Modules {
		if m.Beacon {
			beacon = append(beacon, m)
		} else {
			internal = append(internal, m)
		}
	}

	var b strings.Builder
	b.WriteString(node.Recipe.Name())
	b.WriteString("\n")

	if len(internal) > 0 {
		last := used.Beacon == nil
		writeBranch(&b, "", last, "machine")
		writeModuleLeaves(&b, childPrefix("", last), internal)
	}
	if used.Beacon != nil {
		label := fmt.Sprintf("%d x %s", used.BeaconCount, used.Beacon.Name())
		if used.BeaconQuality != nil && used.BeaconQuality.Level > 0 {
			label += " (" + used.BeaconQuality.Name() + ")"
		}
		writeBranch(&b, "", true, label)
		writeModuleLeaves(&b, childPrefix("", true), beacon)
	}
	return b.String()
}

func writeModuleLeaves(b *strings.Builder, prefix string, modules []production.UsedModule) {
	for i, m := range modules {
		label := fmt.Sprintf("%d x %s", m.Count, m.Module.Name())
		if m.Quality != nil && m.Quality.Level > 0 {
			label += " (" + m.Quality.Name() + ")"
		}
		writeBranch(b, prefix, i == len(modules)-1, label)
	}
}

func writeBranch(b *strings.Builder, prefix string, last bool, label string) {
	if last {
		b.WriteString(prefix + "└── " + label + "\n")
	} else {
		b.WriteString(prefix + "├── " + label + "\n")
	}
}

func childPrefix(prefix string, last bool) string {
	if last {
		return prefix + "    "
	}
	return prefix + "│   "
}

// writeShoppingList prints the entries and totals of a shopping list
func writeShoppingList(w io.Writer, list shopping.ShoppingList) error {
	if list.IsEmpty() {
		fmt.Fprintln(w, "Shopping list is empty.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "GOODS\tCOUNT")
	for _, entry := range list.Entries {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Object.String(), formatNumber(entry.Count))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nBuildings: %s  Modules: %s  Cost: %s\n",
		formatNumber(list.Buildings), formatNumber(list.Modules), formatNumber(list.Cost))
	return nil
}

// writeExport prints the rounded export of a shopping list
func writeExport(w io.Writer, exported []shopping.ExportedGoods) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "GOODS\tCOUNT")
	for _, line := range exported {
		fmt.Fprintf(tw, "%s\t%d\n", line.Goods.Name(), line.Count)
	}
	return tw.Flush()
}

// writeMissingItems prints the goods whose requirements exceed supply
func writeMissingItems(w io.Writer, items []shopping.MissingItem) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing is missing.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "GOODS\tDEFICIT/s")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\n", item.Goods, formatRounded(item.Deficit))
	}
	return tw.Flush()
}

// writeSnapshots prints saved shopping list headers
func writeSnapshots(w io.Writer, snapshots []*shopping.Snapshot) error {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No saved shopping lists.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDISPLAY\tDECOMPOSED\tLINES\tCREATED")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%s\n",
			s.ID, s.Name, s.Options.Display, s.Decomposed, len(s.Lines), s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
