package cmd

import (
	"fmt"
	"text/tabwriter"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List bundled resources",
		Long: `List the resources declared in a bundle manifest (resources.yaml).

Flags:
  --manifest DIR    Directory holding resources.yaml (default: resources.dir
                    from circleimage.yaml)`,
		Usage: "circleimage list [--manifest DIR]",
		Run:   runList,
	})
}

func runList(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.Resources.Dir
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--manifest":
			if i+1 >= len(args) {
				return fmt.Errorf("--manifest requires a value")
			}
			dir = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	if dir == "" {
		return fmt.Errorf("--manifest is required")
	}

	bundle, err := loadBundle(dir)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPATH")
	for _, h := range bundle.Handles() {
		e, _ := bundle.Entry(h)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.Name, e.Path)
	}
	return tw.Flush()
}
