package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/hugovk/clufter/internal/rules"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errUnknownFormat = errors.New("unknown output format")

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return errors.Wrapf(errUnknownFormat, "%q (want table, json, or yaml)", format)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshaling JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "marshaling YAML")
		}
		return enc.Close()
	}
	return checkFormat(format)
}

func views(rs []*rules.ResourceRule) []rules.RuleView {
	out := make([]rules.RuleView, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.View())
	}
	return out
}

func printRulesTable(w io.Writer, rs []*rules.ResourceRule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tVERSION\tAGENT\tATTRS\tACTIONS\tCHILDREN")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.Type, orDash(r.Version), filepath.Base(r.Agent),
			r.Attributes.Len(), r.Actions.Len(), r.ChildTypes.Len())
	}
	return tw.Flush()
}

func printRuleDetail(w io.Writer, r *rules.ResourceRule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Type:\t%s\n", r.Type)
	fmt.Fprintf(tw, "Agent:\t%s\n", r.Agent)
	fmt.Fprintf(tw, "Version:\t%s\n", orDash(r.Version))
	fmt.Fprintf(tw, "Max instances:\t%s\n", maxInstances(r.MaxInstances))
	fmt.Fprintf(tw, "Init on add:\t%t\n", r.Flags.InitOnAdd)
	fmt.Fprintf(tw, "Destroy on delete:\t%t\n", r.Flags.DestroyOnDelete)

	if attrs := r.Attributes.Items(); len(attrs) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ATTRIBUTE\tFLAGS\tVALUE")
		for _, a := range attrs {
			value := "-"
			if a.Value != nil {
				value = *a.Value
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, orDash(a.Flags.String()), value)
		}
	}
	if actions := r.Actions.Items(); len(actions) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ACTION\tDEPTH\tTIMEOUT\tINTERVAL")
		for _, a := range actions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Name, depth(a.Depth), seconds(a.Timeout), seconds(a.Interval))
		}
	}
	if children := r.ChildTypes.Items(); len(children) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "CHILD\tSTART\tSTOP\tFORBID")
		for _, c := range children {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", c.Name, c.StartLevel, c.StopLevel, c.Forbid)
		}
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func maxInstances(n int) string {
	if n == 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}

func depth(d int) string {
	if d == rules.Unspecified {
		return "*"
	}
	return strconv.Itoa(d)
}

func seconds(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n) + "s"
}
