package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"attune/internal/extensions"
	"attune/internal/secrets"
	pkgstrings "attune/pkg/strings"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a rendered table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat validates that the given format string is a supported
// output format. Returns nil if valid, or an error listing valid formats.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid formats: table, json, yaml)", format)
	}
}

// instanceRow is the serializable shape of one instance spec in json/yaml
// output.
type instanceRow struct {
	InstanceID string            `json:"instanceId" yaml:"instanceId"`
	Ref        string            `json:"ref,omitempty" yaml:"ref,omitempty"`
	Params     map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

func instanceRows(specs []extensions.InstanceSpec) []instanceRow {
	rows := make([]instanceRow, 0, len(specs))
	for _, spec := range specs {
		row := instanceRow{InstanceID: spec.InstanceID, Params: spec.Params}
		if spec.Ref != nil {
			row.Ref = spec.Ref.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteInstances renders a list of instance specs under a title in the
// requested format.
func WriteInstances(out io.Writer, title string, specs []extensions.InstanceSpec, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		return writeJSON(out, map[string]interface{}{title: instanceRows(specs)})
	case OutputFormatYAML:
		return writeYAML(out, map[string]interface{}{title: instanceRows(specs)})
	default:
		fmt.Fprintf(out, "%s (%d):\n", title, len(specs))
		if len(specs) == 0 {
			fmt.Fprintln(out, "  (none)")
			return nil
		}
		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"INSTANCE", "EXTENSION", "PARAMS"})
		for _, spec := range specs {
			ref := ""
			if spec.Ref != nil {
				ref = spec.Ref.String()
			}
			tw.AppendRow(table.Row{spec.InstanceID, ref, pkgstrings.TruncateDescription(paramsSummary(spec.Params), pkgstrings.DefaultDescriptionMaxLen)})
		}
		tw.Render()
		return nil
	}
}

// WriteSecretVersions renders a list of prunable secret versions in the
// requested format.
func WriteSecretVersions(out io.Writer, versions []secrets.SecretVersion, format OutputFormat) error {
	type versionRow struct {
		Secret  string `json:"secret" yaml:"secret"`
		Version string `json:"version" yaml:"version"`
	}
	rows := make([]versionRow, 0, len(versions))
	for _, version := range versions {
		rows = append(rows, versionRow{Secret: version.Secret.Name, Version: version.VersionID})
	}

	switch format {
	case OutputFormatJSON:
		return writeJSON(out, map[string]interface{}{"prunable": rows})
	case OutputFormatYAML:
		return writeYAML(out, map[string]interface{}{"prunable": rows})
	default:
		if len(versions) == 0 {
			fmt.Fprintln(out, "No unused secret versions found.")
			return nil
		}
		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"SECRET", "VERSION"})
		for _, row := range rows {
			tw.AppendRow(table.Row{row.Secret, row.Version})
		}
		tw.Render()
		return nil
	}
}

// paramsSummary renders params as sorted key=value pairs for table cells.
func paramsSummary(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	return strings.Join(pairs, ", ")
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(out io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
