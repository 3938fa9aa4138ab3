package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/LukaGiorgadze/gonull"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"ikedadada/go-onionoo/onionoo"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return true
	}
	return false
}

// relayView mirrors the Onionoo wire names so that json output can be served
// back by cmd/directory.
type relayView struct {
	Nickname           string              `json:"nickname"                yaml:"nickname"`
	Fingerprint        string              `json:"fingerprint"             yaml:"fingerprint"`
	ORAddresses        []string            `json:"or_addresses"            yaml:"or_addresses"`
	Running            bool                `json:"running"                 yaml:"running"`
	Flags              []string            `json:"flags"                   yaml:"flags"`
	Country            *string             `json:"country,omitempty"       yaml:"country,omitempty"`
	CountryName        *string             `json:"country_name,omitempty"  yaml:"country_name,omitempty"`
	RegionName         *string             `json:"region_name,omitempty"   yaml:"region_name,omitempty"`
	CityName           *string             `json:"city_name,omitempty"     yaml:"city_name,omitempty"`
	AS                 *string             `json:"as,omitempty"            yaml:"as,omitempty"`
	ASName             *string             `json:"as_name,omitempty"       yaml:"as_name,omitempty"`
	Platform           string              `json:"platform"                yaml:"platform"`
	Version            string              `json:"version"                 yaml:"version"`
	ExitPolicy         []string            `json:"exit_policy"             yaml:"exit_policy"`
	ExitPolicySummary  map[string][]string `json:"exit_policy_summary"     yaml:"exit_policy_summary"`
	RecommendedVersion bool                `json:"recommended_version"     yaml:"recommended_version"`
	Measured           bool                `json:"measured"                yaml:"measured"`
}

type directoryView struct {
	Relays []relayView `json:"relays" yaml:"relays"`
}

func optional(n gonull.Nullable[string]) *string {
	if !n.Valid {
		return nil
	}
	v := n.Val
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func viewOf(dir onionoo.Directory) directoryView {
	v := directoryView{Relays: make([]relayView, 0, dir.Len())}
	for _, r := range dir.Relays() {
		summary := r.ExitPolicySummary()
		if summary == nil {
			summary = map[string][]string{}
		}
		v.Relays = append(v.Relays, relayView{
			Nickname:           r.Nickname(),
			Fingerprint:        r.Fingerprint().String(),
			ORAddresses:        nonNil(r.ORAddresses()),
			Running:            r.Running(),
			Flags:              r.Flags().Strings(),
			Country:            optional(r.Country()),
			CountryName:        optional(r.CountryName()),
			RegionName:         optional(r.RegionName()),
			CityName:           optional(r.CityName()),
			AS:                 optional(r.AS()),
			ASName:             optional(r.ASName()),
			Platform:           r.Platform(),
			Version:            r.Version(),
			ExitPolicy:         nonNil(r.ExitPolicy()),
			ExitPolicySummary:  summary,
			RecommendedVersion: r.RecommendedVersion(),
			Measured:           r.Measured(),
		})
	}
	return v
}

func render(w io.Writer, format string, dir onionoo.Directory) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(viewOf(dir))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(viewOf(dir)); err != nil {
			return err
		}
		return enc.Close()
	case formatTable:
		return renderTable(w, dir)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

var (
	guardColor = color.New(color.FgGreen, color.Bold)
	exitColor  = color.New(color.FgRed, color.Bold)
)

func renderTable(w io.Writer, dir onionoo.Directory) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NICKNAME\tFINGERPRINT\tOR ADDRESS\tCOUNTRY\tFLAGS")
	for _, r := range dir.Relays() {
		addr, ok := r.PrimaryORAddress()
		if !ok {
			addr = "-"
		}
		country := "-"
		if c := r.Country(); c.Valid && c.Val != "" {
			country = c.Val
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Nickname(), r.Fingerprint(), addr, country, coloredFlags(r))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d relays\n", dir.Len())
	return err
}

// FLAGS is the last column so color escapes do not disturb alignment.
func coloredFlags(r *onionoo.Relay) string {
	flags := r.Flags().List()
	parts := make([]string, len(flags))
	for i, f := range flags {
		switch f {
		case onionoo.FlagGuard:
			parts[i] = guardColor.Sprint(f)
		case onionoo.FlagExit:
			parts[i] = exitColor.Sprint(f)
		default:
			parts[i] = string(f)
		}
	}
	return strings.Join(parts, ",")
}
