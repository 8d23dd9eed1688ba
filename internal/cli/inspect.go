package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goLibra/internal/core/account"
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/core/vm"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

var (
	inspectShowValues bool
	inspectOut        string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <dump-file>",
	Short: "Decode a state dump and summarize its contents",
	Long: `Inspect reads a state dump, classifies every entry against the
known resource layouts, and decodes the stored bytes through the layout
their path claims. Any entry whose bytes do not round-trip through its
layout is reported and the command exits non-zero, which makes inspect
usable as a dump validator.

Examples:
    librafix inspect fixtures.json
    librafix inspect fixtures.cbor.lz4 --values
    librafix inspect fixtures.json -o decoded.json`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVarP(&inspectShowValues, "values", "v", false, "print the decoded value of every entry")
	inspectCmd.Flags().StringVarP(&inspectOut, "out", "o", "", "write decoded entries to a JSON file")
}

type resourceLayout struct {
	kind   string
	layout vm.FatType
}

// knownResourceLayouts maps resource path bytes to the layout stored
// under them. Paths do not depend on the owning address, so one table
// covers every account. Balance paths exist once per known currency.
func knownResourceLayouts() map[string]resourceLayout {
	table := make(map[string]resourceLayout)
	add := func(tag types.StructTag, kind string, layout *vm.FatStructType) {
		ap := types.ResourceAccessPath(types.AccountAddress{}, tag)
		table[string(ap.Path)] = resourceLayout{kind: kind, layout: vm.StructType(layout)}
	}

	add(protocol.AccountStructTag(), "account", account.AccountLayout())
	add(protocol.EventGeneratorStructTag(), "event_generator", account.EventGeneratorLayout())
	for _, code := range []types.Identifier{protocol.LBR, protocol.Coin1, protocol.Coin2} {
		add(protocol.BalanceStructTag(code), "balance<"+string(code)+">", account.BalanceLayout())
	}
	return table
}

// decodedEntry is one dump entry after classification and layout-checked
// decoding.
type decodedEntry struct {
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Size    int    `json:"size"`
	Value   any    `json:"value,omitempty"`
	Display string `json:"-"`
	Error   string `json:"error,omitempty"`
}

// inspectReport is everything runInspect renders.
type inspectReport struct {
	Path       string
	Format     statestore.Format
	Compressed bool
	Version    uint32
	Entries    []decodedEntry
	Failures   int
}

// inspectDump loads a dump file and decodes every entry it can.
// Per-entry failures land in the report instead of aborting the walk.
func inspectDump(path string) (*inspectReport, error) {
	format, compressed, err := statestore.FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dump, err := statestore.DecodeDump(f, format, compressed)
	if err != nil {
		return nil, err
	}

	layouts := knownResourceLayouts()
	report := &inspectReport{
		Path:       path,
		Format:     format,
		Compressed: compressed,
		Version:    dump.Version,
		Entries:    make([]decodedEntry, 0, len(dump.Entries)),
	}

	for i, raw := range dump.Entries {
		entry := decodedEntry{Address: raw.Address, Path: raw.Path}

		pathBytes, err := hex.DecodeString(raw.Path)
		if err != nil {
			entry.Kind = "invalid"
			entry.Error = fmt.Sprintf("entry %d: bad path hex: %v", i, err)
			report.Failures++
			report.Entries = append(report.Entries, entry)
			continue
		}
		value, err := hex.DecodeString(raw.Value)
		if err != nil {
			entry.Kind = "invalid"
			entry.Error = fmt.Sprintf("entry %d: bad value hex: %v", i, err)
			report.Failures++
			report.Entries = append(report.Entries, entry)
			continue
		}
		entry.Size = len(value)

		known, ok := layouts[string(pathBytes)]
		if !ok {
			// Not a layout this tool synthesizes; keep the raw hex.
			entry.Kind = "unknown"
			entry.Value = raw.Value
			report.Entries = append(report.Entries, entry)
			continue
		}
		entry.Kind = known.kind

		decoded, err := vm.Deserialize(value, known.layout)
		if err != nil {
			entry.Error = err.Error()
			report.Failures++
			report.Entries = append(report.Entries, entry)
			continue
		}
		entry.Value = vm.ToInterface(decoded)
		entry.Display = decoded.String()
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

func runInspect(cmd *cobra.Command, args []string) {
	report, err := inspectDump(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Println("                            State Dump Inspection")
	fmt.Println("================================================================================")
	fmt.Printf("File:       %s\n", report.Path)
	fmt.Printf("Format:     %s (lz4: %t)\n", report.Format, report.Compressed)
	fmt.Printf("Version:    %d\n", report.Version)
	fmt.Printf("Entries:    %d\n", len(report.Entries))
	fmt.Println()

	kinds := make(map[string]int)
	accounts := make(map[string]int)
	for _, e := range report.Entries {
		kinds[e.Kind]++
		accounts[e.Address]++
	}

	fmt.Println("--- Resources ---")
	kindNames := make([]string, 0, len(kinds))
	for k := range kinds {
		kindNames = append(kindNames, k)
	}
	sort.Strings(kindNames)
	for _, k := range kindNames {
		fmt.Printf("%-24s %d\n", k, kinds[k])
	}
	fmt.Println()

	fmt.Printf("--- Accounts (%d) ---\n", len(accounts))
	addrs := make([]string, 0, len(accounts))
	for a := range accounts {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	shown := len(addrs)
	if shown > 20 && !inspectShowValues {
		shown = 20
	}
	for _, a := range addrs[:shown] {
		fmt.Printf("%s  %d resources\n", a, accounts[a])
	}
	if shown < len(addrs) {
		fmt.Printf("... and %d more accounts\n", len(addrs)-shown)
	}
	fmt.Println()

	if inspectShowValues {
		fmt.Println("--- Entries ---")
		for _, e := range report.Entries {
			if e.Error != "" {
				fmt.Printf("%s %-24s ERROR %s\n", e.Address, e.Kind, e.Error)
				continue
			}
			display := e.Display
			if display == "" {
				display = fmt.Sprintf("%v", e.Value)
			}
			fmt.Printf("%s %-24s %s\n", e.Address, e.Kind, display)
		}
		fmt.Println()
	}

	if inspectOut != "" {
		if err := writeDecodedJSON(inspectOut, report.Entries); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded entries written to: %s\n", inspectOut)
	}

	if report.Failures > 0 {
		fmt.Printf("FAIL - %d entries did not decode\n", report.Failures)
		os.Exit(1)
	}
	fmt.Println("PASS - all entries decoded")
}

func writeDecodedJSON(path string, entries []decodedEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
