package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/datev-compressor/internal"
)

const header = `"Waehrung";"VorzBetrag";"RechNr";"BelegDatum";"Belegtext";"UStSatz";"BU";"Gegenkonto";"Kost1";"Kost2";"Kostmenge";"Skonto";"Nachricht"`

// Two days: rent is merged within 0101, the daily account passes through, 0102 stands alone
const kasse = header + "\n" +
	`"EUR";"1,00";"R0";"0101";"Kasse";"";"";"0";"";"";"";"";"Anfang"` + "\n" +
	`"EUR";"10,00";"R1";"0101";"Miete";"19";"";"100";"";"";"";"";""` + "\n" +
	`"EUR";"5,50";"R2";"0101";"Miete";"19";"";"100";"";"";"";"";""` + "\n" +
	`"EUR";"2,00";"R3";"0101";"Blumen";"7";"";"50";"";"";"";"";""` + "\n" +
	`"EUR";"7,25";"R4";"0102";"Miete";"19";"";"100";"";"";"";"";""` + "\n"

const kasseCompressed = header + "\n" +
	`"EUR";"15.5";"R1";"0101";"Miete";"19";"";"100";"";"";"";"0";""` + "\n" +
	`"EUR";"2";"R3";"0101";"Blumen";"7";"";"50";"";"";"";"0";""` + "\n" +
	`"EUR";"1";"R0";"0101";"Kasse";"0";"";"0";"";"";"";"0";"Anfang"` + "\n" +
	`"EUR";"7.25";"R4";"0102";"Miete";"19";"";"100";"";"";"";"0";""` + "\n"

// cliCommand builds a `go run .` invocation with the given config content
// so the user's own config file never interferes
func cliCommand(t *testing.T, configContent string, args ...string) *exec.Cmd {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fullArgs := append([]string{"run", ".", "--config", configPath}, args...)
	return exec.Command("go", fullArgs...)
}

// runCLIWithConfig runs the CLI and returns stdout, failing the test on a non-zero exit
func runCLIWithConfig(t *testing.T, configContent string, args ...string) string {
	t.Helper()

	// Capture stdout only (stderr has go download messages and logs)
	output, err := cliCommand(t, configContent, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Fatalf("CLI failed: %v\nStderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("CLI failed: %v", err)
	}
	return string(output)
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	return runCLIWithConfig(t, "", args...)
}

// runCLIJSON runs the CLI with JSON output and parses the result
func runCLIJSON(t *testing.T, args ...string) internal.JSONOutput {
	t.Helper()
	output := runCLI(t, append(args, "--output", "json")...)

	var result internal.JSONOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output file %s: %v", path, err)
	}
	return string(data)
}

func TestCLI_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "datev.csv", kasse)
	out := filepath.Join(tmpDir, "datevC.csv")

	output := runCLI(t, "-c", "-i", in, "-o", out)

	if got := readOutput(t, out); got != kasseCompressed {
		t.Errorf("unexpected output file:\n%s\nwant:\n%s", got, kasseCompressed)
	}
	if !strings.HasPrefix(output, header) {
		t.Errorf("expected table output to start with the header line, got: %s", output)
	}
}

func TestCLI_JSONOutput(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "datev.csv", kasse)
	out := filepath.Join(tmpDir, "datevC.csv")

	result := runCLIJSON(t, "-c", "-i", in, "-o", out)

	if result.Summary.Files != 1 || result.Summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}
	if result.Summary.InputRecords != 5 || result.Summary.OutputRecords != 4 {
		t.Errorf("expected 5 -> 4 records, got %d -> %d", result.Summary.InputRecords, result.Summary.OutputRecords)
	}

	file := result.Files[0]
	if file.Stats.Runs != 2 || file.Stats.Merged != 1 || file.Stats.Daily != 1 {
		t.Errorf("unexpected stats: %+v", file.Stats)
	}
	if file.Records[0].Value != "15.5" || file.Records[0].BookingText != "Miete" {
		t.Errorf("expected merged rent first, got %+v", file.Records[0])
	}
}

func TestCLI_All(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "jan.csv", kasse)
	writeInput(t, tmpDir, "feb.csv", header+"\n"+`"EUR";"3,00";"R9";"0201";"Porto";"";"";"60";"";"";"";"";""`+"\n")
	writeInput(t, tmpDir, "notes.txt", "ignored")

	result := runCLIJSON(t, "-c", "-a", "--dir", tmpDir)

	if result.Summary.Files != 2 {
		t.Fatalf("expected 2 converted files, got %d", result.Summary.Files)
	}
	if got := readOutput(t, filepath.Join(tmpDir, "jan.csv_C.csv")); got != kasseCompressed {
		t.Errorf("unexpected jan output:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "feb.csv_C.csv")); err != nil {
		t.Errorf("expected feb output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "notes.txt_C.txt")); err == nil {
		t.Error("files with other extensions must not be converted")
	}
}

func TestCLI_FirstSeenOrder(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "datev.csv", header+"\n"+
		`"EUR";"1";"R1";"0101";"Zucker";"";"";"200";"";"";"";"";""`+"\n"+
		`"EUR";"2";"R2";"0101";"Apfel";"";"";"100";"";"";"";"";""`+"\n")
	out := filepath.Join(tmpDir, "out.csv")

	runCLIWithConfig(t, "flush_order: first-seen\n", "-c", "-i", in, "-o", out, "--output", "none")

	lines := strings.Split(strings.TrimSpace(readOutput(t, out)), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "Zucker") {
		t.Errorf("expected insertion order with Zucker first, got %v", lines)
	}
}

func TestCLI_SourcePrefix(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "fixture.json", `{
  "header": "h",
  "records": [
    {"currency": "EUR", "value": "1,5", "date": "0101", "booking_text": "a", "account": "100"},
    {"currency": "EUR", "value": "2", "date": "0101", "booking_text": "a", "account": "100"}
  ]
}`)
	out := filepath.Join(tmpDir, "out.csv")

	runCLI(t, "-c", "-i", "simple-json:"+in, "-o", out, "--output", "none")

	want := "h\n" + `"EUR";"3.5";"";"0101";"a";"0";"";"100";"";"";"";"0";""` + "\n"
	if got := readOutput(t, out); got != want {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestCLI_Xlsx(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "datev.csv", kasse)
	xlsxPath := filepath.Join(tmpDir, "review.xlsx")

	runCLI(t, "-c", "-i", in, "-o", filepath.Join(tmpDir, "out.csv"), "--xlsx", xlsxPath, "--output", "none")

	if _, err := os.Stat(xlsxPath); err != nil {
		t.Errorf("expected workbook: %v", err)
	}
}

func TestCLI_NothingToDo(t *testing.T) {
	err := cliCommand(t, "").Run()
	if err == nil {
		t.Fatal("expected a non-zero exit without -c")
	}
	if _, ok := err.(*exec.ExitError); !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
}

func TestCLI_ParseErrorFails(t *testing.T) {
	tmpDir := t.TempDir()
	in := writeInput(t, tmpDir, "bad.csv", header+"\n"+`"EUR";"zehn";"R1";"0101";"x"`+"\n")
	out := filepath.Join(tmpDir, "out.csv")

	err := cliCommand(t, "", "-c", "-i", in, "-o", out).Run()
	if err == nil {
		t.Fatal("expected a non-zero exit for a malformed value")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("no output should be written for a malformed input")
	}
}
