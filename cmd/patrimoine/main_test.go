package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdFile = "../../internal/config/testdata/household.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "patrimoine", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("regulatory-config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "pension")
	assert.Contains(t, out, "succession")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"project", "pension", "succession", "validate", "compare", "serve", "browse", "version"}
	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "Expected command '%s' to be registered with root command", name)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	_, err := execute(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "patrimoine "), "got %q", out)
	assert.Contains(t, out, "commit none")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", householdFile)
	require.NoError(t, err)
	assert.Equal(t, "Configuration file "+householdFile+" is valid\n", out)

	_, err = execute(t, "validate", "non_existing_file.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestValidateCommand_BadRegulatoryConfig(t *testing.T) {
	_, err := execute(t, "validate", householdFile, "--regulatory-config", "missing-regulatory.yaml")
	assert.Error(t, err)
}

func TestProjectCommand_CSV(t *testing.T) {
	out, err := execute(t, "project", householdFile, "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,FirstPensionYear"))
	// Rows are sorted by scenario name.
	assert.True(t, strings.HasPrefix(lines[1], "Late liquidation,"))
	assert.True(t, strings.HasPrefix(lines[2], "Planned,"))
	assert.True(t, strings.HasPrefix(lines[3], "Quarter option,"))
}

func TestProjectCommand_SingleScenarioWithTransform(t *testing.T) {
	out, err := execute(t, "project", householdFile,
		"--scenario", "Planned",
		"--transform", "set_age_of_death:adult=Paul,age=95",
		"--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Scenarios []struct {
			Name        string `json:"name"`
			Successions []any  `json:"successions"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Scenarios, 1)
	assert.Equal(t, "Planned", decoded.Scenarios[0].Name)
	// Paul now dies in 2059, after the projection window.
	assert.Empty(t, decoded.Scenarios[0].Successions)
}

func TestProjectCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown scenario", []string{"--scenario", "Nope"}, "scenario Nope not found"},
		{"transform without scenario", []string{"--transform", "set_age_of_death:adult=Paul,age=90"}, "--transform requires --scenario"},
		{"bad transform", []string{"--scenario", "Planned", "--transform", "fly_to_the_moon"}, "fly_to_the_moon"},
		{"unknown format", []string{"--format", "pdf"}, "unsupported format: pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"project", householdFile}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPensionCommand(t *testing.T) {
	out, err := execute(t, "pension", householdFile, "--adult", "Paul", "--year", "2030")
	require.NoError(t, err)
	assert.Contains(t, out, "Paul, 2030 (age 66)")
	assert.Contains(t, out, "General regime:")
	assert.Contains(t, out, "Total net: €")
}

func TestPensionCommand_BeforeLiquidation(t *testing.T) {
	out, err := execute(t, "pension", householdFile, "--adult", "Paul", "--year", "2030", "--scenario", "Late liquidation")
	require.NoError(t, err)
	assert.Contains(t, out, "No pension payable")
}

func TestPensionCommand_JSON(t *testing.T) {
	out, err := execute(t, "pension", householdFile, "--adult", "Paul", "--year", "2030", "--format", "json")
	require.NoError(t, err)

	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "Paul", row["name"])
	assert.EqualValues(t, 2030, row["year"])
	assert.Contains(t, row, "general")
}

func TestPensionCommand_Errors(t *testing.T) {
	_, err := execute(t, "pension", householdFile)
	require.Error(t, err, "--adult is required")

	_, err = execute(t, "pension", householdFile, "--adult", "Jacques")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `adult "Jacques" not found`)

	_, err = execute(t, "pension", householdFile, "--adult", "Paul", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format: xml")
}

func TestSuccessionCommand(t *testing.T) {
	out, err := execute(t, "succession", householdFile, "--adult", "Paul")
	require.NoError(t, err)
	assert.Contains(t, out, "SUCCESSION OF PAUL (2044)")
	assert.Contains(t, out, "Surviving spouse: Marie")
	assert.Contains(t, out, "Children: Lea, Tom")
	assert.Contains(t, out, "Total duty: €")
}

func TestSuccessionCommand_Age(t *testing.T) {
	_, err := execute(t, "succession", householdFile, "--adult", "Marie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no modelled age of death")

	out, err := execute(t, "succession", householdFile, "--adult", "Marie", "--age", "88", "--format", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Marie", result["decedent"])
	assert.EqualValues(t, 2054, result["year"])
	assert.NotContains(t, result, "spouse", "Paul is dead by 2054")
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "postpone_1yr")
	assert.Contains(t, out, "work_longer")
}

func TestCompareCommand_CSV(t *testing.T) {
	out, err := execute(t, "compare", householdFile, "--base", "Planned", "--with", "postpone_1yr,death_at_95", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,First Pension Year"))
	assert.Contains(t, out, "Planned_postpone_1yr")
	assert.Contains(t, out, "Planned_death_at_95")
}

func TestCompareCommand_Table(t *testing.T) {
	out, err := execute(t, "compare", householdFile, "--base", "Planned", "--with", "liquidate_1yr_later")
	require.NoError(t, err)
	assert.Contains(t, out, "PENSION AND SUCCESSION SCENARIO COMPARISON")
}

func TestCompareCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no input", []string{"compare"}, "input file required"},
		{"no base", []string{"compare", householdFile, "--with", "postpone_1yr"}, "--base flag is required"},
		{"no templates", []string{"compare", householdFile, "--base", "Planned"}, "--with flag is required"},
		{"unknown template", []string{"compare", householdFile, "--base", "Planned", "--with", "retire_on_mars"}, "template retire_on_mars not found"},
		{"unknown base", []string{"compare", householdFile, "--base", "Nope", "--with", "postpone_1yr"}, "base scenario Nope not found"},
		{"unknown format", []string{"compare", householdFile, "--base", "Planned", "--with", "postpone_1yr", "--format", "xml"}, "unknown output format: xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBrowseCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "browse", "non_existing_file.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFileExists(t *testing.T) {
	assert.True(t, fileExists(householdFile))
	assert.False(t, fileExists("non_existing_file.txt"))
}
