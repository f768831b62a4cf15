package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteTerms(t *testing.T) {
	c, _ := testCLI(t)
	cmd := c.renderCommand()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"fall2016", "spring2016"}},
		{"sp", []string{"spring2016"}},
		{"winter", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, directive := completeTerms(cmd, nil, tt.prefix)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("completeTerms(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v, want NoFileComp", directive)
			}
		})
	}
}

func TestCompleteTermsFromRegistryFile(t *testing.T) {
	c, _ := testCLI(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "extra.toml", "[spring2017.assignment1]\ndueTime = 1490000000000\n")

	cmd := c.renderCommand()
	if err := cmd.Flags().Set(registryFlag, path); err != nil {
		t.Fatal(err)
	}
	got, _ := completeTerms(cmd, nil, "spring")
	if strings.Join(got, ",") != "spring2016,spring2017" {
		t.Errorf("completeTerms() = %v, want [spring2016 spring2017]", got)
	}
}

func TestCompleteAssignments(t *testing.T) {
	c, _ := testCLI(t)

	tests := []struct {
		name   string
		term   string
		prefix string
		want   []string
	}{
		{"no term", "", "", []string{"assignment1", "assignment2", "assignment3", "assignment4"}},
		{"display term", "Fall 2016", "assignment3", []string{"assignment3"}},
		{"unknown term", "winter2016", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.renderCommand()
			if tt.term != "" {
				if err := cmd.Flags().Set("term", tt.term); err != nil {
					t.Fatal(err)
				}
			}
			got, _ := completeAssignments(cmd, nil, tt.prefix)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("completeAssignments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompleteVariants(t *testing.T) {
	c, _ := testCLI(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, variantsFile, "[variant.wide]\nbase = \"skyline\"\nwidth = 1600\n")

	cmd := c.renderCommand()
	got, _ := c.completeVariants(cmd, nil, "")
	want := "area,skyline,skyline-launches,wide"
	if strings.Join(got, ",") != want {
		t.Errorf("completeVariants() = %v, want %s", got, want)
	}

	got, _ = c.completeVariants(cmd, nil, "sky")
	if strings.Join(got, ",") != "skyline,skyline-launches" {
		t.Errorf("completeVariants(sky) = %v", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg", "png", "pdf", "json"}},
		{"p", []string{"png", "pdf"}},
		{"svg,j", []string{"svg,json"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, directive := completeFormats(nil, nil, tt.input)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if directive&cobra.ShellCompDirectiveNoSpace == 0 {
				t.Error("directive should include NoSpace")
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c, out := testCLI(t)
			if err := run(t, c, "completion", shell); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}
}
