package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/assets"
	"github.com/alnah/go-newman/internal/config"
)

// errNotReady reports a doctor run that found blocking problems.
var errNotReady = errors.New("environment not ready")

// versionTimeout bounds the converter --version probe.
const versionTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string       `json:"status"` // "ready", "warnings", "errors"
	Converter  toolInfo     `json:"converter"`
	Typesetter toolInfo     `json:"typesetter"`
	Template   templateInfo `json:"template"`
	Env        envInfo      `json:"environment"`
	Warnings   []string     `json:"warnings,omitempty"`
	Errors     []string     `json:"errors,omitempty"`
}

// toolInfo holds the detection result of one external program.
type toolInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type templateInfo struct {
	Source string `json:"source"` // "embedded" or the resolved directory
	Valid  bool   `json:"valid"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	TempWritable  bool   `json:"temp_writable"`
}

// runDoctor checks that the tools a project needs are available.
// Warnings keep the exit code at zero; errors do not.
func runDoctor(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}

	result := diagnose(ctx, cfg, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return errNotReady
	}
	return nil
}

// diagnose performs all checks.
func diagnose(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkConverter(ctx, result, cfg.Converter.Binary, env)
	checkTypesetter(result, cfg.Typesetter.Command, env)
	checkTemplate(result, cfg.Template.Path, cfg.Project.Master, cfg.Project.Sentinel)
	checkEnvironment(result, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkConverter locates the markup converter and asks for its version.
func checkConverter(ctx context.Context, result *doctorResult, binary string, env *Environment) {
	result.Converter.Name = binary
	path, err := env.LookPath(binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found on PATH; documents cannot be converted", binary))
		return
	}
	result.Converter.Found = true
	result.Converter.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	version, err := env.ConverterVersion(ctx, binary)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not get %s version: %v", binary, err))
		return
	}
	result.Converter.Version = version
}

// checkTypesetter only warns: update works without it, compile does not.
func checkTypesetter(result *doctorResult, command string, env *Environment) {
	result.Typesetter.Name = command
	path, err := env.LookPath(command)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found on PATH; compile is unavailable", command))
		return
	}
	result.Typesetter.Found = true
	result.Typesetter.Path = path
}

func checkTemplate(result *doctorResult, path, master, sentinel string) {
	result.Template.Source = "embedded"
	if path != "" {
		result.Template.Source = path
	}

	loader, err := newman.NewTemplateLoader(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("template: %v", err))
		return
	}
	if fl, ok := loader.(*assets.FilesystemLoader); ok {
		result.Template.Source = fl.BasePath()
	}

	if err := validateTemplate(loader, master, sentinel); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("template: %v", err))
		return
	}
	result.Template.Valid = true
}

func validateTemplate(loader newman.TemplateLoader, master, sentinel string) error {
	fsys, err := loader.Template()
	if err != nil {
		return err
	}
	return assets.Validate(fsys, master, sentinel)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	testFile := filepath.Join(os.TempDir(), "newman-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = os.Remove(testFile)
	result.Env.TempWritable = true
}

// isContainer returns whether a container signal was seen and which one.
func isContainer(env *Environment) (bool, string) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := env.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	s := newStyles(w)
	ok := s.success.Render("[OK]")
	bad := s.failure.Render("[ERROR]")
	warn := s.warning.Render("[WARN]")

	fmt.Fprintln(w, s.title.Render("newman doctor"))
	fmt.Fprintln(w)

	for _, section := range []struct {
		title string
		tool  toolInfo
		miss  string
	}{
		{"Converter", r.Converter, bad},
		{"Typesetter", r.Typesetter, warn},
	} {
		fmt.Fprintln(w, section.title)
		if !section.tool.Found {
			fmt.Fprintf(w, "  %s %s not found\n", section.miss, section.tool.Name)
		} else {
			fmt.Fprintf(w, "  %s %s at %s\n", ok, section.tool.Name, section.tool.Path)
			if section.tool.Version != "" {
				fmt.Fprintf(w, "  %s Version: %s\n", ok, section.tool.Version)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Template")
	if r.Template.Valid {
		fmt.Fprintf(w, "  %s %s\n", ok, r.Template.Source)
	} else {
		fmt.Fprintf(w, "  %s %s\n", bad, r.Template.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	if r.Env.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, m := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, m)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, m := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", bad, m)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
