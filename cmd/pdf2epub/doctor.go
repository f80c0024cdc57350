package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-pdf2epub/internal/modelcache"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Marker   toolInfo   `json:"marker"`
	Pandoc   toolInfo   `json:"pandoc"`
	Cache    cacheInfo  `json:"model_cache"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds external tool detection results.
type toolInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// cacheInfo holds model cache detection results.
type cacheInfo struct {
	Root        string `json:"root"`
	Exists      bool   `json:"exists"`
	Override    bool   `json:"override"` // true when an env override is set
	OverrideVar string `json:"override_var,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitFailure
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkTool(env, result, "marker_single", &result.Marker,
		"marker_single not found. Install marker-pdf: pip install marker-pdf")
	checkTool(env, result, "pandoc", &result.Pandoc,
		"pandoc not found. Install it: apt install pandoc (or brew install pandoc)")
	checkCache(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTool locates an external binary and records its version when
// cheaply available.
func checkTool(env *Environment, result *doctorResult, name string, info *toolInfo, missingMsg string) {
	path, err := env.LookPath(name)
	if err != nil {
		result.Errors = append(result.Errors, missingMsg)
		return
	}
	info.Found = true
	info.Path = path

	// pandoc answers --version instantly; marker_single would load models.
	if name == "pandoc" {
		out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from LookPath
		if err == nil {
			if line, _, ok := strings.Cut(string(out), "\n"); ok {
				info.Version = strings.TrimSpace(line)
			}
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not get pandoc version: %v", err))
		}
	}
}

// checkCache reports the model cache location and whether it exists yet.
func checkCache(result *doctorResult) {
	result.Cache.Root = modelcache.ResolveRoot()
	switch {
	case os.Getenv(modelcache.EnvCacheRoot) != "":
		result.Cache.Override = true
		result.Cache.OverrideVar = modelcache.EnvCacheRoot
	case os.Getenv(modelcache.EnvModelsHome) != "":
		result.Cache.Override = true
		result.Cache.OverrideVar = modelcache.EnvModelsHome
	}
	if info, err := os.Stat(result.Cache.Root); err == nil && info.IsDir() {
		result.Cache.Exists = true
	}
}

// checkSystem verifies the temp directory is writable; the conversion
// workspace lives there.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "pdf2epub-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdf2epub doctor")
	fmt.Fprintln(w)

	printTool(w, "marker_single (PDF extraction)", r.Marker)
	printTool(w, "pandoc (EPUB formatting)", r.Pandoc)

	fmt.Fprintln(w, "Model cache")
	if r.Cache.Override {
		fmt.Fprintf(w, "  [OK] Root: %s (%s)\n", r.Cache.Root, r.Cache.OverrideVar)
	} else {
		fmt.Fprintf(w, "  [OK] Root: %s\n", r.Cache.Root)
	}
	if r.Cache.Exists {
		fmt.Fprintln(w, "  [OK] Exists (models downloaded)")
	} else {
		fmt.Fprintln(w, "  [OK] Not present yet (models download on first run)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printTool renders one tool section.
func printTool(w io.Writer, label string, info toolInfo) {
	fmt.Fprintln(w, label)
	if info.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", info.Path)
		if info.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", info.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)
}
