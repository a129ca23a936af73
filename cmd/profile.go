package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"tigerc/common"
	"tigerc/report"

	"github.com/pelletier/go-toml"
)

// BuildProfile represents the current build profile.
type BuildProfile struct {
	// OutputPath is the path the generated LLVM IR is written to.  If it is
	// empty, the output path is derived from the input path.
	OutputPath string

	TargetTriple string
	DataLayout   string

	// LogLevel is the name of the log level: one of report.LogLevelNames.
	LogLevel string

	// Emit should be one of the enumerated emit kinds.
	Emit int
}

// Enumeration of the possible outputs of a build.
const (
	EmitLLVM  = iota // Check the program and write LLVM IR.
	EmitCheck        // Only check the program.
)

var emitNames = map[string]int{
	"llvm":  EmitLLVM,
	"check": EmitCheck,
}

// DefaultProfile returns the profile used when no profile file is given.
func DefaultProfile() *BuildProfile {
	return &BuildProfile{
		TargetTriple: defaultTargetTriple(),
		LogLevel:     "verbose",
		Emit:         EmitLLVM,
	}
}

// -----------------------------------------------------------------------------

// tomlProfileFile represents a profile file as it is encoded in TOML.
type tomlProfileFile struct {
	Build *tomlProfile `toml:"build"`
}

// tomlProfile represents the `[build]` table of a profile file.
type tomlProfile struct {
	OutputPath   string `toml:"output,omitempty"`
	TargetTriple string `toml:"target-triple,omitempty"`
	DataLayout   string `toml:"data-layout,omitempty"`
	LogLevel     string `toml:"loglevel,omitempty"`
	Emit         string `toml:"emit,omitempty"`
}

// LoadProfile loads and validates the build profile at the given path.  Fields
// omitted from the file keep their default values.  A relative output path is
// taken relative to the directory of the profile file.
func LoadProfile(path string) (*BuildProfile, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read profile file: %w", err)
	}

	tomlFile := &tomlProfileFile{}
	if err := toml.Unmarshal(buff, tomlFile); err != nil {
		return nil, fmt.Errorf("error parsing profile file `%s`: %w", path, err)
	}

	profile := DefaultProfile()
	if tomlFile.Build == nil {
		return profile, nil
	}

	tomlProf := tomlFile.Build
	if tomlProf.OutputPath != "" {
		profile.OutputPath = tomlProf.OutputPath
		if !filepath.IsAbs(profile.OutputPath) {
			profile.OutputPath = filepath.Join(filepath.Dir(path), profile.OutputPath)
		}
	}

	if tomlProf.TargetTriple != "" {
		profile.TargetTriple = tomlProf.TargetTriple
	}

	profile.DataLayout = tomlProf.DataLayout

	if tomlProf.LogLevel != "" {
		if _, ok := report.LogLevelNames[tomlProf.LogLevel]; !ok {
			return nil, fmt.Errorf("invalid log level in `%s`: `%s`", path, tomlProf.LogLevel)
		}

		profile.LogLevel = tomlProf.LogLevel
	}

	if tomlProf.Emit != "" {
		emit, ok := emitNames[tomlProf.Emit]
		if !ok {
			return nil, fmt.Errorf("invalid emit kind in `%s`: `%s`", path, tomlProf.Emit)
		}

		profile.Emit = emit
	}

	return profile, nil
}

// InitProfile creates a new default profile file in the given directory.
func InitProfile(dir string) error {
	profPath := filepath.Join(dir, common.ProfileFileName)

	// check to see if a profile already exists
	_, err := os.Stat(profPath)
	if err == nil {
		return errors.New("profile file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("profile file error: %w", err)
	}

	f, err := os.Create(profPath)
	if err != nil {
		return fmt.Errorf("error creating profile file: %w", err)
	}
	defer f.Close()

	prof := &tomlProfile{
		OutputPath:   "out" + common.IRFileExt,
		TargetTriple: defaultTargetTriple(),
		LogLevel:     "verbose",
		Emit:         "llvm",
	}

	if err := toml.NewEncoder(f).Encode(&tomlProfileFile{Build: prof}); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	return nil
}

// defaultTargetTriple returns the LLVM target triple of the host.
func defaultTargetTriple() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i386"
	}

	switch runtime.GOOS {
	case "windows":
		return arch + "-pc-windows-msvc"
	case "darwin":
		return arch + "-apple-darwin"
	case "linux":
		return arch + "-pc-linux-gnu"
	}

	return arch + "-unknown-" + runtime.GOOS
}
