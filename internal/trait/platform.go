package trait

import "strings"

// OS enumerates the operating system families the matrix covers.
type OS string

const (
	Linux   OS = "linux"
	Darwin  OS = "darwin"
	Windows OS = "windows"
)

// Platform carries an OS tag plus the translation parameters for that OS.
// It is selected once, at composition time, and travels with the template as
// plain data; nothing downstream dispatches on OS at render time.
type Platform struct {
	OS OS

	// PathSep is the separator Path substitutes for "/".
	PathSep string

	// ExeSuffix is appended by Exe ("" on Unix-likes, ".exe" on Windows).
	ExeSuffix string

	// HomeSuffix is appended by Home to locate the JDK home inside an
	// unpacked release directory ("/Contents/Home" on Darwin).
	HomeSuffix string

	// CopyTool is the argument prefix CopyDir uses to build a recursive
	// directory copy command for this OS.
	CopyTool []string
}

// Path translates a slash-separated relative path into the platform's
// native separator. Absolute semantics are left to the CI runner.
func (p Platform) Path(path string) string {
	if p.PathSep == "/" {
		return path
	}
	return strings.ReplaceAll(path, "/", p.PathSep)
}

// Exe translates an executable name ("mx" -> "mx.exe" on Windows).
func (p Platform) Exe(name string) string {
	return name + p.ExeSuffix
}

// Home translates an unpacked release directory into its JDK home.
func (p Platform) Home(dir string) string {
	if p.HomeSuffix == "" {
		return dir
	}
	return p.Path(dir + p.HomeSuffix)
}

// CopyDir renders the argument vector that recursively copies src to dst.
func (p Platform) CopyDir(src, dst string) []string {
	args := make([]string, 0, len(p.CopyTool)+2)
	args = append(args, p.CopyTool...)
	args = append(args, p.Path(src), p.Path(dst))
	return args
}

// Platform definitions for the supported OS families. These are the only
// instances; traits reference them by pointer so composition can detect a
// second OS trait in one sequence.
var (
	LinuxPlatform = Platform{
		OS:       Linux,
		PathSep:  "/",
		CopyTool: []string{"cp", "-rp"},
	}

	DarwinPlatform = Platform{
		OS:         Darwin,
		PathSep:    "/",
		HomeSuffix: "/Contents/Home",
		CopyTool:   []string{"cp", "-rp"},
	}

	WindowsPlatform = Platform{
		OS:        Windows,
		PathSep:   `\`,
		ExeSuffix: ".exe",
		CopyTool:  []string{"xcopy", "/e", "/q", "/y"},
	}
)
