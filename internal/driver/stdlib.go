package driver

// implicitStdlibSources lists the standard-library sources prepended
// to the source list before parsing whenever a library directory is
// configured (§6). Order matters: runtime and builtin must come first
// since every later file implicitly depends on them.
var implicitStdlibSources = []string{
	"std/runtime",
	"std/builtin",
	"std/io",
	"std/mem",
	"std/array",
	"std/math",
}

// PrependStdlib returns sources with the implicit standard-library
// files prepended, each joined with libDir and given the driver's
// source extension. If libDir is empty, sources is returned unchanged
// — no implicit standard library is compiled in that case.
func PrependStdlib(libDir string, sources []string) []string {
	if libDir == "" {
		return sources
	}
	out := make([]string, 0, len(implicitStdlibSources)+len(sources))
	for _, s := range implicitStdlibSources {
		out = append(out, libDir+"/"+s+SourceExtension)
	}
	return append(out, sources...)
}
